package file

import (
	"errors"
	"fmt"
)

// ParseError reports a malformed data file. The server refuses to start on it.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func IsParseError(err error) *ParseError {
	var parseErr *ParseError

	if errors.As(err, &parseErr) {
		return parseErr
	}

	return nil
}
