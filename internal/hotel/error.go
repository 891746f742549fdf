package hotel

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrAlreadyBooked    = errors.New("room has already been booked by a customer")
	ErrNotOwner         = errors.New("room is not booked by this customer")
	ErrInvalidSelection = errors.New("invalid room number")
)

type InputError struct {
	fields map[string][]string
}

func newInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) fieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) addError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}

// Messages returns every message ordered by field name.
func (ie *InputError) Messages() []string {
	names := make([]string, 0, len(ie.fields))
	for name := range ie.fields {
		names = append(names, name)
	}

	sort.Strings(names)

	var out []string
	for _, name := range names {
		out = append(out, ie.fields[name]...)
	}

	return out
}
