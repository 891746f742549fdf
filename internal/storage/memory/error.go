package memory

import "errors"

var ErrClosed = errors.New("memory storage is closed")
