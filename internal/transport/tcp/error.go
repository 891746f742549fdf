package tcp

import "errors"

var (
	ErrServerClosed     = errors.New("tcp: server closed")
	ErrNotListening     = errors.New("tcp: server is not listening")
	ErrInvalidConnLimit = errors.New("tcp: max connections must be positive")
)
