package i

import "errors"

// Errors shared by services and the stores behind them.
var (
	ErrMazeNotFound     = errors.New("maze not found")
	ErrSessionNotFound  = errors.New("traversal session not found")
	ErrTooManySessions  = errors.New("too many open traversal sessions")
	ErrAccountNotFound  = errors.New("account not found")
	ErrUsernameConflict = errors.New("username conflict")
)
