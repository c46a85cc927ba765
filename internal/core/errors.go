package core

import "errors"

var (
	// ErrInvalidTransition is returned when two states are not one step apart.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrNoSolution is returned when some agent cannot reach its goal.
	ErrNoSolution = errors.New("no solution")
	// ErrInvalidInput is returned for malformed maps or agent lists.
	ErrInvalidInput = errors.New("invalid input")
)
