// Package core defines the domain model for cooperative multi-agent path planning.
package core

import "fmt"

// State is a cell at a discrete time step.
type State struct {
	T   int
	Loc Location
}

// At is shorthand for State{T: t, Loc: Location{X: x, Y: y}}.
func At(t, x, y int) State {
	return State{T: t, Loc: Location{X: x, Y: y}}
}

// SameLocation reports whether two states share a cell, ignoring time.
func (s State) SameLocation(o State) bool {
	return s.Loc == o.Loc
}

func (s State) String() string {
	return fmt.Sprintf("(%d, %d, %d)", s.T, s.Loc.X, s.Loc.Y)
}

// Transition is a move (or wait) between two time-adjacent states.
type Transition struct {
	From, To State
}

// NewTransition builds a transition. To must be exactly one step after From.
func NewTransition(from, to State) (Transition, error) {
	if to.T != from.T+1 {
		return Transition{}, fmt.Errorf("%w: %v to %v", ErrInvalidTransition, from, to)
	}
	return Transition{From: from, To: to}, nil
}

// Reverse returns the opposite move over the same time pair.
func (tr Transition) Reverse() Transition {
	return Transition{
		From: State{T: tr.From.T, Loc: tr.To.Loc},
		To:   State{T: tr.To.T, Loc: tr.From.Loc},
	}
}

// IsWait reports whether the transition stays in place.
func (tr Transition) IsWait() bool {
	return tr.From.Loc == tr.To.Loc
}

func (tr Transition) String() string {
	return fmt.Sprintf("(%v, %v)", tr.From, tr.To)
}
