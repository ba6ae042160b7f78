package game

import "errors"

var (
	// ErrInvalidInput flags a missing game/player identifier or answer.
	// Nothing is mutated when it is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownGame means the identifier does not resolve to a stored
	// session. Front ends should start a new game on seeing it.
	ErrUnknownGame = errors.New("unknown game")

	// ErrGameOver means the session is finished and the operation cannot
	// make further progress.
	ErrGameOver = errors.New("game over")

	// ErrNoQuestion means an answer was submitted but no question is
	// pending for the session.
	ErrNoQuestion = errors.New("no question pending")

	// ErrCorruptState means a rehydrated session is missing fields its
	// lifecycle stage requires. The stored record is discarded.
	ErrCorruptState = errors.New("corrupt game state")

	// ErrUpstream wraps graph-service and persistence failures.
	ErrUpstream = errors.New("upstream failure")

	// ErrNotFound is returned by Store implementations for absent records.
	ErrNotFound = errors.New("not found")
)
