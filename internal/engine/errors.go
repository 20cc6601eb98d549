package engine

import "errors"

// Sentinel errors classifying every failure the engine can surface.
// Callers test with errors.Is; none are fatal.
var (
	// ErrInvalidArgument indicates a caller bug (negative seconds, a date
	// outside the ledger's month, an unknown kind). State is never mutated
	// before it is returned.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAlreadyRunning is returned by Start when the requested kind is
	// already the active session. Non-fatal policy signal.
	ErrAlreadyRunning = errors.New("timer already running")

	// ErrPersistence wraps gateway write failures. The in-memory mutation
	// that triggered the write has already been applied and is not rolled
	// back; callers may retry the save.
	ErrPersistence = errors.New("persistence failure")
)
