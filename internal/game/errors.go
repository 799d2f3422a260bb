package game

import "errors"

// ErrInvalidConfiguration is returned for settings that must be rejected
// before a shoe is built: non-positive deck counts, inverted bet limits,
// unknown counting systems. Fatal at setup.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrIllegalAction is returned when an action is requested in a phase or
// hand state that forbids it, such as doubling a three-card hand or betting
// beyond the bankroll. The action is refused as a no-op; table state is
// never mutated on this path.
var ErrIllegalAction = errors.New("action not permitted")
