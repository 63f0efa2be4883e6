package combat

import "errors"

var (
	ErrPlacement   = errors.New("illegal placement")
	ErrUnknownKind = errors.New("unknown unit kind")
	ErrOutOfBounds = errors.New("cell outside the arena")
	// ErrTieBreak means no movement rule picked a direction. It is a defect in
	// the rules, never a property of the input.
	ErrTieBreak = errors.New("movement tie-break exhausted")
)
