package planet

import "errors"

var (
	ErrInvalidResolution = errors.New("resolution out of range")
	ErrInvalidDirection  = errors.New("local up must be a unit vector along a principal axis")
	ErrInvalidOffset     = errors.New("index offset out of range")

	// ErrNotReady is returned when an operation needs geometry or a
	// renderable that has not been built yet.
	ErrNotReady = errors.New("not ready")

	ErrCorruptGeometry = errors.New("corrupt geometry")

	// ErrUnsupportedEnvironment is returned when the window or graphics
	// context cannot be created on this machine.
	ErrUnsupportedEnvironment = errors.New("unsupported environment")

	ErrInvalidConfig = errors.New("invalid config")
)
