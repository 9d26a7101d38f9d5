package track

import "errors"

// Validation failures are programmer-error-class and surface synchronously at
// the point of construction or mutation; no collection ever holds an invalid
// element. All are matchable with errors.Is.
var (
	// ErrInvalidPosition indicates a cone position with a NaN or infinite
	// component.
	ErrInvalidPosition = errors.New("invalid cone position")

	// ErrInvalidCategory indicates a category outside the closed enumeration.
	ErrInvalidCategory = errors.New("invalid cone category")

	// ErrInvalidElement indicates an element rejected at a cone array
	// boundary. It wraps the underlying position or category cause.
	ErrInvalidElement = errors.New("invalid cone array element")

	// ErrIndexOutOfRange indicates an out-of-range index access.
	ErrIndexOutOfRange = errors.New("cone array index out of range")
)
