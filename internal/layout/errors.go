package layout

import "errors"

var (
	// ErrInvalidLayout is returned for tile lists that break the standard mix.
	ErrInvalidLayout = errors.New("layout: invalid tile layout")
	// ErrMalformed is returned when a board file cannot be parsed.
	ErrMalformed = errors.New("layout: malformed board file")
)
