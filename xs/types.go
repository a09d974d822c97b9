package xs

import (
	"errors"
	"fmt"
)

// Canonical reaction names.
const (
	Total      = "total"
	Elastic    = "elastic"
	Capture    = "capture"
	Fission    = "fission"
	Nonelastic = "nonelastic"
)

var (
	// ErrLengthMismatch is returned when energies and values differ in length.
	ErrLengthMismatch = errors.New("xs: energies and values differ in length")

	// ErrNotAscending is returned when a grid is not strictly increasing.
	ErrNotAscending = errors.New("xs: energies are not strictly increasing")

	// ErrOutOfDomain is returned when an energy lies outside the data.
	ErrOutOfDomain = errors.New("xs: energy outside domain")

	// ErrInvalidInterpolation is returned when a logarithmic law meets a
	// non-positive coordinate.
	ErrInvalidInterpolation = errors.New("xs: interpolation law invalid for data")

	// ErrUnknownInterpolation is returned by ParseInterpolation.
	ErrUnknownInterpolation = errors.New("xs: unknown interpolation")

	// ErrEmpty is returned for operations on empty data.
	ErrEmpty = errors.New("xs: empty data")
)

func xsErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
