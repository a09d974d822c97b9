package spin

import (
	"errors"
	"math"
)

// ErrNotHalfInteger is returned when a value cannot be represented as a
// multiple of 1/2.
var ErrNotHalfInteger = errors.New("spin: value is not a multiple of 1/2")

// halfTolerance bounds how far 2·x may sit from an integer and still be
// accepted as a spin.
const halfTolerance = 1e-9

// Twice returns 2·x rounded to the nearest integer.
func Twice(x float64) int {
	return int(math.Round(2 * x))
}

// TwiceChecked is Twice with a check that x really is a multiple of 1/2.
func TwiceChecked(x float64) (int, error) {
	t := 2 * x
	if math.Abs(t-math.Round(t)) > halfTolerance {
		return 0, ErrNotHalfInteger
	}

	return int(math.Round(t)), nil
}

// Half converts a doubled integer back to its spin value.
func Half(twice int) float64 {
	return float64(twice) / 2
}

// Equal reports whether two spins are the same, comparing doubled values.
func Equal(a, b float64) bool {
	return Twice(a) == Twice(b)
}

// Triangle reports whether doubled momenta a, b, c satisfy the triangle
// rule |a−b| ≤ c ≤ a+b with a+b+c even.
func Triangle(a, b, c int) bool {
	if a < 0 || b < 0 || c < 0 {
		return false
	}
	if (a+b+c)%2 != 0 {
		return false
	}

	return c >= abs(a-b) && c <= a+b
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
