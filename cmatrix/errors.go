// SPDX-License-Identifier: MIT

package cmatrix

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "cmatrix: ..." so it greps cleanly in logs.
var (
	// ErrBadShape is returned when a requested shape is invalid (r<=0 or c<=0).
	ErrBadShape = errors.New("cmatrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside bounds.
	ErrOutOfRange = errors.New("cmatrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes.
	ErrDimensionMismatch = errors.New("cmatrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("cmatrix: matrix is not square")

	// ErrNilMatrix indicates a nil receiver or argument.
	ErrNilMatrix = errors.New("cmatrix: nil matrix")

	// ErrSingular is returned when inversion meets a zero determinant or a
	// zero pivot after row exchange.
	ErrSingular = errors.New("cmatrix: singular matrix")
)

// Operation tags for error wrapping.
const (
	opNewDense = "NewDense"
	opAt       = "At"
	opSet      = "Set"
	opAdd      = "Add"
	opSub      = "Sub"
	opMul      = "Mul"
	opScale    = "Scale"
	opInverse  = "Inverse"
	opLU       = "LU"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// indexErrorf adds the offending coordinates to an indexing failure.
func indexErrorf(tag string, row, col int, err error) error {
	return fmt.Errorf("%s(%d,%d): %w", tag, row, col, err)
}
