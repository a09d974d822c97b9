// SPDX-License-Identifier: MIT

package cmatrix

import (
	"fmt"
	"strings"
)

// Dense is a row-major complex matrix.
//
// Fields:
//   - r, c: shape.
//   - data: flat storage, element (i,j) at data[i*c+j].
type Dense struct {
	r, c int
	data []complex128
}

// NewDense allocates a zero-filled rows×cols matrix.
//
// Errors:
//   - ErrBadShape if rows<=0 or cols<=0.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(opNewDense, ErrBadShape)
	}

	return &Dense{r: rows, c: cols, data: make([]complex128, rows*cols)}, nil
}

// Identity returns the n×n identity.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// MustIdentity is Identity for sizes known to be positive; it panics otherwise.
func MustIdentity(n int) *Dense {
	m, err := Identity(n)
	if err != nil {
		panic(err)
	}

	return m
}

// FromRows builds a matrix from a rectangular slice of rows.
func FromRows(rows [][]complex128) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, matrixErrorf(opNewDense, ErrBadShape)
	}
	m, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.c {
			return nil, matrixErrorf(opNewDense, ErrDimensionMismatch)
		}
		copy(m.data[i*m.c:(i+1)*m.c], row)
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// indexOf validates (row, col) and returns the flat offset.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns element (row, col).
func (m *Dense) At(row, col int) (complex128, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, indexErrorf(opAt, row, col, err)
	}

	return m.data[idx], nil
}

// Set writes element (row, col).
func (m *Dense) Set(row, col int, v complex128) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return indexErrorf(opSet, row, col, err)
	}
	m.data[idx] = v

	return nil
}

// at and set are the unchecked accessors used by kernels after validation.
func (m *Dense) at(row, col int) complex128     { return m.data[row*m.c+col] }
func (m *Dense) set(row, col int, v complex128) { m.data[row*m.c+col] = v }

// Get is the unchecked read used in hot loops by callers that already own
// the shape. It panics on out-of-range indices like a slice access.
func (m *Dense) Get(row, col int) complex128 { return m.at(row, col) }

// Put is the unchecked counterpart of Get.
func (m *Dense) Put(row, col int, v complex128) { m.set(row, col, v) }

// AddAt accumulates v into element (row, col) without bounds reporting.
func (m *Dense) AddAt(row, col int, v complex128) { m.data[row*m.c+col] += v }

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]complex128, len(m.data))}
	copy(out.data, m.data)

	return out
}

// Leading returns the square block made of the leading n rows and columns.
func (m *Dense) Leading(n int) (*Dense, error) {
	if n <= 0 || n > m.r || n > m.c {
		return nil, matrixErrorf(opAt, ErrOutOfRange)
	}
	out, _ := NewDense(n, n)
	for i := 0; i < n; i++ {
		copy(out.data[i*n:(i+1)*n], m.data[i*m.c:i*m.c+n])
	}

	return out, nil
}

// String renders the matrix row by row.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%v", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
