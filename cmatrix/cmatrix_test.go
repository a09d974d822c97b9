package cmatrix_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/resonances/cmatrix"
)

func mustRows(t *testing.T, rows [][]complex128) *cmatrix.Dense {
	t.Helper()
	m, err := cmatrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

func assertIdentity(t *testing.T, m *cmatrix.Dense, tol float64) {
	t.Helper()
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			assert.InDelta(t, 0, cmplx.Abs(m.Get(i, j)-want), tol, "(%d,%d)", i, j)
		}
	}
}

func TestNewDense_BadShape(t *testing.T) {
	_, err := cmatrix.NewDense(0, 3)
	assert.ErrorIs(t, err, cmatrix.ErrBadShape)
}

func TestAtSet_OutOfRange(t *testing.T) {
	m, err := cmatrix.NewDense(2, 2)
	require.NoError(t, err)
	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, cmatrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), cmatrix.ErrOutOfRange)
	require.NoError(t, m.Set(1, 1, 2i))
	v, err := m.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2i, v)
}

func TestAddSubMul(t *testing.T) {
	a := mustRows(t, [][]complex128{{1, 2i}, {3, 4}})
	b := mustRows(t, [][]complex128{{1i, 0}, {0, 1}})

	sum, err := cmatrix.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1+1i, sum.Get(0, 0))

	diff, err := cmatrix.Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, 3+0i, diff.Get(1, 1))

	prod, err := cmatrix.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1i, prod.Get(0, 0))
	assert.Equal(t, 2i, prod.Get(0, 1))
	assert.Equal(t, 3i, prod.Get(1, 0))

	_, err = cmatrix.Mul(a, mustRows(t, [][]complex128{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}))
	assert.ErrorIs(t, err, cmatrix.ErrDimensionMismatch)
}

func TestInverse_ClosedFormsAndLU(t *testing.T) {
	cases := map[string][][]complex128{
		"1x1": {{2 - 1i}},
		"2x2": {{1 + 1i, 0.5}, {0.5, 2 - 0.3i}},
		"3x3": {{1 + 0.2i, 0.1, 0.3i}, {0.1, 1.5, 0.2}, {0.3i, 0.2, 2 + 1i}},
		"5x5": {
			{1 + 0.5i, 0.2, 0, 0.1i, 0},
			{0.2, 2, 0.3, 0, 0.1},
			{0, 0.3, 0.1 + 1i, 0.4, 0},
			{0.1i, 0, 0.4, 3, 0.2i},
			{0, 0.1, 0, 0.2i, 1},
		},
		"needs pivot": {
			{0, 1, 0, 0},
			{1, 0, 0, 0},
			{0, 0, 0, 1i},
			{0, 0, 2, 0},
		},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			m := mustRows(t, rows)
			inv, err := cmatrix.Inverse(m)
			require.NoError(t, err)
			prod, err := cmatrix.Mul(m, inv)
			require.NoError(t, err)
			assertIdentity(t, prod, 1e-12)
		})
	}
}

func TestInverse_Singular(t *testing.T) {
	for _, rows := range [][][]complex128{
		{{0}},
		{{1, 2}, {2, 4}},
		{{1, 2, 3}, {2, 4, 6}, {0, 1, 1}},
		{{1, 1, 0, 0}, {1, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}},
	} {
		_, err := cmatrix.Inverse(mustRows(t, rows))
		assert.ErrorIs(t, err, cmatrix.ErrSingular)
	}
	_, err := cmatrix.Inverse(mustRows(t, [][]complex128{{1, 2}}))
	assert.ErrorIs(t, err, cmatrix.ErrNonSquare)
}
