// SPDX-License-Identifier: MIT

package cmatrix

import "math/cmplx"

// validateSameShape checks that a and b are non-nil and conformable for Add/Sub.
func validateSameShape(a, b *Dense) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if a.r != b.r || a.c != b.c {
		return ErrDimensionMismatch
	}

	return nil
}

// validateSquare checks that m is non-nil and square.
func validateSquare(m *Dense) error {
	if m == nil {
		return ErrNilMatrix
	}
	if m.r != m.c {
		return ErrNonSquare
	}

	return nil
}

// addSub computes out = a + sign·b into a fresh matrix.
//
// Implementation:
//   - Stage 1: validate shapes, allocate result.
//   - Stage 2: single flat loop over the backing slices.
//
// Complexity:
//   - Time O(r·c), Space O(r·c).
func addSub(a, b *Dense, sign complex128, opTag string) (*Dense, error) {
	if err := validateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	out := &Dense{r: a.r, c: a.c, data: make([]complex128, len(a.data))}
	for i := range a.data {
		out.data[i] = a.data[i] + sign*b.data[i]
	}

	return out, nil
}

// Add returns a + b.
func Add(a, b *Dense) (*Dense, error) { return addSub(a, b, 1, opAdd) }

// Sub returns a − b.
func Sub(a, b *Dense) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul returns the product a·b.
//
// Implementation:
//   - Stage 1: validate a.Cols == b.Rows.
//   - Stage 2: i→k→j loop so the inner loop walks both b and out row-wise.
//
// Complexity:
//   - Time O(r·n·c), Space O(r·c).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	out := &Dense{r: a.r, c: b.c, data: make([]complex128, a.r*b.c)}
	var aik complex128
	for i := 0; i < a.r; i++ {
		for k := 0; k < a.c; k++ {
			aik = a.data[i*a.c+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.c; j++ {
				out.data[i*b.c+j] += aik * b.data[k*b.c+j]
			}
		}
	}

	return out, nil
}

// Scale returns α·m.
func Scale(m *Dense, alpha complex128) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opScale, ErrNilMatrix)
	}
	out := &Dense{r: m.r, c: m.c, data: make([]complex128, len(m.data))}
	for i, v := range m.data {
		out.data[i] = alpha * v
	}

	return out, nil
}

// Inverse returns m⁻¹.
//
// Implementation:
//   - Stage 1: validate square.
//   - Stage 2: n ≤ 3 uses the explicit cofactor formula (the shape that
//     Reich-Moore level matrices almost always take: neutron, or neutron plus
//     two fission channels).
//   - Stage 3: n > 3 factors P·A = L·U once and solves n unit right-hand sides.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//   - ErrSingular when the determinant (n ≤ 3) or a pivot (n > 3) is zero.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Inverse(m *Dense) (*Dense, error) {
	if err := validateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	switch m.r {
	case 1:
		return inverse1(m)
	case 2:
		return inverse2(m)
	case 3:
		return inverse3(m)
	}

	lu, perm, err := luDecompose(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	n := m.r
	inv := &Dense{r: n, c: n, data: make([]complex128, n*n)}
	y := make([]complex128, n)
	x := make([]complex128, n)
	var sum complex128
	for col := 0; col < n; col++ {
		// forward substitution on the permuted unit vector
		for i := 0; i < n; i++ {
			sum = 0
			if perm[i] == col {
				sum = 1
			}
			for k := 0; k < i; k++ {
				sum -= lu.data[i*n+k] * y[k]
			}
			y[i] = sum
		}
		// backward substitution
		for i := n - 1; i >= 0; i-- {
			sum = y[i]
			for k := i + 1; k < n; k++ {
				sum -= lu.data[i*n+k] * x[k]
			}
			x[i] = sum / lu.data[i*n+i]
		}
		for i := 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

func inverse1(m *Dense) (*Dense, error) {
	if m.data[0] == 0 {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}

	return &Dense{r: 1, c: 1, data: []complex128{1 / m.data[0]}}, nil
}

func inverse2(m *Dense) (*Dense, error) {
	a, b, c, d := m.data[0], m.data[1], m.data[2], m.data[3]
	det := a*d - b*c
	if det == 0 {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}

	return &Dense{r: 2, c: 2, data: []complex128{d / det, -b / det, -c / det, a / det}}, nil
}

func inverse3(m *Dense) (*Dense, error) {
	a := m.data
	c00 := a[4]*a[8] - a[5]*a[7]
	c01 := a[5]*a[6] - a[3]*a[8]
	c02 := a[3]*a[7] - a[4]*a[6]
	det := a[0]*c00 + a[1]*c01 + a[2]*c02
	if det == 0 {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}
	inv := []complex128{
		c00, a[2]*a[7] - a[1]*a[8], a[1]*a[5] - a[2]*a[4],
		c01, a[0]*a[8] - a[2]*a[6], a[2]*a[3] - a[0]*a[5],
		c02, a[1]*a[6] - a[0]*a[7], a[0]*a[4] - a[1]*a[3],
	}
	for i := range inv {
		inv[i] /= det
	}

	return &Dense{r: 3, c: 3, data: inv}, nil
}

// LU factors m with partial pivoting, returning the packed factors (unit
// lower triangle below the diagonal, U on and above it) and the row
// permutation: row i of the factored matrix is row perm[i] of m.
func LU(m *Dense) (*Dense, []int, error) {
	if err := validateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	lu, perm, err := luDecompose(m)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	return lu, perm, nil
}

// luDecompose is the Doolittle kernel with row exchange on the largest
// modulus in each column.
func luDecompose(m *Dense) (*Dense, []int, error) {
	n := m.r
	lu := m.Clone()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for k := 0; k < n; k++ {
		p, best := k, cmplx.Abs(lu.data[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := cmplx.Abs(lu.data[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best == 0 {
			return nil, nil, ErrSingular
		}
		if p != k {
			for j := 0; j < n; j++ {
				lu.data[k*n+j], lu.data[p*n+j] = lu.data[p*n+j], lu.data[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}
		pivot := lu.data[k*n+k]
		for i := k + 1; i < n; i++ {
			f := lu.data[i*n+k] / pivot
			lu.data[i*n+k] = f
			if f == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				lu.data[i*n+j] -= f * lu.data[k*n+j]
			}
		}
	}

	return lu, perm, nil
}
