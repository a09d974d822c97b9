// SPDX-License-Identifier: MIT

package unresolved

// Quadrature abscissas and weights of GNRL3, one column per number of
// degrees of freedom 1..4 and a fifth single-point column for widths that
// are not distributed.
var (
	quadratureX = [quadraturePoints][fixedDOF]float64{
		{3.0013465e-03, 1.3219203e-02, 1.0004488e-03, 1.3219203e-02, 1.0e+0},
		{7.8592886e-02, 7.2349624e-02, 2.6197629e-02, 7.2349624e-02, 0.0e+0},
		{4.3282415e-01, 1.9089473e-01, 1.4427472e-01, 1.9089473e-01, 0.0e+0},
		{1.3345267e+00, 3.9528842e-01, 4.4484223e-01, 3.9528842e-01, 0.0e+0},
		{3.0481846e+00, 7.4083443e-01, 1.0160615e+00, 7.4083443e-01, 0.0e+0},
		{5.8263198e+00, 1.3498293e+00, 1.9421066e+00, 1.3498293e+00, 0.0e+0},
		{9.9452656e+00, 2.5297983e+00, 3.3150885e+00, 2.5297983e+00, 0.0e+0},
		{1.5782128e+01, 5.2384894e+00, 5.2607092e+00, 5.2384894e+00, 0.0e+0},
		{2.3996824e+01, 1.3821772e+01, 7.9989414e+00, 1.3821772e+01, 0.0e+0},
		{3.6216208e+01, 7.5647525e+01, 1.2072069e+01, 7.5647525e+01, 0.0e+0},
	}
	quadratureW = [quadraturePoints][fixedDOF]float64{
		{1.1120413e-01, 3.3773418e-02, 3.3376214e-04, 1.7623788e-03, 1.0e+0},
		{2.3546798e-01, 7.9932171e-02, 1.8506108e-02, 2.1517749e-02, 0.0e+0},
		{2.8440987e-01, 1.2835937e-01, 1.2309946e-01, 8.0979849e-02, 0.0e+0},
		{2.2419127e-01, 1.7652616e-01, 2.9918923e-01, 1.8797998e-01, 0.0e+0},
		{1.0967668e-01, 2.1347043e-01, 3.3431475e-01, 3.0156335e-01, 0.0e+0},
		{3.0493789e-02, 2.1154965e-01, 1.7766657e-01, 2.9616091e-01, 0.0e+0},
		{4.2930874e-03, 1.3365186e-01, 4.2695894e-02, 1.0775649e-01, 0.0e+0},
		{2.5827047e-04, 2.2630659e-02, 4.0760575e-03, 2.5171914e-03, 0.0e+0},
		{4.9031965e-06, 1.6313638e-05, 1.1766115e-04, 8.9630388e-10, 0.0e+0},
		{1.4079206e-08, 0.0000000e+00, 5.0989546e-07, 0.0000000e+00, 0.0e+0},
	}
)

// column maps degrees of freedom to a quadrature column; anything outside
// 1..4 selects the undistributed column.
func column(dof float64) int {
	n := int(dof)
	if n < 1 || n > 4 {
		return fixedDOF - 1
	}

	return n - 1
}

// FluctuationIntegrals returns the elastic, capture and fission fluctuation
// integrals R_n, R_c and R_f for one set of average widths. Neutron,
// fission and competitive widths are χ²-distributed with dof; capture is
// fixed. Every integral is 0 without a positive capture and neutron width.
func FluctuationIntegrals(w Widths, dof DOF) (rn, rc, rf float64) {
	if w.Capture <= 0 || w.Neutron <= 0 {
		return 0, 0, 0
	}
	mun, muf, mux := column(dof.Neutron), column(dof.Fission), column(dof.Competitive)

	for j := 0; j < quadraturePoints; j++ {
		xj, wj := quadratureX[j][mun], quadratureW[j][mun]
		effj := w.Neutron*xj + w.Capture
		switch {
		case w.Fission != 0 && w.Competitive != 0:
			for k := 0; k < quadraturePoints; k++ {
				xk, wk := quadratureX[k][muf], quadratureW[k][muf]
				effjk := effj + w.Fission*xk
				for i := 0; i < quadraturePoints; i++ {
					xi, wi := quadratureX[i][mux], quadratureW[i][mux]
					f := wi * wk * wj * xj / (effjk + w.Competitive*xi)
					rn += xj * f
					rc += f
					rf += xk * f
				}
			}
		case w.Fission != 0:
			for k := 0; k < quadraturePoints; k++ {
				xk, wk := quadratureX[k][muf], quadratureW[k][muf]
				f := wk * wj * xj / (effj + w.Fission*xk)
				rn += xj * f
				rc += f
				rf += xk * f
			}
		case w.Competitive != 0:
			for k := 0; k < quadraturePoints; k++ {
				xk, wk := quadratureX[k][mux], quadratureW[k][mux]
				f := wk * wj * xj / (effj + w.Competitive*xk)
				rn += xj * f
				rc += f
			}
		default:
			f := wj * xj / effj
			rn += xj * f
			rc += f
		}
	}

	return rn, rc, rf
}
