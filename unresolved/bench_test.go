package unresolved_test

import (
	"testing"

	"github.com/katalvlaran/resonances/unresolved"
)

func BenchmarkFluctuationIntegrals_Competition(b *testing.B) {
	w := unresolved.Widths{Neutron: 1, Capture: 1, Fission: 0.5, Competitive: 0.2}
	dof := unresolved.DOF{Neutron: 2, Fission: 3, Competitive: 1}
	for i := 0; i < b.N; i++ {
		unresolved.FluctuationIntegrals(w, dof)
	}
}

func BenchmarkCrossSection(b *testing.B) {
	r := region(b, mixed, unresolved.Options{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.CrossSection(); err != nil {
			b.Fatal(err)
		}
	}
}
