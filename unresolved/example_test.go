package unresolved_test

import (
	"fmt"

	"github.com/katalvlaran/resonances/unresolved"
)

func ExampleFluctuationIntegrals() {
	rn, rc, _ := unresolved.FluctuationIntegrals(
		unresolved.Widths{Neutron: 1, Capture: 1},
		unresolved.DOF{Neutron: 1},
	)
	fmt.Printf("Rn=%.6f Rc=%.6f\n", rn, rc)
	// Output: Rn=0.655678 Rc=0.344322
}

func ExampleSumRuleTc() {
	fmt.Printf("%.6f\n", unresolved.SumRuleTc(1, 3.14159265358979))
	// Output: 0.828427
}
