package penetrability_test

import (
	"fmt"

	"github.com/katalvlaran/resonances/penetrability"
)

func ExampleEvaluate() {
	f := penetrability.Evaluate(1, 1)
	fmt.Printf("P=%.3f S=%.3f\n", f.P, f.S)
	// Output: P=0.500 S=-0.500
}

func ExampleTable() {
	for l, f := range penetrability.Table(2, 2) {
		fmt.Printf("L=%d P=%.4f\n", l, f.P)
	}
	// Output:
	// L=0 P=2.0000
	// L=1 P=1.6000
	// L=2 P=0.8649
}
