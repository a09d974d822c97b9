package parallel_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/resonances/parallel"
	"github.com/katalvlaran/resonances/xs"
)

func ExampleMap() {
	energies := make([]float64, 5000)
	for i := range energies {
		energies[i] = float64(i)
	}
	double := func(_ context.Context, e []float64) (xs.Set, error) {
		s := xs.NewSet(len(e), xs.Total)
		for i, x := range e {
			s[xs.Total][i] = 2 * x
		}
		return s, nil
	}

	out, err := parallel.Map(context.Background(), energies, parallel.CrossSections(), parallel.DefaultOptions(), double)
	if err != nil {
		panic(err)
	}
	fmt.Println(len(out[xs.Total]), out[xs.Total][4999])
	// Output: 5000 9998
}
