package cmatrix_test

import (
	"testing"

	"github.com/katalvlaran/resonances/cmatrix"
)

func benchInverse(b *testing.B, n int) {
	m, _ := cmatrix.NewDense(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := complex(0.01*float64(i+j), 0.02*float64(i-j))
			if i == j {
				v += 1 + 0.5i
			}
			m.Put(i, j, v)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cmatrix.Inverse(m); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInverse3(b *testing.B)  { benchInverse(b, 3) }
func BenchmarkInverse12(b *testing.B) { benchInverse(b, 12) }
