package unresolved_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/resonances/unresolved"
)

func TestFluctuationIntegrals(t *testing.T) {
	tests := []struct {
		name       string
		w          unresolved.Widths
		dof        unresolved.DOF
		rn, rc, rf float64
	}{
		{
			name: "neutron and capture",
			w:    unresolved.Widths{Neutron: 1, Capture: 1},
			dof:  unresolved.DOF{Neutron: 1},
			rn:   0.6556783135337101, rc: 0.34432170933263545,
		},
		{
			name: "undistributed",
			w:    unresolved.Widths{Neutron: 2, Capture: 1},
			dof:  unresolved.DOF{Neutron: 0},
			rn:   1.0 / 3, rc: 1.0 / 3,
		},
		{
			name: "fission",
			w:    unresolved.Widths{Neutron: 1, Capture: 1, Fission: 0.5},
			dof:  unresolved.DOF{Neutron: 2, Fission: 3},
			rn:   0.5165470994445684, rc: 0.3344661672999719, rf: 0.30017697896178813,
		},
		{
			name: "fission and competition",
			w:    unresolved.Widths{Neutron: 1, Capture: 1, Fission: 0.5, Competitive: 0.2},
			dof:  unresolved.DOF{Neutron: 2, Fission: 3, Competitive: 1},
			rn:   0.49052773737205185, rc: 0.31338786855748485, rf: 0.2830749093993871,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rn, rc, rf := unresolved.FluctuationIntegrals(tc.w, tc.dof)
			assert.InEpsilon(t, tc.rn, rn, 1e-12)
			assert.InEpsilon(t, tc.rc, rc, 1e-12)
			if tc.rf == 0 {
				assert.Zero(t, rf)
			} else {
				assert.InEpsilon(t, tc.rf, rf, 1e-12)
			}
		})
	}
}

func TestFluctuationIntegrals_NoWidths(t *testing.T) {
	for _, w := range []unresolved.Widths{
		{Neutron: 1},
		{Capture: 1},
		{Neutron: -1, Capture: 1},
	} {
		rn, rc, rf := unresolved.FluctuationIntegrals(w, unresolved.DOF{Neutron: 1})
		assert.Zero(t, rn)
		assert.Zero(t, rc)
		assert.Zero(t, rf)
	}
}
