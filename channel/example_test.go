package channel_test

import (
	"fmt"

	"github.com/katalvlaran/resonances/channel"
)

func ExampleMap() {
	m := channel.NewMap()
	a := channel.Channel{L: 0, J2: 1, S2: 1, Reaction: "elastic", Index: 0, Elastic: true, Class: channel.Neutron}
	b := a
	b.Index = 7 // same channel, created by another resonance

	m.Add(a, 0, 0.9)
	m.Add(b, 7, 0.3)
	fmt.Println(m.Len(), m.Resonances(a))
	// Output: 1 [0 7]
}
