package channel

import "sort"

type entry struct {
	ch     Channel
	widths map[int]float64
}

// Map associates channels with {resonance index → partial width}. Channel
// order is the order of first insertion.
type Map struct {
	order   []Key
	entries map[Key]*entry
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{entries: make(map[Key]*entry)}
}

// Add records width for resonance in channel c. The first Channel value
// added under a key is the one Channels returns; later calls only update
// widths, overwriting an existing resonance entry.
func (m *Map) Add(c Channel, resonance int, width float64) {
	k := c.Key()
	e, ok := m.entries[k]
	if !ok {
		e = &entry{ch: c, widths: make(map[int]float64)}
		m.entries[k] = e
		m.order = append(m.order, k)
	}
	e.widths[resonance] = width
}

// Contains reports whether a channel equal to c is present.
func (m *Map) Contains(c Channel) bool {
	_, ok := m.entries[c.Key()]

	return ok
}

// Len returns the number of channels.
func (m *Map) Len() int { return len(m.order) }

// Channels returns the channels in insertion order.
func (m *Map) Channels() []Channel {
	out := make([]Channel, len(m.order))
	for i, k := range m.order {
		out[i] = m.entries[k].ch
	}

	return out
}

// IndexOf returns the position of c in Channels, or -1.
func (m *Map) IndexOf(c Channel) int {
	k := c.Key()
	for i, o := range m.order {
		if o == k {
			return i
		}
	}

	return -1
}

// Width returns the width of resonance in channel c.
func (m *Map) Width(c Channel, resonance int) (float64, bool) {
	e, ok := m.entries[c.Key()]
	if !ok {
		return 0, false
	}
	w, ok := e.widths[resonance]

	return w, ok
}

// Widths returns a copy of the resonance→width table of c.
func (m *Map) Widths(c Channel) map[int]float64 {
	e, ok := m.entries[c.Key()]
	if !ok {
		return nil
	}
	out := make(map[int]float64, len(e.widths))
	for k, v := range e.widths {
		out[k] = v
	}

	return out
}

// Resonances returns the resonance indices of c in ascending order.
func (m *Map) Resonances(c Channel) []int {
	e, ok := m.entries[c.Key()]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(e.widths))
	for k := range e.widths {
		out = append(out, k)
	}
	sort.Ints(out)

	return out
}

// Split partitions m into kept and eliminated channels, preserving order.
func (m *Map) Split() (kept, eliminated *Map) {
	kept = m.Filter(func(c Channel) bool { return !c.Eliminated })
	eliminated = m.Filter(func(c Channel) bool { return c.Eliminated })

	return kept, eliminated
}

// Filter returns a new Map holding the channels for which keep is true.
func (m *Map) Filter(keep func(Channel) bool) *Map {
	out := NewMap()
	for _, k := range m.order {
		e := m.entries[k]
		if !keep(e.ch) {
			continue
		}
		out.entries[k] = &entry{ch: e.ch, widths: copyWidths(e.widths)}
		out.order = append(out.order, k)
	}

	return out
}

func copyWidths(in map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}
