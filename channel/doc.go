// Package channel models a two-body reaction channel and the bookkeeping
// that ties channels to resonances.
//
// A Channel carries its quantum numbers (orbital momentum L, total angular
// momentum J, channel spin s), the reaction it belongs to, and a few flags
// (elastic, eliminated, channel class). Angular momenta are stored doubled so
// that half-integer values compare exactly.
//
// Two channels are "the same channel" when their Key values are equal. The
// key ignores Index and the threshold Xi: Index only records which resonance
// row or column produced the channel, and Xi is a derived float that would
// make equality brittle.
//
// Map aggregates partial widths by channel:
//
//	m := channel.NewMap()
//	m.Add(ch, 0, 0.9)   // resonance 0 has Γ = 0.9 eV in ch
//	m.Add(ch, 4, 0.0)   // resonance 4 contributes nothing but is tracked
//	kept, eliminated := m.Split()
//
// Insertion order of channels is preserved, because formalisms index their
// matrices by it.
package channel
