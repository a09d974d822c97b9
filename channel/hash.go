package channel

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Hash returns a 64-bit FNV-1a digest of the channel identity. Index is
// included; Xi is not. Channels with equal keys but different indices hash
// differently, so Hash is for logging and caching, not for Map lookups.
func (c Channel) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = h.Write(buf[:])
	}
	putBool := func(b bool) {
		if b {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
	}
	putString := func(s string) {
		putInt(len(s))
		_, _ = h.Write([]byte(s))
	}

	putInt(c.L)
	putInt(c.J2)
	putString(c.Reaction)
	putInt(c.Index)
	putInt(c.S2)
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c.GFactor))
	_, _ = h.Write(buf[:])
	putString(c.ParticleA)
	putString(c.ParticleB)
	putBool(c.Elastic)
	putInt(int(c.Class))
	putBool(c.Relativistic)
	putBool(c.Eliminated)

	return h.Sum64()
}
