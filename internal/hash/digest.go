package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// String computes the xxHash64 of the given string.
func String(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Digest accumulates an xxHash64 over a sequence of typed fields.
//
// Strings are length-prefixed so that ("ab", "c") and ("a", "bc") hash differently.
type Digest struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewDigest returns an empty Digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// AddString appends a length-prefixed string.
func (h *Digest) AddString(s string) {
	h.AddUint64(uint64(len(s)))
	_, _ = h.d.WriteString(s)
}

// AddFloat64 appends the IEEE-754 bits of v.
func (h *Digest) AddFloat64(v float64) {
	h.AddUint64(math.Float64bits(v))
}

// AddUint64 appends v in little-endian order.
func (h *Digest) AddUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

// Sum64 returns the current hash.
func (h *Digest) Sum64() uint64 {
	return h.d.Sum64()
}
