package bigint

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash returns a 64-bit hash of x. Equal values hash equally; the hash
// covers the sign and the normalized magnitude only, never spare capacity.
func (x *Int) Hash() uint64 {
	h := xxhash.New()
	var buf [4]byte
	if x.neg {
		buf[0] = 1
	}
	_, _ = h.Write(buf[:1])
	for _, d := range x.abs {
		binary.LittleEndian.PutUint32(buf[:], d)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
