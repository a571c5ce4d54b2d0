package primitive

// ghash implements the GHASH universal hash used by GCM (NIST SP 800-38D,
// section 6.4). It operates incrementally: Update folds one 16-byte block
// of additional authenticated data or ciphertext into the running value at
// a time, so the caller never needs the whole message in memory at once.
type ghash struct {
	h   [16]byte // hash subkey, H = E(K, 0^128)
	y   [16]byte // running value
	buf [16]byte // partial-block accumulator
	n   int      // bytes currently held in buf
}

func newGHASH(h [16]byte) *ghash {
	return &ghash{h: h}
}

// Update folds len(data) bytes of data into the running hash, buffering any
// partial trailing block until it is completed by a later call or padded by
// Sum.
func (g *ghash) Update(data []byte) {
	for len(data) > 0 {
		space := 16 - g.n
		take := space
		if take > len(data) {
			take = len(data)
		}
		copy(g.buf[g.n:], data[:take])
		g.n += take
		data = data[take:]
		if g.n == 16 {
			g.absorb(g.buf[:])
			g.n = 0
		}
	}
}

// absorb XORs a full 16-byte block into y and multiplies by H in GF(2^128).
func (g *ghash) absorb(block []byte) {
	var x [16]byte
	for i := 0; i < 16; i++ {
		x[i] = g.y[i] ^ block[i]
	}
	g.y = gfMul(x, g.h)
}

// flush pads any partial trailing block with zeros and absorbs it, then
// resets the accumulator to empty. Per SP 800-38D's GHASH input
// `A || 0^v || C || 0^u || [len(A)][len(C)]`, AAD and ciphertext are
// padded to the 16-byte boundary independently of one another — a caller
// with two logically distinct spans to hash (AAD then ciphertext, or
// ciphertext then the trailing lengths block) must call flush between
// them, or the end of one span packs into the same block as the start of
// the next with no zero padding separating them.
func (g *ghash) flush() {
	if g.n > 0 {
		var padded [16]byte
		copy(padded[:], g.buf[:g.n])
		g.absorb(padded[:])
		g.n = 0
	}
}

// Sum flushes any partial trailing block and returns the current running
// value.
func (g *ghash) Sum() [16]byte {
	g.flush()
	return g.y
}

// gfMul multiplies x and y as elements of GF(2^128) using the reduction
// polynomial from SP 800-38D, via the standard bit-serial shift-and-xor
// algorithm (algorithm 1 in the spec). Both operands are big-endian
// bit-strings, most significant bit first.
func gfMul(x, y [16]byte) [16]byte {
	var z [16]byte
	v := y

	for i := 0; i < 128; i++ {
		byteIdx := i / 8
		bitIdx := 7 - uint(i%8)
		if (x[byteIdx]>>bitIdx)&1 == 1 {
			for j := 0; j < 16; j++ {
				z[j] ^= v[j]
			}
		}

		lsb := v[15] & 1
		for j := 15; j > 0; j-- {
			v[j] = (v[j] >> 1) | (v[j-1] << 7)
		}
		v[0] >>= 1
		if lsb == 1 {
			v[0] ^= 0xe1
		}
	}

	return z
}
