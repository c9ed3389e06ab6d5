package ring

import (
	"fmt"
	"math/bits"
)

// SampleCBD derives a Normal-domain polynomial from 64*eta input bytes,
// following the centered binomial distribution with parameter eta. The
// input is consumed as a little-endian bit stream: each coefficient takes
// 2*eta bits split in two eta-bit halves a and b, and the coefficient is
// popcount(a) - popcount(b) mod Q.
func SampleCBD(input []byte, eta int) (Poly, error) {
	if len(input) != 64*eta {
		return Poly{}, fmt.Errorf("cbd with eta=%d requires %d bytes, got %d: %w", eta, 64*eta, len(input), ErrInvalidLength)
	}

	mask := uint32(1)<<eta - 1
	p := NewPoly(Normal)
	for i := range p.Coeffs {
		x := readBits(input, 2*i*eta, 2*eta)
		a := uint64(bits.OnesCount32(x & mask))
		b := uint64(bits.OnesCount32(x >> eta))
		p.Coeffs[i] = (a + Q - b) % Q
	}

	return p, nil
}

// readBits reads n <= 8 bits starting at bit offset pos of a little-endian
// bit stream.
func readBits(data []byte, pos, n int) uint32 {
	var x uint32
	for t := 0; t < n; t++ {
		b := pos + t
		x |= uint32(data[b>>3]>>(b&7)&1) << t
	}
	return x
}
