package ring

import (
	"io"
)

// UniformSampler samples NTT-domain polynomials with coefficients uniform
// in [0, Q) by rejection sampling over an extendable output stream,
// usually SHAKE-128 keyed with a public seed.
type UniformSampler struct {
	xof  io.Reader
	buff [504]byte
}

// NewUniformSampler creates a new UniformSampler reading from the given
// stream.
func NewUniformSampler(xof io.Reader) *UniformSampler {
	return &UniformSampler{xof: xof}
}

// Read samples a fresh polynomial into p. Three stream bytes yield two
// twelve-bit candidates; candidates of Q or above are rejected. The buffer
// is replenished from the stream for as long as coefficients are missing,
// so rejection can never underfill the polynomial.
func (s *UniformSampler) Read(p *Poly) error {
	if p.Coeffs == nil {
		p.Coeffs = make([]uint64, N)
	}

	j := 0
	for j < N {
		if _, err := io.ReadFull(s.xof, s.buff[:]); err != nil {
			return err
		}

		for i := 0; i+2 < len(s.buff) && j < N; i += 3 {
			a, b, c := uint64(s.buff[i]), uint64(s.buff[i+1]), uint64(s.buff[i+2])

			if d1 := a + 256*(b%16); d1 < Q {
				p.Coeffs[j] = d1
				j++
			}
			if d2 := b/16 + 16*c; d2 < Q && j < N {
				p.Coeffs[j] = d2
				j++
			}
		}
	}

	p.Domain = NTT
	return nil
}

// ReadNew samples a fresh NTT-domain polynomial.
func (s *UniformSampler) ReadNew() (Poly, error) {
	p := NewPoly(NTT)
	err := s.Read(&p)
	return p, err
}
