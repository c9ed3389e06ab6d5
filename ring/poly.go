package ring

import (
	"golang.org/x/exp/slices"
)

// Poly is a polynomial of R_q, tagged with the domain its coefficients
// live in. All operations keep coefficients reduced in [0, Q), except
// Compress(d), whose outputs lie in [0, 2^d).
type Poly struct {
	Coeffs []uint64
	Domain Domain
}

// NewPoly creates a new polynomial with N coefficients set to zero in the
// given domain.
func NewPoly(domain Domain) Poly {
	return Poly{Coeffs: make([]uint64, N), Domain: domain}
}

// CopyNew creates an exact copy of the target polynomial.
func (p Poly) CopyNew() Poly {
	return Poly{Coeffs: slices.Clone(p.Coeffs), Domain: p.Domain}
}

// Equal returns true if both polynomials share the same domain and have
// identical coefficients.
func (p Poly) Equal(other Poly) bool {
	return p.Domain == other.Domain && slices.Equal(p.Coeffs, other.Coeffs)
}

// Zero overwrites all coefficients of the target polynomial with zeros.
// It is used to wipe secret polynomials once they are no longer needed.
func (p Poly) Zero() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}
