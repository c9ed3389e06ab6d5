package ring

// NTT computes the Number-Theoretic Transform of p and returns the result
// as a new polynomial in the NTT domain. The input must be in the Normal
// domain.
func (p Poly) NTT() (Poly, error) {
	if p.Domain != Normal {
		return Poly{}, ErrDomainMismatch
	}

	out := p.CopyNew()
	c := out.Coeffs

	k := 1
	for l := 128; l >= 2; l >>= 1 {
		for start := 0; start < N; start += 2 * l {
			zeta := zetas[k]
			k++
			for j := start; j < start+l; j++ {
				t := zeta * c[j+l] % Q
				c[j+l] = (c[j] + Q - t) % Q
				c[j] = (c[j] + t) % Q
			}
		}
	}

	out.Domain = NTT
	return out, nil
}

// InvNTT computes the inverse Number-Theoretic Transform of p and returns
// the result as a new polynomial in the Normal domain. The input must be
// in the NTT domain.
func (p Poly) InvNTT() (Poly, error) {
	if p.Domain != NTT {
		return Poly{}, ErrDomainMismatch
	}

	out := p.CopyNew()
	c := out.Coeffs

	k := 127
	for l := 2; l <= 128; l <<= 1 {
		for start := 0; start < N; start += 2 * l {
			zeta := zetas[k]
			k--
			for j := start; j < start+l; j++ {
				t := c[j]
				c[j] = (t + c[j+l]) % Q
				c[j+l] = zeta * (Q + c[j+l] - t) % Q
			}
		}
	}

	for i := range c {
		c[i] = c[i] * nttScale % Q
	}

	out.Domain = Normal
	return out, nil
}

// mulNTT multiplies two NTT-domain polynomials coefficient-wise. The 256
// coefficients are grouped in 64 blocks of 4, each block holding two
// degree-one polynomials in Z_q[X]/(X^2 - gamma) and Z_q[X]/(X^2 + gamma)
// with gamma = zetas[64+i].
func mulNTT(a, b Poly) Poly {
	out := NewPoly(NTT)

	for i := 0; i < 64; i++ {
		gamma := zetas[64+i]
		a0, a1, a2, a3 := a.Coeffs[4*i], a.Coeffs[4*i+1], a.Coeffs[4*i+2], a.Coeffs[4*i+3]
		b0, b1, b2, b3 := b.Coeffs[4*i], b.Coeffs[4*i+1], b.Coeffs[4*i+2], b.Coeffs[4*i+3]

		out.Coeffs[4*i] = (a0*b0%Q + gamma*(a1*b1%Q)) % Q
		out.Coeffs[4*i+1] = (a0*b1 + a1*b0) % Q
		out.Coeffs[4*i+2] = (a2*b2%Q + (Q-gamma)*(a3*b3%Q)) % Q
		out.Coeffs[4*i+3] = (a2*b3 + a3*b2) % Q
	}

	return out
}
