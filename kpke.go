package mlkem

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tuneinsight/mlkem/ring"
)

// ErrModulusCheck is returned when the vector t embedded in an
// encapsulation key does not survive a decode/encode round trip, which
// happens exactly when a coefficient of the wire encoding exceeds Q-1.
var ErrModulusCheck = errors.New("encapsulation key modulus check failed")

// sampleMatrix expands the k x k matrix A-hat from the public seed rho, in
// the NTT domain. The entry at (i, j) is rejection-sampled from the XOF
// keyed with (rho, j, i); the transposed variant swaps the index order, so
// the storage itself is never transposed.
func (p ParameterSet) sampleMatrix(rho []byte, transposed bool) (ring.Matrix, error) {
	a := ring.NewMatrix(p.k, p.k, ring.NTT)
	for i := 0; i < p.k; i++ {
		for j := 0; j < p.k; j++ {
			x, y := byte(j), byte(i)
			if transposed {
				x, y = byte(i), byte(j)
			}
			s := ring.NewUniformSampler(xof(rho, x, y))
			entry, err := s.ReadNew()
			if err != nil {
				return ring.Matrix{}, err
			}
			a.Set(i, j, entry)
		}
	}
	return a, nil
}

// sampleNoiseVector derives a k x 1 vector of centered binomial
// polynomials from the seed s, consuming one PRF counter per entry
// starting at n0.
func (p ParameterSet) sampleNoiseVector(s []byte, eta int, n0 byte) (ring.Matrix, error) {
	v := ring.NewVector(p.k, ring.Normal)
	for i := 0; i < p.k; i++ {
		buf := prf(eta, s, n0+byte(i))
		entry, err := ring.SampleCBD(buf, eta)
		wipe(buf)
		if err != nil {
			return ring.Matrix{}, err
		}
		v.Set(i, 0, entry)
	}
	return v, nil
}

// pkeKeyGen derives a K-PKE key pair from the 32-byte seed d, following
// FIPS 203 Algorithm 13.
func (p ParameterSet) pkeKeyGen(d []byte) (ekPKE, dkPKE []byte, err error) {
	rho, sigma := hashG(append(bytes.Clone(d), byte(p.k)))
	defer wipe(sigma)

	a, err := p.sampleMatrix(rho, false)
	if err != nil {
		return nil, nil, err
	}

	s, err := p.sampleNoiseVector(sigma, p.eta1, 0)
	if err != nil {
		return nil, nil, err
	}
	defer s.Zero()

	e, err := p.sampleNoiseVector(sigma, p.eta1, byte(p.k))
	if err != nil {
		return nil, nil, err
	}

	sHat, err := s.NTT()
	if err != nil {
		return nil, nil, err
	}
	defer sHat.Zero()

	eHat, err := e.NTT()
	if err != nil {
		return nil, nil, err
	}

	as, err := a.Mul(sHat)
	if err != nil {
		return nil, nil, err
	}

	t, err := as.Add(eHat)
	if err != nil {
		return nil, nil, err
	}

	ekPKE = append(t.Encode(12), rho...)
	dkPKE = sHat.Encode(12)
	return ekPKE, dkPKE, nil
}

// pkeEncrypt encrypts the 32-byte message m under ekPKE with the
// encryption randomness r, following FIPS 203 Algorithm 14.
func (p ParameterSet) pkeEncrypt(ekPKE, m, r []byte) ([]byte, error) {
	tBytes, rho := ekPKE[:384*p.k], ekPKE[384*p.k:]

	t, err := ring.DecodeVector(tBytes, p.k, 12, ring.NTT)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(t.Encode(12), tBytes) {
		return nil, ErrModulusCheck
	}

	at, err := p.sampleMatrix(rho, true)
	if err != nil {
		return nil, err
	}

	y, err := p.sampleNoiseVector(r, p.eta1, 0)
	if err != nil {
		return nil, err
	}
	defer y.Zero()

	e1, err := p.sampleNoiseVector(r, p.eta2, byte(p.k))
	if err != nil {
		return nil, err
	}

	e2Buf := prf(p.eta2, r, byte(2*p.k))
	e2, err := ring.SampleCBD(e2Buf, p.eta2)
	wipe(e2Buf)
	if err != nil {
		return nil, err
	}

	yHat, err := y.NTT()
	if err != nil {
		return nil, err
	}
	defer yHat.Zero()

	aty, err := at.Mul(yHat)
	if err != nil {
		return nil, err
	}

	u, err := aty.InvNTT()
	if err != nil {
		return nil, err
	}
	if u, err = u.Add(e1); err != nil {
		return nil, err
	}

	mPoly, err := ring.Decode(m, 1, ring.Normal)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}
	mu := mPoly.Decompress(1)

	tyHat, err := t.Dot(yHat)
	if err != nil {
		return nil, err
	}
	v, err := tyHat.InvNTT()
	if err != nil {
		return nil, err
	}
	if v, err = v.Add(e2); err != nil {
		return nil, err
	}
	if v, err = v.Add(mu); err != nil {
		return nil, err
	}

	c1 := u.Compress(p.du).Encode(p.du)
	c2 := v.Compress(p.dv).Encode(p.dv)
	return append(c1, c2...), nil
}

// pkeDecrypt recovers the 32-byte message from a ciphertext under dkPKE,
// following FIPS 203 Algorithm 15.
func (p ParameterSet) pkeDecrypt(dkPKE, c []byte) ([]byte, error) {
	split := 32 * p.du * p.k
	c1, c2 := c[:split], c[split:]

	u, err := ring.DecodeVector(c1, p.k, p.du, ring.Normal)
	if err != nil {
		return nil, err
	}
	u = u.Decompress(p.du)

	vPoly, err := ring.Decode(c2, p.dv, ring.Normal)
	if err != nil {
		return nil, err
	}
	v := vPoly.Decompress(p.dv)

	sHat, err := ring.DecodeVector(dkPKE, p.k, 12, ring.NTT)
	if err != nil {
		return nil, err
	}
	defer sHat.Zero()

	uHat, err := u.NTT()
	if err != nil {
		return nil, err
	}

	suHat, err := sHat.Dot(uHat)
	if err != nil {
		return nil, err
	}
	su, err := suHat.InvNTT()
	if err != nil {
		return nil, err
	}

	w, err := v.Sub(su)
	if err != nil {
		return nil, err
	}
	defer w.Zero()

	return w.Compress(1).Encode(1), nil
}
