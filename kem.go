package mlkem

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tuneinsight/mlkem/utils/sampling"
)

var (
	// ErrInvalidLength is returned when a seed, message or key does not
	// have the length required by the parameter set.
	ErrInvalidLength = errors.New("invalid byte length")

	// ErrCiphertextLength is returned by decapsulation when the ciphertext
	// length does not match the parameter set.
	ErrCiphertextLength = errors.New("invalid ciphertext length")

	// ErrDecapsKeyLength is returned by decapsulation when the
	// decapsulation key length does not match the parameter set.
	ErrDecapsKeyLength = errors.New("invalid decapsulation key length")

	// ErrHashCheck is returned by decapsulation when the hash embedded in
	// the decapsulation key disagrees with the freshly computed hash of
	// the encapsulation key.
	ErrHashCheck = errors.New("decapsulation key hash check failed")
)

// KeyGenInternal derives an encapsulation/decapsulation key pair from the
// two 32-byte seeds d and z, following FIPS 203 Algorithm 16. It is the
// derandomized form of KeyGen, exposed for test-vector replay.
func (p ParameterSet) KeyGenInternal(d, z []byte) (ek, dk []byte, err error) {
	if len(d) != SeedSize {
		return nil, nil, fmt.Errorf("seed d must be %d bytes, got %d: %w", SeedSize, len(d), ErrInvalidLength)
	}
	if len(z) != SeedSize {
		return nil, nil, fmt.Errorf("seed z must be %d bytes, got %d: %w", SeedSize, len(z), ErrInvalidLength)
	}

	ekPKE, dkPKE, err := p.pkeKeyGen(d)
	if err != nil {
		return nil, nil, err
	}

	ek = ekPKE
	dk = make([]byte, 0, p.DecapsulationKeySize())
	dk = append(dk, dkPKE...)
	dk = append(dk, ek...)
	dk = append(dk, hashH(ek)...)
	dk = append(dk, z...)
	wipe(dkPKE)
	return ek, dk, nil
}

// EncapsInternal derives a shared secret and its ciphertext from an
// encapsulation key and the 32-byte message m, following FIPS 203
// Algorithm 17. It is the derandomized form of Encaps, exposed for
// test-vector replay.
func (p ParameterSet) EncapsInternal(ek, m []byte) (K, c []byte, err error) {
	if len(ek) != p.EncapsulationKeySize() {
		return nil, nil, fmt.Errorf("encapsulation key must be %d bytes, got %d: %w", p.EncapsulationKeySize(), len(ek), ErrInvalidLength)
	}
	if len(m) != MessageSize {
		return nil, nil, fmt.Errorf("message must be %d bytes, got %d: %w", MessageSize, len(m), ErrInvalidLength)
	}

	gin := append(bytes.Clone(m), hashH(ek)...)
	kr, r := hashG(gin)
	defer wipe(gin, r)

	c, err = p.pkeEncrypt(ek, m, r)
	if err != nil {
		return nil, nil, err
	}

	return kr, c, nil
}

// DecapsInternal recovers the shared secret from a ciphertext under the
// decapsulation key, following FIPS 203 Algorithm 18. A ciphertext that
// fails the re-encryption check yields the implicit-rejection key J(z||c)
// rather than an error; the selection between the two candidates is
// performed in constant time.
func (p ParameterSet) DecapsInternal(dk, c []byte) ([]byte, error) {
	if len(c) != p.CiphertextSize() {
		return nil, fmt.Errorf("expected %d bytes, got %d: %w", p.CiphertextSize(), len(c), ErrCiphertextLength)
	}
	if len(dk) != p.DecapsulationKeySize() {
		return nil, fmt.Errorf("expected %d bytes, got %d: %w", p.DecapsulationKeySize(), len(dk), ErrDecapsKeyLength)
	}

	var (
		dkPKE = dk[:384*p.k]
		ekPKE = dk[384*p.k : 768*p.k+32]
		h     = dk[768*p.k+32 : 768*p.k+64]
		z     = dk[768*p.k+64:]
	)

	if !bytes.Equal(hashH(ekPKE), h) {
		return nil, ErrHashCheck
	}

	mPrime, err := p.pkeDecrypt(dkPKE, c)
	if err != nil {
		return nil, err
	}
	defer wipe(mPrime)

	gin := append(bytes.Clone(mPrime), h...)
	kPrime, rPrime := hashG(gin)
	defer wipe(gin, kPrime, rPrime)

	kBar := hashJ(append(bytes.Clone(z), c...))
	defer wipe(kBar)

	cPrime, err := p.pkeEncrypt(ekPKE, mPrime[:MessageSize], rPrime)
	if err != nil {
		return nil, err
	}

	return ctSelect(kBar, kPrime, ctEqual(c, cPrime))
}

// KeyGen generates a key pair from two fresh 32-byte seeds drawn from the
// OS entropy pool, following FIPS 203 Algorithm 19.
func (p ParameterSet) KeyGen() (*EncapsulationKey, *DecapsulationKey, error) {
	d := sampling.RandomBytes(SeedSize)
	z := sampling.RandomBytes(SeedSize)
	defer wipe(d, z)
	return p.KeyGenFromSeed(d, z)
}

// KeyGenFromSeed derives a key pair deterministically from the seeds d and
// z. Storing (d, z) and re-deriving the pair is an allowed alternative to
// storing the expanded decapsulation key.
func (p ParameterSet) KeyGenFromSeed(d, z []byte) (*EncapsulationKey, *DecapsulationKey, error) {
	ek, dk, err := p.KeyGenInternal(d, z)
	if err != nil {
		return nil, nil, err
	}
	return &EncapsulationKey{params: p, bytes: ek}, &DecapsulationKey{params: p, bytes: dk}, nil
}

// EncapsulationKey is the public key of a ML-KEM key pair, against which
// shared secrets are encapsulated.
type EncapsulationKey struct {
	params ParameterSet
	bytes  []byte
}

// NewEncapsulationKey validates the length of a wire-format encapsulation
// key against the parameter set and wraps it.
func NewEncapsulationKey(p ParameterSet, ek []byte) (*EncapsulationKey, error) {
	if len(ek) != p.EncapsulationKeySize() {
		return nil, fmt.Errorf("%s encapsulation key must be %d bytes, got %d: %w", p, p.EncapsulationKeySize(), len(ek), ErrInvalidLength)
	}
	return &EncapsulationKey{params: p, bytes: bytes.Clone(ek)}, nil
}

// Params returns the parameter set of the key.
func (ek *EncapsulationKey) Params() ParameterSet {
	return ek.params
}

// Bytes returns a copy of the wire-format key.
func (ek *EncapsulationKey) Bytes() []byte {
	return bytes.Clone(ek.bytes)
}

// Encaps produces a shared secret and the ciphertext transporting it,
// using a fresh 32-byte message from the OS entropy pool (FIPS 203
// Algorithm 20).
func (ek *EncapsulationKey) Encaps() (K, c []byte, err error) {
	m := sampling.RandomBytes(MessageSize)
	defer wipe(m)
	return ek.params.EncapsInternal(ek.bytes, m)
}

// DecapsulationKey is the private key of a ML-KEM key pair. It embeds the
// encapsulation key, its hash and the implicit-rejection seed z.
type DecapsulationKey struct {
	params ParameterSet
	bytes  []byte
}

// NewDecapsulationKey validates the length of a wire-format decapsulation
// key against the parameter set and wraps it.
func NewDecapsulationKey(p ParameterSet, dk []byte) (*DecapsulationKey, error) {
	if len(dk) != p.DecapsulationKeySize() {
		return nil, fmt.Errorf("%s decapsulation key must be %d bytes, got %d: %w", p, p.DecapsulationKeySize(), len(dk), ErrDecapsKeyLength)
	}
	return &DecapsulationKey{params: p, bytes: bytes.Clone(dk)}, nil
}

// Params returns the parameter set of the key.
func (dk *DecapsulationKey) Params() ParameterSet {
	return dk.params
}

// Bytes returns a copy of the wire-format key.
func (dk *DecapsulationKey) Bytes() []byte {
	return bytes.Clone(dk.bytes)
}

// EncapsulationKey returns the public key embedded in dk.
func (dk *DecapsulationKey) EncapsulationKey() *EncapsulationKey {
	k := dk.params.k
	return &EncapsulationKey{
		params: dk.params,
		bytes:  bytes.Clone(dk.bytes[384*k : 768*k+32]),
	}
}

// Decaps recovers the shared secret transported by c (FIPS 203
// Algorithm 21).
func (dk *DecapsulationKey) Decaps(c []byte) ([]byte, error) {
	return dk.params.DecapsInternal(dk.bytes, c)
}
