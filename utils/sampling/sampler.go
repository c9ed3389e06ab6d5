// Package sampling provides the randomness sources of the library: an
// interface for pseudo-random number generators, a deterministic keyed
// PRNG based on the blake2b XOF, and direct access to the operating
// system's entropy pool.
package sampling

import (
	"crypto/rand"

	"golang.org/x/crypto/blake2b"
)

// PRNG is an interface for secure pseudo-random number generators, from
// which random byte slices can be read.
type PRNG interface {
	Read(sum []byte) (n int, err error)
}

// KeyedPRNG is a structure storing the parameters used to securely and
// deterministically generate shared sequences of random bytes among
// parties using the hash function blake2b. Backward sequence security
// (given the digest i, compute the digest i-1) is ensured by default.
type KeyedPRNG struct {
	key []byte
	xof blake2b.XOF
}

// NewKeyedPRNG creates a new instance of KeyedPRNG. Accepts an optional
// key, else set key=nil which is treated as key=[]byte{}.
// WARNING: A PRNG INITIALISED WITH key=nil IS INSECURE!
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	var err error
	prng := new(KeyedPRNG)
	prng.key = key
	prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	return prng, err
}

// NewPRNG creates KeyedPRNG keyed with 64 bytes sampled from the OS
// entropy pool for instances where no key should be provided by the user.
func NewPRNG() (*KeyedPRNG, error) {
	key := make([]byte, 64)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return NewKeyedPRNG(key)
}

// Key returns a copy of the key used to seed the PRNG. This value can be
// used to instantiate a new PRNG that will produce the same stream of
// bytes.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read reads bytes from the KeyedPRNG on sum.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	return prng.xof.Read(sum)
}

// Reset resets the PRNG to its initial state.
func (prng *KeyedPRNG) Reset() {
	prng.xof.Reset()
}

// RandomBytes returns a slice of n bytes of cryptographically secure
// random numbers sampled from the OS entropy pool.
func RandomBytes(n int) []byte {
	randomBytes := make([]byte, n)
	if _, err := rand.Read(randomBytes); err != nil {
		panic("sampling: crypto rand error")
	}
	return randomBytes
}
