package mlkem

import (
	"golang.org/x/crypto/sha3"
)

// The hash oracles of FIPS 203, with their domain separation:
// H = SHA3-256, G = SHA3-512, J = SHAKE-256 with 32-byte output,
// XOF = SHAKE-128 over rho and two index bytes, PRF = SHAKE-256 over a
// seed and a counter byte, with 64*eta bytes of output.

func hashH(data []byte) []byte {
	sum := sha3.Sum256(data)
	return sum[:]
}

func hashG(data []byte) (a, b []byte) {
	sum := sha3.Sum512(data)
	return sum[:32], sum[32:]
}

func hashJ(data []byte) []byte {
	sum := make([]byte, SharedKeySize)
	sha3.ShakeSum256(sum, data)
	return sum
}

// xof returns the SHAKE-128 stream keyed with rho || byte(x) || byte(y),
// from which the matrix entries are rejection-sampled.
func xof(rho []byte, x, y byte) sha3.ShakeHash {
	h := sha3.NewShake128()
	h.Write(rho)
	h.Write([]byte{x, y})
	return h
}

// prf derives the 64*eta bytes feeding one centered binomial sample from a
// seed and the sample counter.
func prf(eta int, s []byte, n byte) []byte {
	out := make([]byte, 64*eta)
	h := sha3.NewShake256()
	h.Write(s)
	h.Write([]byte{n})
	h.Read(out)
	return out
}
