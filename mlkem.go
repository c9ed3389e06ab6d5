/*
Package mlkem implements the Module-Lattice-Based Key-Encapsulation Mechanism
(ML-KEM) standardized in FIPS 203. The package features:

  - The three parameter sets ML-KEM-512, ML-KEM-768 and ML-KEM-1024.
  - A pure Go implementation of the underlying polynomial arithmetic layer
    over Z_3329[X]/(X^256+1), exposed by the sub-package ring.
  - Deterministic entry points (KeyGenInternal, EncapsInternal,
    DecapsInternal) for test-vector replay, next to the randomized API.

A key encapsulation mechanism establishes a 32-byte shared secret between two
parties: the holder of an encapsulation key receives a ciphertext whose
decapsulation, under the matching decapsulation key, yields the same secret.

Basic usage:

	ek, dk, err := mlkem.MLKEM768.KeyGen()
	if err != nil {
	    // handle error
	}
	K, c, err := ek.Encaps()
	if err != nil {
	    // handle error
	}
	K2, err := dk.Decaps(c)
*/
package mlkem
