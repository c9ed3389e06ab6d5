package mlkem

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/mlkem/utils/sampling"
)

var testParams = []ParameterSet{MLKEM512, MLKEM768, MLKEM1024}

var testPRNGKey = []byte{
	0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb,
	0x42, 0xf3, 0xa6, 0xd5, 0x75, 0xd2, 0x0c, 0x92, 0xb7, 0x35, 0xce, 0x0c, 0xee, 0x09, 0x7c, 0x98,
}

func testSeeds(t *testing.T, n int) [][]byte {
	t.Helper()
	prng, err := sampling.NewKeyedPRNG(testPRNGKey)
	require.NoError(t, err)

	seeds := make([][]byte, n)
	for i := range seeds {
		seeds[i] = make([]byte, SeedSize)
		_, err := prng.Read(seeds[i])
		require.NoError(t, err)
	}
	return seeds
}

func TestSizes(t *testing.T) {
	for _, tc := range []struct {
		params     ParameterSet
		ek, dk, ct int
	}{
		{MLKEM512, 800, 1632, 768},
		{MLKEM768, 1184, 2400, 1088},
		{MLKEM1024, 1568, 3168, 1568},
	} {
		t.Run(tc.params.Name(), func(t *testing.T) {
			require.Equal(t, tc.ek, tc.params.EncapsulationKeySize())
			require.Equal(t, tc.dk, tc.params.DecapsulationKeySize())
			require.Equal(t, tc.ct, tc.params.CiphertextSize())
		})
	}
}

func TestKEMRoundTrip(t *testing.T) {
	for _, params := range testParams {
		t.Run(params.Name(), func(t *testing.T) {
			seeds := testSeeds(t, 3)
			d, z, m := seeds[0], seeds[1], seeds[2]

			ek, dk, err := params.KeyGenInternal(d, z)
			require.NoError(t, err)
			require.Len(t, ek, params.EncapsulationKeySize())
			require.Len(t, dk, params.DecapsulationKeySize())

			K, c, err := params.EncapsInternal(ek, m)
			require.NoError(t, err)
			require.Len(t, K, SharedKeySize)
			require.Len(t, c, params.CiphertextSize())

			K2, err := params.DecapsInternal(dk, c)
			require.NoError(t, err)
			require.Equal(t, K, K2)
		})
	}
}

func TestKeyGenDeterminism(t *testing.T) {
	seeds := testSeeds(t, 2)
	d, z := seeds[0], seeds[1]

	ek1, dk1, err := MLKEM768.KeyGenInternal(d, z)
	require.NoError(t, err)
	ek2, dk2, err := MLKEM768.KeyGenInternal(d, z)
	require.NoError(t, err)

	require.Equal(t, ek1, ek2)
	require.Equal(t, dk1, dk2)
}

func TestKeyGenSeedLength(t *testing.T) {
	seeds := testSeeds(t, 2)

	_, _, err := MLKEM768.KeyGenInternal(seeds[0][:31], seeds[1])
	require.ErrorIs(t, err, ErrInvalidLength)

	_, _, err = MLKEM768.KeyGenInternal(seeds[0], seeds[1][:31])
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestImplicitRejection(t *testing.T) {
	for _, params := range testParams {
		t.Run(params.Name(), func(t *testing.T) {
			seeds := testSeeds(t, 3)
			ek, dk, err := params.KeyGenInternal(seeds[0], seeds[1])
			require.NoError(t, err)

			K, c, err := params.EncapsInternal(ek, seeds[2])
			require.NoError(t, err)

			z := dk[len(dk)-SeedSize:]

			for _, flip := range []int{0, len(c) / 2, len(c) - 1} {
				cBad := bytes.Clone(c)
				cBad[flip] ^= 0x01

				KBad, err := params.DecapsInternal(dk, cBad)
				require.NoError(t, err)
				require.NotEqual(t, K, KBad)

				// Implicit rejection is deterministic: the rejected key is
				// SHAKE-256(z || c~).
				require.Equal(t, hashJ(append(bytes.Clone(z), cBad...)), KBad)

				again, err := params.DecapsInternal(dk, cBad)
				require.NoError(t, err)
				require.Equal(t, KBad, again)
			}
		})
	}
}

func TestDecapsValidation(t *testing.T) {
	params := MLKEM512
	seeds := testSeeds(t, 3)
	ek, dk, err := params.KeyGenInternal(seeds[0], seeds[1])
	require.NoError(t, err)

	_, c, err := params.EncapsInternal(ek, seeds[2])
	require.NoError(t, err)

	t.Run("CiphertextLength", func(t *testing.T) {
		_, err := params.DecapsInternal(dk, c[:len(c)-1])
		require.ErrorIs(t, err, ErrCiphertextLength)
	})

	t.Run("DecapsKeyLength", func(t *testing.T) {
		_, err := params.DecapsInternal(dk[:len(dk)-1], c)
		require.ErrorIs(t, err, ErrDecapsKeyLength)
	})

	t.Run("HashCheck", func(t *testing.T) {
		dkBad := bytes.Clone(dk)
		dkBad[768*params.k+32] ^= 0x01 // first byte of the embedded H(ek)
		_, err := params.DecapsInternal(dkBad, c)
		require.ErrorIs(t, err, ErrHashCheck)
	})
}

func TestModulusCheck(t *testing.T) {
	params := MLKEM512
	seeds := testSeeds(t, 3)
	ek, _, err := params.KeyGenInternal(seeds[0], seeds[1])
	require.NoError(t, err)

	// Force the first twelve-bit coefficient of t to 3329 = 0xd01 = q,
	// which survives the 12-bit decode but not the re-encode comparison.
	ekBad := bytes.Clone(ek)
	ekBad[0] = 0x01
	ekBad[1] = ekBad[1]&0xf0 | 0x0d

	_, _, err = params.EncapsInternal(ekBad, seeds[2])
	require.ErrorIs(t, err, ErrModulusCheck)
}

func TestTypedKeys(t *testing.T) {
	for _, params := range testParams {
		t.Run(params.Name(), func(t *testing.T) {
			ek, dk, err := params.KeyGen()
			require.NoError(t, err)
			require.Equal(t, params, ek.Params())
			require.Equal(t, params, dk.Params())

			K, c, err := ek.Encaps()
			require.NoError(t, err)

			K2, err := dk.Decaps(c)
			require.NoError(t, err)
			require.Equal(t, K, K2)

			require.Equal(t, ek.Bytes(), dk.EncapsulationKey().Bytes())

			ekNew, err := NewEncapsulationKey(params, ek.Bytes())
			require.NoError(t, err)
			dkNew, err := NewDecapsulationKey(params, dk.Bytes())
			require.NoError(t, err)

			K3, c3, err := ekNew.Encaps()
			require.NoError(t, err)
			K4, err := dkNew.Decaps(c3)
			require.NoError(t, err)
			require.Equal(t, K3, K4)

			_, err = NewEncapsulationKey(params, ek.Bytes()[:1])
			require.ErrorIs(t, err, ErrInvalidLength)
			_, err = NewDecapsulationKey(params, dk.Bytes()[:1])
			require.ErrorIs(t, err, ErrDecapsKeyLength)
		})
	}
}

func TestKeyGenFromSeed(t *testing.T) {
	seeds := testSeeds(t, 2)

	ek1, dk1, err := MLKEM1024.KeyGenFromSeed(seeds[0], seeds[1])
	require.NoError(t, err)
	ek2, dk2, err := MLKEM1024.KeyGenFromSeed(seeds[0], seeds[1])
	require.NoError(t, err)

	require.Equal(t, ek1.Bytes(), ek2.Bytes())
	require.Equal(t, dk1.Bytes(), dk2.Bytes())
}
