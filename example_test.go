package mlkem_test

import (
	"bytes"
	"fmt"

	"github.com/tuneinsight/mlkem"
)

func Example() {
	ek, dk, err := mlkem.MLKEM768.KeyGen()
	if err != nil {
		panic(err)
	}

	K, c, err := ek.Encaps()
	if err != nil {
		panic(err)
	}

	K2, err := dk.Decaps(c)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(c), len(K), bytes.Equal(K, K2))
	// Output: 1088 32 true
}
