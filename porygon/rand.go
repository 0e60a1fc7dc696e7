package porygon

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

var internalRng = rand.New(createRandomSeed())

func createRandomSeed() *rand.PCG {
	var randBytes [16]byte
	_, err := cryptoRand.Read(randBytes[:])
	if err != nil {
		// crypto/rand failing this early means something is deeply wrong with the host
		panic(err)
	}

	return rand.NewPCG(binary.LittleEndian.Uint64(randBytes[0:8]), binary.LittleEndian.Uint64(randBytes[8:]))
}

// ForceRNG swaps the package RNG, mainly so tests can run deterministic draws.
func ForceRNG(source rand.Source) {
	internalRng = rand.New(source)
}

func SetNormalRNG() {
	internalRng = rand.New(createRandomSeed())
}
