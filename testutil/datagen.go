package testutil

import (
	"encoding/hex"
	"math/rand"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
)

func AddRandomSeedsToFuzzer(f *testing.F, num uint) {
	// Seed based on the current time
	r := rand.New(rand.NewSource(time.Now().Unix()))
	var idx uint
	for idx = 0; idx < num; idx++ {
		f.Add(r.Int63())
	}
}

func GenRandomByteArray(r *rand.Rand, length uint64) []byte {
	newHeaderBytes := make([]byte, length)
	r.Read(newHeaderBytes)
	return newHeaderBytes
}

// GenRandomAccount returns a random 20-byte hex account.
func GenRandomAccount(r *rand.Rand) string {
	return "0x" + hex.EncodeToString(GenRandomByteArray(r, 20))
}

// GenRandomAmount returns an amount in [1, max].
func GenRandomAmount(r *rand.Rand, max int64) sdkmath.Int {
	return sdkmath.NewInt(r.Int63n(max) + 1)
}

// GenRandomFrozenTime returns a duration of whole seconds up to one day.
func GenRandomFrozenTime(r *rand.Rand) time.Duration {
	return time.Duration(r.Int63n(24*60*60)) * time.Second
}
