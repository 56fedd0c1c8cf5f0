// Package score computes the display-only demo reputation value shown on
// posts that have no ledger-backed score.
package score

import (
	"math/rand/v2"
	"unicode/utf16"
)

const (
	demoMin  = 50
	demoSpan = 50
)

// Hash is the 31-multiplier string hash over UTF-16 code units, truncated
// to 32 bits, so it agrees with the browser-side hash for any seed.
func Hash(seed string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		h = h*31 + int32(unit)
	}
	return h
}

// Demo returns a deterministic value in [50, 99] for seed.
func Demo(seed string) int {
	h := uint64(uint32(Hash(seed)))
	r := rand.New(rand.NewPCG(h, h^0x9e3779b97f4a7c15))
	return demoMin + r.IntN(demoSpan)
}
