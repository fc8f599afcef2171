package metastable

import "math/rand"

// defaultSeed replaces a zero Options.Seed.
const defaultSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed 0 uses defaultSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream id into a new seed with the
// SplitMix64 finalizer, so neighbouring streams are uncorrelated.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// trialRNG returns the private stream of trial t. The stream depends only
// on (seed, t), never on which worker runs the trial.
//
// A *rand.Rand is not safe for concurrent use; each trial owns its own.
func trialRNG(seed int64, t int) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rngFromSeed(deriveSeed(seed, uint64(t)))
}
