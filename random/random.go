// Package random provides the injectable random source shared by maze
// generation, path search and the navigation agent.
//
// A *rand.Rand is not safe for concurrent use. Each game session owns its own
// Source and only touches it from its tick loop.
package random

import (
	"math/rand"
	"time"
)

// Source is the subset of *rand.Rand used by the core packages.
type Source interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// New returns a Source seeded with seed. A zero seed selects a time based seed.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Derive returns an independent stream for the given stream id. The same
// (parent, stream) pair always yields the same sequence, which lets a manager
// hand each session a reproducible source from one configured seed.
func Derive(parent int64, stream uint64) *rand.Rand {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return New(int64(x | 1))
}

// Chance reports whether an event with probability p happens.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Uniform returns a value in [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Shuffle permutes s in place using src.
func Shuffle[T any](src Source, s []T) {
	src.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}
