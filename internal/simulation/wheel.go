package simulation

import (
	"math/rand/v2"
)

const (
	// wheelPockets is the pocket count of a European wheel: zero plus 1-36.
	wheelPockets = 37
	// simpleChancePockets is how many pockets pay out an even-money bet.
	simpleChancePockets = 18

	goldenRatio64 = 0x9e3779b97f4a7c15
)

// WinProbability is the chance of a simple-chance bet winning on a European
// wheel: 18 of 37 pockets.
const WinProbability = float64(simpleChancePockets) / float64(wheelPockets)

// RandomSource yields uniform floats in [0, 1). Every trial gets its own
// source so trials stay independent and reproducible under test.
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic source derived from seed. It
// centralises how the two 64-bit seeds required by rand/v2 are produced so
// all call sites get reproducible sequences.
func NewSeededSource(seed int64) RandomSource {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Wheel simulates a fair European roulette wheel.
type Wheel struct {
	rng RandomSource
}

// NewWheel creates a wheel drawing from the given source.
func NewWheel(rng RandomSource) *Wheel {
	return &Wheel{rng: rng}
}

// Spin draws one pocket uniformly at random and reports whether the player's
// simple-chance bet wins. The pockets 1-18 stand in for the 18 winning
// numbers of any even-money bet; zero always loses.
func (w *Wheel) Spin() (pocket int, win bool) {
	pocket = int(w.rng.Float64() * wheelPockets)
	if pocket >= wheelPockets {
		pocket = wheelPockets - 1
	}
	return pocket, pocket >= 1 && pocket <= simpleChancePockets
}
