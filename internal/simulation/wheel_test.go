package simulation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeededSourceReproducible(t *testing.T) {
	a := NewSeededSource(123)
	b := NewSeededSource(123)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestSeededSourcesIndependent(t *testing.T) {
	a := NewSeededSource(1)
	b := NewSeededSource(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
		}
	}
	require.False(t, same, "different seeds must produce different streams")
}

func TestWheelPocketRange(t *testing.T) {
	wheel := NewWheel(NewSeededSource(99))

	for i := 0; i < 10000; i++ {
		pocket, win := wheel.Spin()
		require.GreaterOrEqual(t, pocket, 0)
		require.Less(t, pocket, 37)
		require.Equal(t, pocket >= 1 && pocket <= 18, win)
	}
}

func TestWheelWinFrequency(t *testing.T) {
	wheel := NewWheel(NewSeededSource(2024))

	const spins = 200000
	wins := 0
	for i := 0; i < spins; i++ {
		if _, win := wheel.Spin(); win {
			wins++
		}
	}

	freq := float64(wins) / float64(spins)
	// 18/37 ~ 0.4865; 200k spins keep the sample error well below 0.01
	require.InDelta(t, WinProbability, freq, 0.01)
}
