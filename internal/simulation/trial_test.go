package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/alex-f73/The-Martingale-Strategy/internal/domain"
)

// scriptedSource replays a fixed sequence of floats. Values below winDraw
// land on a winning pocket, values at or above loseDraw on a losing one.
type scriptedSource struct {
	values []float64
	pos    int
}

const (
	winDraw  = 0.1  // pocket 3, simple chance wins
	loseDraw = 0.99 // pocket 36, simple chance loses
	zeroDraw = 0.0  // pocket 0, always loses
)

func (s *scriptedSource) Float64() float64 {
	if s.pos >= len(s.values) {
		panic("scripted source exhausted")
	}
	v := s.values[s.pos]
	s.pos++
	return v
}

func params(balance, bet, limit int64) domain.TrialParams {
	return domain.TrialParams{
		InitialBalance: decimal.NewFromInt(balance),
		InitialBet:     decimal.NewFromInt(bet),
		TableLimit:     decimal.NewFromInt(limit),
		MaxSpins:       100000,
	}
}

func TestTrialImmediateRuinBetAboveLimit(t *testing.T) {
	p := params(1000, 200, 100)

	result := NewTrial(p, &scriptedSource{}, false).Run()

	require.True(t, result.Ruined)
	require.Equal(t, domain.StopRuin, result.StopReason)
	require.Equal(t, 0, result.Spins)
	require.True(t, result.FinalBalance.Equal(p.InitialBalance))
}

func TestTrialImmediateRuinInsufficientBalance(t *testing.T) {
	p := params(5, 10, 100)

	result := NewTrial(p, &scriptedSource{}, false).Run()

	require.True(t, result.Ruined)
	require.Equal(t, 0, result.Spins)
	require.True(t, result.FinalBalance.Equal(p.InitialBalance))
}

func TestTrialWinAddsBetAndResets(t *testing.T) {
	p := params(100, 10, 1000)
	p.TargetBalance = decimal.NewFromInt(110)

	rng := &scriptedSource{values: []float64{winDraw}}
	result := NewTrial(p, rng, true).Run()

	require.False(t, result.Ruined)
	require.Equal(t, domain.StopTarget, result.StopReason)
	require.Equal(t, 1, result.Spins)
	require.True(t, result.FinalBalance.Equal(decimal.NewFromInt(110)))
}

func TestTrialResetAfterWinFollowingLosses(t *testing.T) {
	// two losses double the bet to 40, then a win adds it back; the next
	// bet is the base unit again, so reaching the target costs one more win
	p := params(100, 10, 1000)
	p.TargetBalance = decimal.NewFromInt(120)

	rng := &scriptedSource{values: []float64{loseDraw, loseDraw, winDraw, winDraw, winDraw, winDraw}}
	result := NewTrial(p, rng, true).Run()

	require.False(t, result.Ruined)
	// 100 -> 90 -> 70 -> 110 -> 120
	wantHistory := []int64{100, 90, 70, 110, 120}
	require.Len(t, result.BalanceHistory, len(wantHistory))
	for i, want := range wantHistory {
		require.True(t, result.BalanceHistory[i].Equal(decimal.NewFromInt(want)),
			"history[%d] = %s, want %d", i, result.BalanceHistory[i], want)
	}
	require.Equal(t, 4, result.Spins)
	require.Equal(t, domain.StopTarget, result.StopReason)
}

func TestTrialDoublingUntilTableLimit(t *testing.T) {
	// losing streak: bets 1,2,4,...,256 are placed, the next bet of 512
	// exceeds the table limit of 500 and the trial ends in ruin
	p := params(1000, 1, 500)

	losses := make([]float64, 9)
	for i := range losses {
		losses[i] = loseDraw
	}
	result := NewTrial(p, &scriptedSource{values: losses}, false).Run()

	require.True(t, result.Ruined)
	require.Equal(t, 9, result.Spins)
	// 1000 - (1+2+...+256) = 489
	require.True(t, result.FinalBalance.Equal(decimal.NewFromInt(489)),
		"final balance = %s", result.FinalBalance)
}

func TestTrialZeroPocketLoses(t *testing.T) {
	p := params(100, 10, 1000)
	p.MaxSpins = 1

	result := NewTrial(p, &scriptedSource{values: []float64{zeroDraw}}, false).Run()

	require.True(t, result.FinalBalance.Equal(decimal.NewFromInt(90)))
}

func TestTrialSpinCapTerminates(t *testing.T) {
	p := params(100, 10, 1000)
	p.MaxSpins = 25

	result := NewTrial(p, NewSeededSource(42), false).Run()

	require.LessOrEqual(t, result.Spins, 25)
	if result.StopReason == domain.StopSpinCap {
		require.False(t, result.Ruined)
		require.Equal(t, 25, result.Spins)
	}
}

func TestTrialTerminatesForValidParams(t *testing.T) {
	p := params(1000, 1, 500)
	p.MaxSpins = 100000

	result := NewTrial(p, NewSeededSource(7), false).Run()

	require.GreaterOrEqual(t, result.Spins, 0)
	require.LessOrEqual(t, result.Spins, p.MaxSpins)
	require.Contains(t, []domain.StopReason{domain.StopRuin, domain.StopTarget, domain.StopSpinCap}, result.StopReason)
}

func TestTrialHistoryDisabled(t *testing.T) {
	p := params(100, 10, 1000)
	p.MaxSpins = 5

	result := NewTrial(p, NewSeededSource(1), false).Run()

	require.Empty(t, result.BalanceHistory)
}
