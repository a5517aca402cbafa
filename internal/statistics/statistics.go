// Package statistics aggregates a simulation batch into summary figures for
// reporting.
package statistics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/alex-f73/The-Martingale-Strategy/internal/domain"
)

// Summary condenses a batch of trial results.
type Summary struct {
	Trials int

	Ruined          int
	TargetReached   int
	SpinCapped      int
	RuinProbability float64

	MeanFinalBalance   decimal.Decimal
	MedianFinalBalance decimal.Decimal
	MinFinalBalance    decimal.Decimal
	MaxFinalBalance    decimal.Decimal
	StdDevFinalBalance float64

	MeanSpins float64
	MinSpins  int
	MaxSpins  int
	SpinsP50  float64
	SpinsP90  float64
	SpinsP99  float64
}

// Summarize computes aggregate statistics over the batch. An empty batch
// yields a zero summary.
func Summarize(batch domain.Batch) Summary {
	n := len(batch.Results)
	if n == 0 {
		return Summary{}
	}

	summary := Summary{
		Trials:   n,
		MinSpins: batch.Results[0].Spins,
		MaxSpins: batch.Results[0].Spins,
	}

	balances := make([]decimal.Decimal, 0, n)
	spins := make([]int, 0, n)
	balanceSum := decimal.Zero
	spinSum := 0

	for _, res := range batch.Results {
		switch res.StopReason {
		case domain.StopRuin:
			summary.Ruined++
		case domain.StopTarget:
			summary.TargetReached++
		case domain.StopSpinCap:
			summary.SpinCapped++
		}

		balances = append(balances, res.FinalBalance)
		balanceSum = balanceSum.Add(res.FinalBalance)

		spins = append(spins, res.Spins)
		spinSum += res.Spins
		if res.Spins < summary.MinSpins {
			summary.MinSpins = res.Spins
		}
		if res.Spins > summary.MaxSpins {
			summary.MaxSpins = res.Spins
		}
	}

	summary.RuinProbability = float64(summary.Ruined) / float64(n)
	summary.MeanFinalBalance = balanceSum.Div(decimal.NewFromInt(int64(n)))
	summary.MeanSpins = float64(spinSum) / float64(n)

	sort.Slice(balances, func(i, j int) bool { return balances[i].LessThan(balances[j]) })
	summary.MinFinalBalance = balances[0]
	summary.MaxFinalBalance = balances[n-1]
	summary.MedianFinalBalance = medianDecimal(balances)
	summary.StdDevFinalBalance = stdDev(balances, summary.MeanFinalBalance)

	sort.Ints(spins)
	summary.SpinsP50 = percentile(spins, 0.50)
	summary.SpinsP90 = percentile(spins, 0.90)
	summary.SpinsP99 = percentile(spins, 0.99)

	return summary
}

func medianDecimal(sorted []decimal.Decimal) decimal.Decimal {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2))
}

// stdDev is the population standard deviation of the final balances.
func stdDev(balances []decimal.Decimal, mean decimal.Decimal) float64 {
	meanF, _ := mean.Float64()
	var acc float64
	for _, b := range balances {
		f, _ := b.Float64()
		d := f - meanF
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(balances)))
}

// percentile interpolates linearly between the two nearest ranks of a sorted
// sample.
func percentile(sorted []int, p float64) float64 {
	n := len(sorted)
	if n == 1 || p <= 0 {
		return float64(sorted[0])
	}
	if p >= 1 {
		return float64(sorted[n-1])
	}

	pos := p * float64(n-1)
	i := int(math.Floor(pos))
	f := pos - float64(i)
	if i+1 >= n {
		return float64(sorted[i])
	}
	return float64(sorted[i])*(1-f) + float64(sorted[i+1])*f
}
