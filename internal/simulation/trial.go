// Package simulation implements the Martingale trial loop and the batch
// runner that executes many independent trials.
package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/alex-f73/The-Martingale-Strategy/internal/domain"
)

var two = decimal.NewFromInt(2)

// Trial plays a single Martingale session on a fresh wheel: double the bet
// after every loss, reset it to the base unit after every win, stop the
// moment the next bet cannot be placed.
type Trial struct {
	params        domain.TrialParams
	wheel         *Wheel
	recordHistory bool
}

// NewTrial builds a trial from validated parameters and a random source.
func NewTrial(params domain.TrialParams, rng RandomSource, recordHistory bool) *Trial {
	return &Trial{
		params:        params,
		wheel:         NewWheel(rng),
		recordHistory: recordHistory,
	}
}

// Run executes the trial to completion and returns its immutable result.
// The loop is a bounded iteration: MaxSpins guarantees termination for any
// parameter choice. Pure arithmetic and a bounded random draw, so Run cannot
// fail once parameters are validated.
func (t *Trial) Run() domain.TrialResult {
	balance := t.params.InitialBalance
	bet := t.params.InitialBet
	hasTarget := t.params.TargetBalance.IsPositive()

	var history []decimal.Decimal
	if t.recordHistory {
		history = make([]decimal.Decimal, 0, 16)
		history = append(history, balance)
	}

	spins := 0
	reason := domain.StopSpinCap
	for spins < t.params.MaxSpins {
		// the trial ends the instant the next required bet would exceed
		// the table limit or the remaining balance
		if bet.GreaterThan(t.params.TableLimit) || bet.GreaterThan(balance) {
			reason = domain.StopRuin
			break
		}
		if hasTarget && balance.GreaterThanOrEqual(t.params.TargetBalance) {
			reason = domain.StopTarget
			break
		}

		_, win := t.wheel.Spin()
		spins++

		if win {
			balance = balance.Add(bet)
			bet = t.params.InitialBet
		} else {
			balance = balance.Sub(bet)
			bet = bet.Mul(two)
		}

		if t.recordHistory {
			history = append(history, balance)
		}
	}

	return domain.TrialResult{
		FinalBalance:   balance,
		Spins:          spins,
		Ruined:         reason == domain.StopRuin,
		StopReason:     reason,
		BalanceHistory: history,
	}
}
