// Package domain holds the core types shared by the simulator, storage and
// reporting layers.
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StopReason explains why a trial ended.
type StopReason string

const (
	// StopRuin means the player could not place the required next bet:
	// the bet exceeded the table limit or the remaining balance.
	StopRuin StopReason = "ruin"
	// StopTarget means the balance reached the configured target.
	StopTarget StopReason = "target"
	// StopSpinCap means the safety cap on spins was reached.
	StopSpinCap StopReason = "spin_cap"
)

// TrialParams are the immutable inputs of a single Martingale trial.
type TrialParams struct {
	InitialBalance decimal.Decimal
	InitialBet     decimal.Decimal
	TableLimit     decimal.Decimal
	// TargetBalance ends the trial without ruin once the balance reaches it.
	// Zero disables the target.
	TargetBalance decimal.Decimal
	// MaxSpins bounds every trial so pathological parameters cannot loop forever.
	MaxSpins int
}

// Validate checks parameter constraints once at the boundary. The simulation
// loop itself assumes validated parameters and cannot fail.
func (p TrialParams) Validate() error {
	if !p.InitialBalance.IsPositive() {
		return fmt.Errorf("initial balance must be positive, got %s", p.InitialBalance)
	}
	if !p.InitialBet.IsPositive() {
		return fmt.Errorf("initial bet must be positive, got %s", p.InitialBet)
	}
	if !p.TableLimit.IsPositive() {
		return fmt.Errorf("table limit must be positive, got %s", p.TableLimit)
	}
	if p.InitialBet.GreaterThan(p.TableLimit) {
		return fmt.Errorf("initial bet %s exceeds table limit %s", p.InitialBet, p.TableLimit)
	}
	if p.TargetBalance.IsNegative() {
		return fmt.Errorf("target balance must not be negative, got %s", p.TargetBalance)
	}
	if p.MaxSpins < 1 {
		return fmt.Errorf("max spins must be at least 1, got %d", p.MaxSpins)
	}
	return nil
}

// TrialResult is the immutable outcome of one trial.
// Decimal fields marshal as strings so web consumers avoid float precision issues.
type TrialResult struct {
	Index        int             `json:"index"`
	Seed         int64           `json:"seed"`
	FinalBalance decimal.Decimal `json:"final_balance"`
	Spins        int             `json:"spins"`
	Ruined       bool            `json:"ruined"`
	StopReason   StopReason      `json:"stop_reason"`
	// BalanceHistory holds the balance after every spin, starting with the
	// initial balance. Empty when history recording is disabled.
	BalanceHistory []decimal.Decimal `json:"balance_history,omitempty"`
}

// TrialRecord pairs a persisted trial result with its WAL index for streaming.
type TrialRecord struct {
	Index  uint64      `json:"id"`
	Result TrialResult `json:"result"`
}

// Batch is the ordered outcome of a simulation run: Results[i] belongs to
// trial i regardless of completion order.
type Batch struct {
	ID      string
	Params  TrialParams
	Results []TrialResult
}
