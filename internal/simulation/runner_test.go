package simulation

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alex-f73/The-Martingale-Strategy/internal/domain"
)

type collectingSink struct {
	mu      sync.Mutex
	results []domain.TrialResult
}

func (s *collectingSink) Save(result domain.TrialResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

func testRunnerConfig(trials int) Config {
	return Config{
		Params: domain.TrialParams{
			InitialBalance: decimal.NewFromInt(100),
			InitialBet:     decimal.NewFromInt(1),
			TableLimit:     decimal.NewFromInt(50),
			MaxSpins:       10000,
		},
		Trials:  trials,
		Seed:    42,
		Workers: 4,
	}
}

func TestRunnerReturnsExactlyNResults(t *testing.T) {
	runner, err := NewRunner(zap.NewNop(), testRunnerConfig(250), nil)
	require.NoError(t, err)

	batch, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, batch.Results, 250)

	for i, res := range batch.Results {
		require.Equal(t, i, res.Index, "results must stay in trial order")
		require.Equal(t, int64(42+i), res.Seed)
	}
}

func TestRunnerReproducibleAcrossWorkerCounts(t *testing.T) {
	run := func(workers int) domain.Batch {
		cfg := testRunnerConfig(100)
		cfg.Workers = workers
		runner, err := NewRunner(zap.NewNop(), cfg, nil)
		require.NoError(t, err)
		batch, err := runner.Run(context.Background())
		require.NoError(t, err)
		return batch
	}

	serial := run(1)
	parallel := run(8)

	for i := range serial.Results {
		require.True(t, serial.Results[i].FinalBalance.Equal(parallel.Results[i].FinalBalance),
			"trial %d diverged between worker counts", i)
		require.Equal(t, serial.Results[i].Spins, parallel.Results[i].Spins)
	}
}

func TestRunnerFeedsSink(t *testing.T) {
	sink := &collectingSink{}
	runner, err := NewRunner(zap.NewNop(), testRunnerConfig(30), sink)
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, sink.results, 30)
}

func TestRunnerCancelledContext(t *testing.T) {
	runner, err := NewRunner(zap.NewNop(), testRunnerConfig(10), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runner.Run(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunnerRejectsInvalidConfig(t *testing.T) {
	cfg := testRunnerConfig(0)
	_, err := NewRunner(zap.NewNop(), cfg, nil)
	require.Error(t, err)

	cfg = testRunnerConfig(10)
	cfg.Params.InitialBet = decimal.NewFromInt(-1)
	_, err = NewRunner(zap.NewNop(), cfg, nil)
	require.Error(t, err)

	cfg = testRunnerConfig(10)
	cfg.Params.InitialBet = cfg.Params.TableLimit.Add(decimal.NewFromInt(1))
	_, err = NewRunner(zap.NewNop(), cfg, nil)
	require.Error(t, err)
}
