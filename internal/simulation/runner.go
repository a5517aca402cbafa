package simulation

import (
	"context"
	"runtime"
	"sync"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/alex-f73/The-Martingale-Strategy/internal/domain"
)

// ResultSink receives every trial result as it is produced. Implementations
// must be safe for concurrent use.
type ResultSink interface {
	Save(result domain.TrialResult) error
}

// Config holds configuration for a batch run.
type Config struct {
	Params domain.TrialParams
	// Trials is the number of independent trials to run.
	Trials int
	// Seed derives per-trial seeds: trial i uses Seed+i, so a batch is fully
	// reproducible and each trial still gets an independent stream.
	Seed int64
	// Workers caps concurrent trials. Zero means one worker per CPU.
	Workers int
	// RecordHistory keeps the per-spin balance trajectory on each result.
	RecordHistory bool
}

// Runner executes independent trials and collects results in trial order.
// Trials share no mutable state, so completion order does not matter; the
// batch preserves the trial index to result association.
type Runner struct {
	cfg    Config
	sink   ResultSink
	logger *zap.Logger
}

// NewRunner validates the configuration and returns a batch runner.
// The sink is optional.
func NewRunner(logger *zap.Logger, cfg Config, sink ResultSink) (*Runner, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid trial parameters")
	}
	if cfg.Trials < 1 {
		return nil, errors.Errorf("number of simulations must be positive, got %d", cfg.Trials)
	}
	if cfg.Workers < 0 {
		return nil, errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	return &Runner{cfg: cfg, sink: sink, logger: logger}, nil
}

// Run executes the whole batch and returns results ordered by trial index.
// It returns an error only when the context is cancelled or the sink fails.
func (r *Runner) Run(ctx context.Context) (domain.Batch, error) {
	r.logger.Info("starting simulation batch",
		zap.Int("trials", r.cfg.Trials),
		zap.Int("workers", r.cfg.Workers),
		zap.Int64("seed", r.cfg.Seed),
		zap.String("initial_balance", r.cfg.Params.InitialBalance.String()),
		zap.String("initial_bet", r.cfg.Params.InitialBet.String()),
		zap.String("table_limit", r.cfg.Params.TableLimit.String()))

	pool := gopool.NewPool("martingale-trials", int32(r.cfg.Workers), gopool.NewConfig())

	results := make([]domain.TrialResult, r.cfg.Trials)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		sinkErr error
	)

	for i := 0; i < r.cfg.Trials; i++ {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return domain.Batch{}, errors.Wrap(err, "simulation batch cancelled")
		}

		idx := i
		wg.Add(1)
		pool.Go(func() {
			defer wg.Done()

			seed := r.cfg.Seed + int64(idx)
			trial := NewTrial(r.cfg.Params, NewSeededSource(seed), r.cfg.RecordHistory)

			result := trial.Run()
			result.Index = idx
			result.Seed = seed
			results[idx] = result

			if r.sink == nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if sinkErr != nil {
				return
			}
			if err := r.sink.Save(result); err != nil {
				sinkErr = errors.Wrapf(err, "save result of trial %d", idx)
			}
		})
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return domain.Batch{}, errors.Wrap(err, "simulation batch cancelled")
	}
	if sinkErr != nil {
		return domain.Batch{}, sinkErr
	}

	ruined := 0
	for _, res := range results {
		if res.Ruined {
			ruined++
		}
	}
	r.logger.Info("simulation batch finished",
		zap.Int("trials", r.cfg.Trials),
		zap.Int("ruined", ruined))

	return domain.Batch{Params: r.cfg.Params, Results: results}, nil
}
