// Command martingale runs a Monte Carlo simulation of the Martingale betting
// strategy on European roulette: double the bet after every loss, reset it
// after every win, stop a trial on ruin, target or spin cap.
//
// Usage:
//
//	martingale --setup
//	martingale --config config.yaml
//	martingale --balance 1000 --bet 1 --limit 500 --sims 10000
//
// Passing --dashboard :8080 additionally serves a live web dashboard that
// plots balance trajectories while the batch runs.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alex-f73/The-Martingale-Strategy/config"
	"github.com/alex-f73/The-Martingale-Strategy/internal/domain"
	"github.com/alex-f73/The-Martingale-Strategy/internal/report"
	"github.com/alex-f73/The-Martingale-Strategy/internal/setup"
	"github.com/alex-f73/The-Martingale-Strategy/internal/simulation"
	"github.com/alex-f73/The-Martingale-Strategy/internal/statistics"
	"github.com/alex-f73/The-Martingale-Strategy/internal/storage/results"
	"github.com/alex-f73/The-Martingale-Strategy/internal/web"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Setup {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		cfg, err = config.FromFile(setup.GeneratedConfigFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()

	store, err := results.NewWALStore(cfg.ResultsDir, runID)
	if err != nil {
		logger.Fatal("failed to open trial results store", zap.Error(err))
	}
	defer store.Close()

	params := domain.TrialParams{
		InitialBalance: cfg.InitialBalance,
		InitialBet:     cfg.InitialBet,
		TableLimit:     cfg.TableLimit,
		TargetBalance:  cfg.TargetBalance,
		MaxSpins:       cfg.MaxSpins,
	}

	runner, err := simulation.NewRunner(logger, simulation.Config{
		Params:        params,
		Trials:        cfg.Simulations,
		Seed:          cfg.Seed,
		Workers:       cfg.Workers,
		RecordHistory: cfg.RecordHistory,
	}, store)
	if err != nil {
		logger.Fatal("failed to create batch runner", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.DashboardAddr != "" {
		server := web.NewServer(cfg.DashboardAddr, store)
		g.Go(func() error {
			return server.Start(gctx)
		})
		logger.Info("dashboard serving", zap.String("addr", cfg.DashboardAddr))
	}

	batch, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("simulation cancelled")
			return
		}
		logger.Fatal("simulation failed", zap.Error(err))
	}
	batch.ID = runID

	summary := statistics.Summarize(batch)
	fmt.Println(report.Render(params, cfg.Simulations, cfg.Seed, summary))

	if cfg.DashboardAddr != "" {
		logger.Info("dashboard still serving, press ctrl+c to exit",
			zap.String("addr", cfg.DashboardAddr),
			zap.String("run_id", runID))
		if err := g.Wait(); err != nil {
			logger.Error("dashboard server stopped", zap.Error(err))
		}
	}
}
