// Package config loads and validates simulation parameters from flags or a
// YAML file. Validation happens once here; the simulation core assumes
// validated inputs.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxSpins bounds a trial when no explicit cap is configured.
	DefaultMaxSpins = 100000
	// DefaultResultsDir is where the trial results WAL lives.
	DefaultResultsDir = "./wal/results"
)

// Config holds the validated simulation parameters.
type Config struct {
	InitialBalance decimal.Decimal
	InitialBet     decimal.Decimal
	TableLimit     decimal.Decimal
	Simulations    int
	// TargetBalance stops a trial without ruin once reached. Zero disables it.
	TargetBalance decimal.Decimal
	MaxSpins      int
	// Seed makes the whole batch reproducible. Zero picks a time-based seed.
	Seed    int64
	Workers int
	// RecordHistory keeps per-spin balance trajectories for plotting.
	RecordHistory bool
	// DashboardAddr enables the web dashboard when non-empty, e.g. ":8080".
	DashboardAddr string
	ResultsDir    string
	// Setup requests the interactive configuration wizard.
	Setup bool
}

// FileConfig mirrors Config for YAML. Decimal values are strings so the file
// round-trips exactly.
type FileConfig struct {
	InitialBalance string `yaml:"initial_balance"`
	InitialBet     string `yaml:"initial_bet"`
	TableLimit     string `yaml:"table_limit"`
	Simulations    int    `yaml:"simulations"`
	TargetBalance  string `yaml:"target_balance,omitempty"`
	MaxSpins       int    `yaml:"max_spins,omitempty"`
	Seed           int64  `yaml:"seed,omitempty"`
	Workers        int    `yaml:"workers,omitempty"`
	RecordHistory  *bool  `yaml:"record_history,omitempty"`
	DashboardAddr  string `yaml:"dashboard_addr,omitempty"`
	ResultsDir     string `yaml:"results_dir,omitempty"`
}

// Get parses command line arguments and returns the effective configuration.
// A --config path takes precedence over the individual flags.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	setup := flag.Bool("setup", false, "run the interactive configuration wizard")
	balance := flag.String("balance", "1000", "initial balance")
	bet := flag.String("bet", "1", "initial bet unit")
	limit := flag.String("limit", "500", "table betting limit")
	sims := flag.Int("sims", 10000, "number of simulations")
	target := flag.String("target", "0", "target balance stopping a trial without ruin, 0 disables")
	maxSpins := flag.Int("maxspins", DefaultMaxSpins, "safety cap on spins per trial")
	seed := flag.Int64("seed", 0, "random seed, 0 picks a time-based one")
	workers := flag.Int("workers", 0, "parallel trial workers, 0 means one per CPU")
	history := flag.Bool("history", true, "record per-spin balance trajectories")
	dashboard := flag.String("dashboard", "", "dashboard listen address, empty disables it, example :8080")
	resultsDir := flag.String("resultsdir", DefaultResultsDir, "directory for the trial results WAL")
	flag.Parse()

	if *setup {
		return Config{Setup: true}, nil
	}

	if *configPath != "" {
		return FromFile(*configPath)
	}

	cfg := Config{
		Simulations:   *sims,
		MaxSpins:      *maxSpins,
		Seed:          *seed,
		Workers:       *workers,
		RecordHistory: *history,
		DashboardAddr: *dashboard,
		ResultsDir:    *resultsDir,
	}

	var err error
	if cfg.InitialBalance, err = decimal.NewFromString(*balance); err != nil {
		return Config{}, errors.Wrapf(err, "invalid --balance=%s", *balance)
	}
	if cfg.InitialBet, err = decimal.NewFromString(*bet); err != nil {
		return Config{}, errors.Wrapf(err, "invalid --bet=%s", *bet)
	}
	if cfg.TableLimit, err = decimal.NewFromString(*limit); err != nil {
		return Config{}, errors.Wrapf(err, "invalid --limit=%s", *limit)
	}
	if cfg.TargetBalance, err = decimal.NewFromString(*target); err != nil {
		return Config{}, errors.Wrapf(err, "invalid --target=%s", *target)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromFile loads configuration from a YAML file.
func FromFile(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config file %s", path)
	}

	var fileCfg FileConfig
	if err := yaml.Unmarshal(f, &fileCfg); err != nil {
		return Config{}, errors.Wrap(err, "parse yaml config")
	}

	cfg, err := fileCfg.toConfig()
	if err != nil {
		return Config{}, err
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (fc FileConfig) toConfig() (Config, error) {
	cfg := Config{
		Simulations:   fc.Simulations,
		MaxSpins:      fc.MaxSpins,
		Seed:          fc.Seed,
		Workers:       fc.Workers,
		RecordHistory: true,
		DashboardAddr: fc.DashboardAddr,
		ResultsDir:    fc.ResultsDir,
	}
	if fc.RecordHistory != nil {
		cfg.RecordHistory = *fc.RecordHistory
	}

	var err error
	if cfg.InitialBalance, err = decimal.NewFromString(fc.InitialBalance); err != nil {
		return Config{}, errors.Wrapf(err, "incorrect 'initial_balance' param in yaml config: %s", fc.InitialBalance)
	}
	if cfg.InitialBet, err = decimal.NewFromString(fc.InitialBet); err != nil {
		return Config{}, errors.Wrapf(err, "incorrect 'initial_bet' param in yaml config: %s", fc.InitialBet)
	}
	if cfg.TableLimit, err = decimal.NewFromString(fc.TableLimit); err != nil {
		return Config{}, errors.Wrapf(err, "incorrect 'table_limit' param in yaml config: %s", fc.TableLimit)
	}
	cfg.TargetBalance = decimal.Zero
	if fc.TargetBalance != "" {
		if cfg.TargetBalance, err = decimal.NewFromString(fc.TargetBalance); err != nil {
			return Config{}, errors.Wrapf(err, "incorrect 'target_balance' param in yaml config: %s", fc.TargetBalance)
		}
	}

	return cfg, nil
}

// normalize fills defaults that cannot be expressed as flag defaults.
func (c *Config) normalize() {
	if c.MaxSpins == 0 {
		c.MaxSpins = DefaultMaxSpins
	}
	if c.ResultsDir == "" {
		c.ResultsDir = DefaultResultsDir
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
}

// Validate rejects invalid parameters before any trial runs.
func (c Config) Validate() error {
	if !c.InitialBalance.IsPositive() {
		return fmt.Errorf("initial balance must be positive, got %s", c.InitialBalance)
	}
	if !c.InitialBet.IsPositive() {
		return fmt.Errorf("initial bet must be positive, got %s", c.InitialBet)
	}
	if !c.TableLimit.IsPositive() {
		return fmt.Errorf("table limit must be positive, got %s", c.TableLimit)
	}
	if c.InitialBet.GreaterThan(c.TableLimit) {
		return fmt.Errorf("initial bet %s exceeds table limit %s", c.InitialBet, c.TableLimit)
	}
	if c.TargetBalance.IsNegative() {
		return fmt.Errorf("target balance must not be negative, got %s", c.TargetBalance)
	}
	if c.Simulations < 1 {
		return fmt.Errorf("number of simulations must be positive, got %d", c.Simulations)
	}
	if c.MaxSpins < 1 {
		return fmt.Errorf("max spins must be at least 1, got %d", c.MaxSpins)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
