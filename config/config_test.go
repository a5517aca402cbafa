package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		InitialBalance: decimal.NewFromInt(1000),
		InitialBet:     decimal.NewFromInt(1),
		TableLimit:     decimal.NewFromInt(500),
		Simulations:    100,
		MaxSpins:       1000,
		Seed:           1,
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejectsInvalidParameters(t *testing.T) {
	cases := map[string]func(*Config){
		"zero balance":     func(c *Config) { c.InitialBalance = decimal.Zero },
		"negative balance": func(c *Config) { c.InitialBalance = decimal.NewFromInt(-10) },
		"zero bet":         func(c *Config) { c.InitialBet = decimal.Zero },
		"zero limit":       func(c *Config) { c.TableLimit = decimal.Zero },
		"bet above limit":  func(c *Config) { c.InitialBet = decimal.NewFromInt(501) },
		"negative target":  func(c *Config) { c.TargetBalance = decimal.NewFromInt(-1) },
		"zero simulations": func(c *Config) { c.Simulations = 0 },
		"zero max spins":   func(c *Config) { c.MaxSpins = 0 },
		"negative workers": func(c *Config) { c.Workers = -1 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `initial_balance: "250.50"
initial_bet: "2.5"
table_limit: "100"
simulations: 500
target_balance: "400"
seed: 99
dashboard_addr: ":8080"
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := FromFile(path)
	require.NoError(t, err)

	require.True(t, cfg.InitialBalance.Equal(decimal.NewFromFloat(250.50)))
	require.True(t, cfg.InitialBet.Equal(decimal.NewFromFloat(2.5)))
	require.True(t, cfg.TableLimit.Equal(decimal.NewFromInt(100)))
	require.Equal(t, 500, cfg.Simulations)
	require.True(t, cfg.TargetBalance.Equal(decimal.NewFromInt(400)))
	require.Equal(t, int64(99), cfg.Seed)
	require.Equal(t, ":8080", cfg.DashboardAddr)

	// defaults filled by normalize
	require.Equal(t, DefaultMaxSpins, cfg.MaxSpins)
	require.Equal(t, DefaultResultsDir, cfg.ResultsDir)
	require.True(t, cfg.RecordHistory)
}

func TestFromFileRejectsBadDecimal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `initial_balance: "not-a-number"
initial_bet: "1"
table_limit: "100"
simulations: 10
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	_, err := FromFile(path)
	require.Error(t, err)
}

func TestFromFileRejectsBetAboveLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `initial_balance: "1000"
initial_bet: "200"
table_limit: "100"
simulations: 10
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	_, err := FromFile(path)
	require.Error(t, err)
}
