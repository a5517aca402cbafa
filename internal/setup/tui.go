// Package setup implements the interactive configuration wizard.
package setup

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/alex-f73/The-Martingale-Strategy/config"
)

// GeneratedConfigFile is where the wizard saves its result.
const GeneratedConfigFile = "config.gen.yaml"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard and writes the resulting
// YAML config to GeneratedConfigFile.
func RunTUI() error {
	var (
		balanceStr  string
		betStr      string
		limitStr    string
		simsStr     string
		targetStr   string
		maxSpinsStr string
		seedStr     string
		dashboard   bool
		dashAddr    string
		confirm     bool
	)

	// defaults
	balanceStr = "1000"
	betStr = "1"
	limitStr = "500"
	simsStr = "10000"
	targetStr = "0"
	maxSpinsStr = strconv.Itoa(config.DefaultMaxSpins)
	seedStr = "0"
	dashAddr = ":8080"

	clearScreen()
	fmt.Println(headerStyle.Render("MARTINGALE SIMULATOR SETUP"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Configure the Monte Carlo run step by step.\n"))

	fmt.Println(stepStyle.Render("STEP 1: TABLE"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Initial balance").
				Description("Bankroll at the start of every trial, must be > 0").
				Value(&balanceStr).
				Validate(validatePositiveDecimal),
			huh.NewInput().
				Title("Initial bet").
				Description("Base betting unit, must be > 0").
				Value(&betStr).
				Validate(validatePositiveDecimal),
			huh.NewInput().
				Title("Table limit").
				Description("Maximum single bet the table accepts, must be >= initial bet").
				Value(&limitStr).
				Validate(func(s string) error {
					if err := validatePositiveDecimal(s); err != nil {
						return err
					}
					limit, _ := decimal.NewFromString(s)
					bet, err := decimal.NewFromString(betStr)
					if err == nil && bet.GreaterThan(limit) {
						return fmt.Errorf("table limit must be at least the initial bet (%s)", betStr)
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	clearScreen()
	fmt.Println(headerStyle.Render("MARTINGALE SIMULATOR SETUP"))
	fmt.Println(stepStyle.Render("STEP 2: BATCH"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Number of simulations").
				Description("Independent trials to run, must be > 0").
				Value(&simsStr).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Random seed").
				Description("0 picks a time-based seed; any other value makes the batch reproducible").
				Value(&seedStr).
				Validate(func(s string) error {
					_, err := strconv.ParseInt(s, 10, 64)
					return err
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	clearScreen()
	fmt.Println(headerStyle.Render("MARTINGALE SIMULATOR SETUP"))
	fmt.Println(stepStyle.Render("STEP 3: STOPPING RULE"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target balance").
				Description("Trial stops without ruin once the balance reaches this, 0 disables").
				Value(&targetStr).
				Validate(validateNonNegativeDecimal),
			huh.NewInput().
				Title("Max spins per trial").
				Description("Safety cap so no trial can run forever").
				Value(&maxSpinsStr).
				Validate(validatePositiveInt),
		),
	).Run()
	if err != nil {
		return err
	}

	clearScreen()
	fmt.Println(headerStyle.Render("MARTINGALE SIMULATOR SETUP"))
	fmt.Println(stepStyle.Render("STEP 4: DASHBOARD"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Serve the web dashboard?").
				Description("Plots balance trajectories and ruin statistics in the browser").
				Value(&dashboard),
		),
	).Run()
	if err != nil {
		return err
	}
	if dashboard {
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Dashboard address").
					Description("Listen address, e.g. :8080").
					Value(&dashAddr).
					Validate(func(s string) error {
						if s == "" {
							return fmt.Errorf("address cannot be empty")
						}
						return nil
					}),
			),
		).Run()
		if err != nil {
			return err
		}
	}

	clearScreen()
	fmt.Println(headerStyle.Render("MARTINGALE SIMULATOR SETUP"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Initial balance: %s\nInitial bet: %s\nTable limit: %s\nSimulations: %s\nTarget balance: %s\nMax spins: %s\n",
		balanceStr, betStr, limitStr, simsStr, targetStr, maxSpinsStr,
	)
	if dashboard {
		summary += fmt.Sprintf("Dashboard: %s\n", dashAddr)
	}
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save configuration?").
				Affirmative("Yes, save and run").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	sims, _ := strconv.Atoi(simsStr)
	maxSpins, _ := strconv.Atoi(maxSpinsStr)
	seed, _ := strconv.ParseInt(seedStr, 10, 64)

	fileCfg := config.FileConfig{
		InitialBalance: balanceStr,
		InitialBet:     betStr,
		TableLimit:     limitStr,
		Simulations:    sims,
		TargetBalance:  targetStr,
		MaxSpins:       maxSpins,
		Seed:           seed,
	}
	if dashboard {
		fileCfg.DashboardAddr = dashAddr
	}

	data, err := yaml.Marshal(fileCfg)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	if err := os.WriteFile(GeneratedConfigFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(
		fmt.Sprintf("\n✓ Configuration saved to %s\nStarting simulation...", GeneratedConfigFile)))
	time.Sleep(1500 * time.Millisecond) // small pause to read success message
	return nil
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}

func validatePositiveDecimal(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if !d.IsPositive() {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func validateNonNegativeDecimal(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if n < 1 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}
