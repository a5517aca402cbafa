// Package report renders batch statistics for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alex-f73/The-Martingale-Strategy/internal/domain"
	"github.com/alex-f73/The-Martingale-Strategy/internal/statistics"
)

var (
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning   = lipgloss.AdaptiveColor{Light: "#D94E4E", Dark: "#FF6B6B"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(0, 2).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().Width(24)

	ruinStyle = lipgloss.NewStyle().Foreground(warning).Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2)
)

// Render returns a printable report of the batch parameters and summary.
func Render(params domain.TrialParams, trials int, seed int64, summary statistics.Summary) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("MARTINGALE SIMULATION REPORT"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("PARAMETERS"))
	b.WriteString("\n")
	writeRow(&b, "Initial balance", params.InitialBalance.String())
	writeRow(&b, "Initial bet", params.InitialBet.String())
	writeRow(&b, "Table limit", params.TableLimit.String())
	if params.TargetBalance.IsPositive() {
		writeRow(&b, "Target balance", params.TargetBalance.String())
	}
	writeRow(&b, "Max spins per trial", fmt.Sprintf("%d", params.MaxSpins))
	writeRow(&b, "Simulations", fmt.Sprintf("%d", trials))
	writeRow(&b, "Seed", fmt.Sprintf("%d", seed))

	b.WriteString(sectionStyle.Render("OUTCOMES"))
	b.WriteString("\n")
	writeRow(&b, "Ruined", ruinStyle.Render(fmt.Sprintf("%d (%.2f%%)", summary.Ruined, summary.RuinProbability*100)))
	writeRow(&b, "Reached target", fmt.Sprintf("%d", summary.TargetReached))
	writeRow(&b, "Hit spin cap", fmt.Sprintf("%d", summary.SpinCapped))

	b.WriteString(sectionStyle.Render("FINAL BALANCE"))
	b.WriteString("\n")
	writeRow(&b, "Mean", summary.MeanFinalBalance.StringFixed(2))
	writeRow(&b, "Median", summary.MedianFinalBalance.StringFixed(2))
	writeRow(&b, "Std deviation", fmt.Sprintf("%.2f", summary.StdDevFinalBalance))
	writeRow(&b, "Min / Max", fmt.Sprintf("%s / %s",
		summary.MinFinalBalance.StringFixed(2), summary.MaxFinalBalance.StringFixed(2)))

	b.WriteString(sectionStyle.Render("SPINS PER TRIAL"))
	b.WriteString("\n")
	writeRow(&b, "Mean", fmt.Sprintf("%.1f", summary.MeanSpins))
	writeRow(&b, "P50 / P90 / P99", fmt.Sprintf("%.0f / %.0f / %.0f",
		summary.SpinsP50, summary.SpinsP90, summary.SpinsP99))
	writeRow(&b, "Min / Max", fmt.Sprintf("%d / %d", summary.MinSpins, summary.MaxSpins))

	return boxStyle.Render(b.String())
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}
