package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Gauge renders a single labeled percentage bar, used by the dashboard for
// battery level and motor speed/power readings. It has no notion of
// "complete" -- it just reflects whatever fraction the caller last set.
type Gauge struct {
	Label   string
	Percent float64 // 0.0-1.0
	bar     progress.Model
}

// NewGauge creates a gauge with the given label and initial percentage.
func NewGauge(label string, percent float64) *Gauge {
	return &Gauge{
		Label:   label,
		Percent: clamp01(percent),
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(24),
		),
	}
}

// SetPercent updates the displayed fraction.
func (g *Gauge) SetPercent(percent float64) {
	g.Percent = clamp01(percent)
}

// Render returns the gauge as a single line: "Label [=====     ] 42%".
func (g *Gauge) Render() string {
	label := lipgloss.NewStyle().Foreground(MutedColor).Width(10).Render(g.Label)
	bar := g.bar.ViewAs(g.Percent)
	pct := ValueStyle.Render(fmt.Sprintf("%3.0f%%", g.Percent*100))
	return lipgloss.JoinHorizontal(lipgloss.Center, label, " ", bar, " ", pct)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
