package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SummaryRow struct {
	Label string
	Value string
}

// RenderSummary lays rows out as a two-column table framed by rules.
func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s | %s",
			summaryLabelStyle.Render(padRight(row.Label, labelWidth)),
			summaryValueStyle.Render(padRight(row.Value, valueWidth)),
		))
	}
	lines = append(lines, hline)

	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	summaryLabelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	summaryValueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
)
