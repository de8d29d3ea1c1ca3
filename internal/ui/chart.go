package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// chartRow is one labeled bar of a chart.
type chartRow struct {
	label string
	value float64
	style lipgloss.Style // fill style
}

// renderBarChart renders horizontal bars scaled against the largest value,
// with the formatted amount after each bar. Returns "" for an empty series;
// callers render their own placeholder text.
func renderBarChart(rows []chartRow, width int, money MoneyFormatter, styles Styles) string {
	if len(rows) == 0 {
		return ""
	}

	maxValue := 0.0
	labelWidth := 0
	valueWidth := 0
	values := make([]string, len(rows))
	for i, row := range rows {
		if row.value > maxValue {
			maxValue = row.value
		}
		if n := len([]rune(row.label)); n > labelWidth {
			labelWidth = n
		}
		values[i] = money.Format(row.value)
		if n := len([]rune(values[i])); n > valueWidth {
			valueWidth = n
		}
	}
	labelWidth = min(labelWidth, 14)

	barWidth := width - labelWidth - valueWidth - 4
	if barWidth < 8 {
		barWidth = 8
	}

	var b strings.Builder
	for i, row := range rows {
		filled := 0
		if maxValue > 0 {
			filled = min(int(float64(barWidth)*row.value/maxValue+0.5), barWidth)
		}
		// A non-zero value always shows at least one cell.
		if row.value > 0 && filled == 0 {
			filled = 1
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

		b.WriteString(styles.MutedText.Render(padRight(truncate(row.label, labelWidth), labelWidth)))
		b.WriteString(" ")
		b.WriteString(row.style.Render(bar))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(values[i]))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
