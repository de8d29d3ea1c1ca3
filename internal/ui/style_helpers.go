package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints text onto an opaque strip of one background color.
// Rendering adjacent lipgloss segments leaves unstyled gaps wherever a
// reset sequence lands on a space
// (https://github.com/charmbracelet/lipgloss/discussions/78), so the bars
// and list rows paint words and the spaces between them separately.
type BgStyle struct {
	bg    lipgloss.Color
	fill  lipgloss.Style
	space string // one painted space, cached
}

// NewBgStyle returns a painter for the given background color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	fill := lipgloss.NewStyle().Background(bg)
	return BgStyle{bg: bg, fill: fill, space: fill.Render(" ")}
}

// Render paints text with style, keeping the background continuous across
// interior spaces.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	styled := style.Background(b.bg)

	var out strings.Builder
	for text != "" {
		if text[0] == ' ' {
			rest := strings.TrimLeft(text, " ")
			out.WriteString(b.Spaces(len(text) - len(rest)))
			text = rest
			continue
		}
		word := text
		if i := strings.IndexByte(text, ' '); i >= 0 {
			word, text = text[:i], text[i:]
		} else {
			text = ""
		}
		out.WriteString(styled.Render(word))
	}
	return out.String()
}

// Space returns one painted space.
func (b BgStyle) Space() string { return b.space }

// Spaces returns n painted spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return b.fill.Render(strings.Repeat(" ", n))
}

// Sep paints a separator.
func (b BgStyle) Sep(sep string) string { return b.fill.Render(sep) }

// Join joins parts with a painted separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Sep(sep))
}

// FillLine pads content to width so the strip spans the full line.
func (b BgStyle) FillLine(content string, width int) string {
	return b.fill.Width(width).Render(content)
}
