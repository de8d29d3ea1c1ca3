package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	k := m.keys

	// Help content
	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				bindingItem(k.Up),
				bindingItem(k.Down),
				bindingItem(k.Top),
				bindingItem(k.Bottom),
				bindingItem(k.Open),
				bindingItem(k.Back),
			},
		},
		{
			title: "Mail",
			items: []helpItem{
				{"f", "Cycle mailbox"},
				bindingItem(k.Compose),
				bindingItem(k.Reply),
				bindingItem(k.Archive),
				bindingItem(k.ToggleRead),
			},
		},
		{
			title: "Feed",
			items: []helpItem{
				{"f", "All/following"},
				{"left/right", "Change page"},
				bindingItem(k.Toggle),
				{"c", "New post"},
				bindingItem(k.Edit),
				{"enter", "Open profile"},
			},
		},
		{
			title: "Dashboard",
			items: []helpItem{
				bindingItem(k.CycleMonths),
				bindingItem(k.Transactions),
				bindingItem(k.Search),
			},
		},
		{
			title: "General",
			items: []helpItem{
				bindingItem(k.CycleTheme),
				bindingItem(k.Help),
				bindingItem(k.Quit),
			},
		},
	}

	// Build help content
	var b strings.Builder

	// Title
	title := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		// Section title
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			// Key
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(12)
			b.WriteString(keyStyle.Render(item.key))
			// Description
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	// Build the modal
	content := b.String()

	// Calculate modal dimensions
	modalWidth := 40

	// Modal style
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(modalWidth)

	// Center the modal
	modalContent := modal.Render(content)

	// Create overlay
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}

func bindingItem(b key.Binding) helpItem {
	h := b.Help()
	return helpItem{h.Key, h.Desc}
}
