package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// homeEntry is one service on the launcher menu.
type homeEntry struct {
	name   string
	desc   string
	screen Screen
}

func (m Model) homeEntries() []homeEntry {
	return []homeEntry{
		{"Mail", "Read, send and archive mail on " + m.config.Mail.BaseURL, ScreenMailbox},
		{"Feed", "Browse and post to the shared feed on " + m.config.Feed.BaseURL, ScreenFeed},
		{"Dashboard", "Balances, spending and cashflow on " + m.config.Finance.BaseURL, ScreenFinance},
	}
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.homeEntries()
	switch msg.String() {
	case "j", "down":
		m.homeCursor = min(m.homeCursor+1, len(entries)-1)
	case "k", "up":
		m.homeCursor = max(m.homeCursor-1, 0)
	case "g", "home":
		m.homeCursor = 0
	case "G", "end":
		m.homeCursor = len(entries) - 1
	case "1":
		return m.openService(ScreenMailbox)
	case "2":
		return m.openService(ScreenFeed)
	case "3":
		return m.openService(ScreenFinance)
	case "enter":
		return m.openService(entries[m.homeCursor].screen)
	}
	return m, nil
}

// openService enters a service screen, routing through the sign-in form when
// the service needs a session we do not have yet.
func (m Model) openService(s Screen) (tea.Model, tea.Cmd) {
	switch s {
	case ScreenMailbox:
		if m.mail == nil {
			m.alert.ShowWarning("The mail service is not configured.")
			return m, nil
		}
		if !m.mail.LoggedIn() {
			m.openLogin(ScreenMailbox)
			return m, textinput.Blink
		}
	case ScreenFeed:
		if m.feed == nil {
			m.alert.ShowWarning("The feed service is not configured.")
			return m, nil
		}
	case ScreenFinance:
		if m.finance == nil {
			m.alert.ShowWarning("The finance service is not configured.")
			return m, nil
		}
		if !m.finance.LoggedIn() {
			m.openLogin(ScreenFinance)
			return m, textinput.Blink
		}
	}
	m.navigate(s)
	return m, m.enterScreenCmd(s)
}

// renderHome renders the launcher menu.
func (m Model) renderHome() string {
	styles := m.theme.Styles()
	entries := m.homeEntries()

	nameWidth := 0
	for _, e := range entries {
		nameWidth = max(nameWidth, len(e.name))
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render("satchel"))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render("coursework clients, one terminal"))
	b.WriteString("\n\n")

	for i, entry := range entries {
		marker := "  "
		nameStyle := styles.Text.Bold(true)
		descStyle := styles.MutedText
		if i == m.homeCursor {
			marker = styles.AccentText.Render("> ")
			nameStyle = styles.AccentText.Bold(true)
			descStyle = styles.Text
		}
		b.WriteString(marker)
		b.WriteString(nameStyle.Render(padRight(entry.name, nameWidth+2)))
		b.WriteString(descStyle.Render(entry.desc))
		if i < len(entries)-1 {
			b.WriteString("\n\n")
		}
	}

	return m.placeCenter(b.String())
}
