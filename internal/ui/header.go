package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"satchel/internal/api"
	"satchel/internal/viewstate"
)

// renderHeader renders the status bar with all information.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	var parts []string

	// Logo
	parts = append(parts, bg.Render("satchel", styles.Logo))

	// Screen title
	parts = append(parts, bg.Render(m.screenTitle(), styles.Text.Bold(true)))

	// Session indicator for the active service
	if user, ok := m.sessionLabel(); ok {
		if user == "" {
			parts = append(parts, bg.Render("anonymous", styles.FaintText))
		} else {
			parts = append(parts,
				bg.Render("●", styles.SuccessText)+bg.Space()+
					bg.Render(user, styles.Text))
		}
	}

	// Screen-specific counters
	if extra := m.headerCounters(styles, bg); extra != "" {
		parts = append(parts, extra)
	}

	// Request activity
	if m.anyInFlight() {
		parts = append(parts, bg.Render(m.spin.View(), styles.AccentText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// screenTitle names the active screen for the status bar.
func (m Model) screenTitle() string {
	switch m.screen {
	case ScreenLogin:
		return "Sign in"
	case ScreenMailbox:
		return "Mail / " + m.mailboxLabel()
	case ScreenEmail:
		return "Mail / Message"
	case ScreenCompose:
		return "Mail / Compose"
	case ScreenFeed:
		return "Feed / " + m.feedLabel()
	case ScreenProfile:
		return "Feed / @" + m.profileName
	case ScreenFinance:
		return "Dashboard"
	case ScreenTransactions:
		return "Dashboard / Transactions"
	default:
		return "Home"
	}
}

// sessionLabel returns the signed-in user for the active service. The second
// return is false on screens with no session of their own.
func (m Model) sessionLabel() (string, bool) {
	switch m.screen {
	case ScreenMailbox, ScreenEmail, ScreenCompose:
		return m.mailUser, true
	case ScreenFeed, ScreenProfile:
		return m.feedUser, true
	case ScreenFinance, ScreenTransactions:
		return m.financeUser, true
	case ScreenLogin:
		return "", false
	}
	return "", false
}

// headerCounters renders per-screen counts for the status bar.
func (m Model) headerCounters(styles Styles, bg BgStyle) string {
	switch m.screen {
	case ScreenMailbox:
		if !m.emails.Loaded() {
			return ""
		}
		unread := 0
		for _, e := range m.emails.Items() {
			if !e.Read {
				unread++
			}
		}
		out := bg.Render("Messages:", styles.MutedText) + bg.Space() +
			bg.Render(fmt.Sprintf("%d", m.emails.Len()), styles.Text)
		if m.mailbox != api.MailboxSent && unread > 0 {
			out += bg.Spaces(2) + bg.Render("•", styles.FaintText) + bg.Spaces(2) +
				bg.Render("Unread:", styles.MutedText) + bg.Space() +
				bg.Render(fmt.Sprintf("%d", unread), styles.InfoText)
		}
		return out

	case ScreenFeed, ScreenProfile:
		if !m.posts.Loaded() || m.posts.TotalPages() == 0 {
			return ""
		}
		return bg.Render("Page:", styles.MutedText) + bg.Space() +
			bg.Render(fmt.Sprintf("%d/%d", m.posts.Page(), m.posts.TotalPages()), styles.Text)

	case ScreenFinance:
		return bg.Render("Window:", styles.MutedText) + bg.Space() +
			bg.Render(fmt.Sprintf("%d mo", m.months), styles.Text)

	case ScreenTransactions:
		if !m.transactions.Loaded() {
			return ""
		}
		return bg.Render("Rows:", styles.MutedText) + bg.Space() +
			bg.Render(fmt.Sprintf("%d", m.transactions.Len()), styles.Text)
	}
	return ""
}

// renderCommandBar renders the per-screen key hints.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.screen {
	case ScreenLogin:
		commands = []cmd{
			{"tab", "Next field"},
			{"enter", "Sign in"},
			{"esc", "Cancel"},
		}
	case ScreenMailbox:
		commands = []cmd{
			{"f", m.mailboxLabel()},
			{"enter", "Open"},
			{"c", "Compose"},
		}
		if m.mailbox != api.MailboxSent {
			archiveLabel := "Archive"
			if m.mailbox == api.MailboxArchive {
				archiveLabel = "Unarchive"
			}
			commands = append(commands,
				cmd{"a", archiveLabel},
				cmd{"u", "Read/unread"},
			)
		}
		commands = append(commands, cmd{"j/k", "Navigate"}, cmd{"?", "More"})
	case ScreenEmail:
		commands = []cmd{{"r", "Reply"}}
		if m.mailbox != api.MailboxSent {
			archiveLabel := "Archive"
			if m.openEmail != nil && m.openEmail.Archived {
				archiveLabel = "Unarchive"
			}
			commands = append(commands, cmd{"a", archiveLabel})
		}
		commands = append(commands, cmd{"j/k", "Scroll"}, cmd{"esc", "Back"})
	case ScreenCompose:
		commands = []cmd{
			{"tab", "Next field"},
			{"ctrl+s", "Send"},
			{"esc", "Discard"},
		}
	case ScreenFeed:
		if m.draftOpen {
			commands = []cmd{
				{"ctrl+s", "Post"},
				{"esc", "Cancel"},
			}
		} else if m.editID != 0 {
			commands = []cmd{
				{"ctrl+s", "Save"},
				{"esc", "Cancel"},
			}
		} else {
			commands = []cmd{
				{"f", m.feedLabel()},
				{"c", "New post"},
				{"Space", "Like"},
				{"e", "Edit"},
				{"enter", "Profile"},
				{"←/→", "Page"},
				{"?", "More"},
			}
		}
	case ScreenProfile:
		commands = []cmd{
			{"Space", m.followLabel()},
			{"←/→", "Page"},
			{"esc", "Feed"},
		}
	case ScreenFinance:
		commands = []cmd{
			{"m", fmt.Sprintf("%d months", m.months)},
			{"t", "Transactions"},
			{"esc", "Home"},
			{"?", "More"},
		}
	case ScreenTransactions:
		if m.searching {
			commands = []cmd{
				{"enter", "Apply"},
				{"esc", "Cancel"},
			}
		} else {
			commands = []cmd{
				{"/", "Search"},
				{"j/k", "Navigate"},
				{"esc", "Back"},
			}
		}
	default: // ScreenHome
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"1/2/3", "Jump"},
			{"?", "Help"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands))
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Show the active transaction search
	if m.screen == ScreenTransactions && !m.searching && strings.TrimSpace(m.txSearch.Value()) != "" {
		pattern := truncate(m.txSearch.Value(), 18)
		segments = append(segments,
			bg.Render("/"+pattern, styles.AccentText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderAlert renders the single-slot alert bar.
func (m Model) renderAlert() string {
	var color string
	switch m.alert.Severity() {
	case viewstate.SeverityError:
		color = m.theme.Danger
	case viewstate.SeverityWarning:
		color = m.theme.Warning
	case viewstate.SeveritySuccess:
		color = m.theme.Success
	default:
		color = m.theme.Info
	}

	bg := NewBgStyle(color)
	text := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Background)).
		Bold(true)
	return bg.FillLine(bg.Space()+bg.Render(m.alert.Message(), text), m.width)
}

// renderLoadFailure renders a failed collection load in the content area.
// Transport failures show the connection tag; structured errors show the
// server's own text.
func (m Model) renderLoadFailure(err error, fallback string) string {
	styles := m.theme.Styles()
	msg := api.Message(err, fallback)

	line := styles.DangerText.Render(msg)
	if tag := classifyConnectionError(err); tag != "ERROR" && tag != "" {
		line = styles.DangerText.Render(tag) + " " + styles.MutedText.Render(msg)
	}

	return lipgloss.Place(
		m.width,
		m.contentHeight(),
		lipgloss.Center,
		lipgloss.Center,
		line,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// mailboxLabel returns the display label for the active mailbox.
func (m Model) mailboxLabel() string {
	switch m.mailbox {
	case api.MailboxSent:
		return "Sent"
	case api.MailboxArchive:
		return "Archive"
	default:
		return "Inbox"
	}
}

// feedLabel returns the display label for the active feed.
func (m Model) feedLabel() string {
	if m.feedKind == api.FeedFollowing {
		return "Following"
	}
	return "All posts"
}

// followLabel returns the follow toggle label for the open profile.
func (m Model) followLabel() string {
	if m.profile != nil && m.profile.IsFollowing {
		return "Unfollow"
	}
	return "Follow"
}

// classifyConnectionError maps transport failures to a short status word.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}
