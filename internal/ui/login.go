package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"satchel/internal/api"
)

// loginState is the shared credentials form. The target screen decides which
// service the form signs in to and where a successful sign-in lands.
type loginState struct {
	target   Screen
	username textinput.Model
	password textinput.Model
	focus    int // 0 = username, 1 = password
}

func newLoginState(target Screen) loginState {
	user := textinput.New()
	user.Placeholder = "username"
	user.Prompt = "> "
	user.CharLimit = 150
	user.Width = 30
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = "> "
	pass.CharLimit = 150
	pass.Width = 30
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return loginState{target: target, username: user, password: pass}
}

func (ls *loginState) cycleFocus() {
	if ls.focus == 0 {
		ls.focus = 1
		ls.username.Blur()
		ls.password.Focus()
	} else {
		ls.focus = 0
		ls.password.Blur()
		ls.username.Focus()
	}
}

// session is the slice of a service client the login form needs.
type session interface {
	Login(ctx context.Context, username, password string) error
	LoggedIn() bool
}

// serviceFor maps a screen to the service that owns its session.
func (m Model) serviceFor(target Screen) session {
	switch target {
	case ScreenMailbox, ScreenEmail, ScreenCompose:
		if m.mail != nil {
			return m.mail
		}
	case ScreenFeed, ScreenProfile:
		if m.feed != nil {
			return m.feed
		}
	case ScreenFinance, ScreenTransactions:
		if m.finance != nil {
			return m.finance
		}
	}
	return nil
}

// presetUsername returns the configured username for a login target.
func (m Model) presetUsername(target Screen) string {
	switch target {
	case ScreenMailbox, ScreenEmail, ScreenCompose:
		return m.config.Mail.Username
	case ScreenFeed, ScreenProfile:
		return m.config.Feed.Username
	case ScreenFinance, ScreenTransactions:
		return m.config.Finance.Username
	}
	return ""
}

// loginServiceName names the service for the form title.
func loginServiceName(target Screen) string {
	switch target {
	case ScreenFeed, ScreenProfile:
		return "Feed"
	case ScreenFinance, ScreenTransactions:
		return "Dashboard"
	default:
		return "Mail"
	}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.navigate(ScreenHome)
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.login.cycleFocus()
		return m, textinput.Blink
	case "enter":
		if m.login.focus == 0 {
			m.login.cycleFocus()
			return m, textinput.Blink
		}
		return m.submitLogin()
	}

	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.username, cmd = m.login.username.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

// submitLogin validates locally, then dispatches the sign-in request. The
// form keeps its contents on failure.
func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	if m.busy(opLogin) {
		return m, nil
	}

	username := strings.TrimSpace(m.login.username.Value())
	password := m.login.password.Value()
	if username == "" || password == "" {
		m.alert.ShowWarning("Username and password are required.")
		return m, nil
	}

	svc := m.serviceFor(m.login.target)
	if svc == nil {
		m.alert.ShowError("The service is not configured.")
		return m, nil
	}

	m.begin(opLogin)
	return m, tea.Batch(m.loginCmd(svc, m.login.target, username, password), m.spin.Tick)
}

// handleLoginDone finishes a sign-in attempt.
func (m *Model) handleLoginDone(msg loginDoneMsg) tea.Cmd {
	m.finish(opLogin)
	if msg.err != nil {
		m.alert.ShowError(api.Message(msg.err, "Could not sign in."))
		return nil
	}

	switch msg.target {
	case ScreenMailbox, ScreenEmail, ScreenCompose:
		m.mailUser = msg.username
	case ScreenFeed, ScreenProfile:
		m.feedUser = msg.username
	case ScreenFinance, ScreenTransactions:
		m.financeUser = msg.username
	}

	m.navigate(msg.target)
	return m.enterScreenCmd(msg.target)
}

// renderLogin renders the credentials form.
func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	userLabel := styles.MutedText
	passLabel := styles.MutedText
	if m.login.focus == 0 {
		userLabel = styles.AccentText
	} else {
		passLabel = styles.AccentText
	}

	var b strings.Builder
	b.WriteString(userLabel.Render("Username"))
	b.WriteString("\n")
	b.WriteString(m.login.username.View())
	b.WriteString("\n\n")
	b.WriteString(passLabel.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.login.password.View())
	b.WriteString("\n\n")
	if m.busy(opLogin) {
		b.WriteString(styles.MutedText.Render("Signing in..."))
	} else {
		b.WriteString(styles.FaintText.Render("enter to sign in"))
	}

	box := m.renderTitledBox("Sign in to "+loginServiceName(m.login.target), b.String(), 44, 11, true)
	return m.placeCenter(box)
}

// Messages

type loginDoneMsg struct {
	target   Screen
	username string
	err      error
}

// Commands

func (m Model) loginCmd(svc session, target Screen, username, password string) tea.Cmd {
	return func() tea.Msg {
		err := svc.Login(m.ctx, username, password)
		return loginDoneMsg{target: target, username: username, err: err}
	}
}
