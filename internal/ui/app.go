package ui

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"satchel/internal/api"
	"satchel/internal/config"
	"satchel/internal/prefs"
	"satchel/internal/viewstate"
)

// Screen identifies the active screen.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenLogin
	ScreenMailbox
	ScreenEmail
	ScreenCompose
	ScreenFeed
	ScreenProfile
	ScreenFinance
	ScreenTransactions
)

// In-flight guard keys for mutations. A control with a request outstanding
// refuses to start another; collection loads guard through their view state.
const (
	opLogin       = "login"
	opSendEmail   = "email.send"
	opUpdateEmail = "email.update"
	opCreatePost  = "post.create"
	opEditPost    = "post.edit"
	opFollow      = "profile.follow"
	opCharts      = "dashboard.charts"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Mail      api.MailAPI
	Feed      api.FeedAPI
	Finance   api.FinanceAPI
	Config    config.Config
	Screen    Screen // initial screen; ScreenHome shows the menu
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	mail      api.MailAPI
	feed      api.FeedAPI
	finance   api.FinanceAPI
	config    config.Config
	prefsPath string

	// UI state
	theme    Theme
	keys     keyMap
	screen   Screen
	width    int
	height   int
	ready    bool
	showHelp bool
	spin     spinner.Model
	alert    viewstate.Alert
	inFlight map[string]bool

	// Session identities, set after a successful sign-in
	mailUser    string
	feedUser    string
	financeUser string

	// Home state
	homeCursor int

	// Login state
	login loginState

	// Mail state
	mailbox     string
	emails      viewstate.Collection[api.Email]
	emailCursor int
	openEmailID int // message being loaded or shown
	openEmail   *api.Email
	emailBody   viewport.Model
	compose     composeState

	// Feed state
	feedKind    string // api.FeedAll or api.FeedFollowing
	posts       viewstate.Collection[api.Post]
	postCursor  int
	feedPager   paginator.Model
	draft       textarea.Model
	draftOpen   bool
	editID      int // post being edited inline; zero when none
	editor      textarea.Model
	profileName string
	profile     *api.Profile

	// Finance state
	months       int
	summary      *api.Summary
	accounts     []api.Account
	spending     *api.Spending
	cashflow     *api.Cashflow
	dashSeq      uint64
	dashLoading  bool
	dashErr      error
	money        MoneyFormatter
	transactions viewstate.Collection[api.Transaction]
	txTable      table.Model
	txSearch     textinput.Model
	searching    bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	pager := paginator.New()
	pager.Type = paginator.Arabic

	search := textinput.New()
	search.Placeholder = "description, notes, tags..."
	search.Prompt = "/ "
	search.CharLimit = 120

	m := Model{
		ctx:       ctx,
		mail:      opts.Mail,
		feed:      opts.Feed,
		finance:   opts.Finance,
		config:    opts.Config,
		prefsPath: prefsPath,

		theme:    theme,
		keys:     DefaultKeyMap(),
		screen:   ScreenHome,
		spin:     sp,
		inFlight: make(map[string]bool),

		mailbox:  api.MailboxInbox,
		compose:  newComposeState(),
		feedKind: api.FeedAll,

		feedPager: pager,
		draft:     newPostArea(),
		editor:    newPostArea(),

		months:   opts.Config.Finance.Months,
		money:    NewMoneyFormatter(""),
		txSearch: search,
		txTable:  newTransactionTable(theme),
	}

	// Screens behind a session open through the login form.
	switch opts.Screen {
	case ScreenMailbox:
		if m.mail != nil && m.mail.LoggedIn() {
			m.screen = ScreenMailbox
		} else {
			m.openLogin(ScreenMailbox)
		}
	case ScreenFinance:
		if m.finance != nil && m.finance.LoggedIn() {
			m.screen = ScreenFinance
		} else {
			m.openLogin(ScreenFinance)
		}
	case ScreenFeed:
		// The shared feed is browsable without a session.
		m.screen = ScreenFeed
	}

	return m
}

// bootMsg fires once at startup so the initial screen's load runs through
// Update, where model changes stick.
type bootMsg struct{}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		textinput.Blink,
		func() tea.Msg { return bootMsg{} },
	)
}

// enterScreenCmd returns the initial load for a screen, if it has one.
func (m *Model) enterScreenCmd(s Screen) tea.Cmd {
	switch s {
	case ScreenMailbox:
		return m.loadMailboxCmd(m.mailbox)
	case ScreenFeed:
		return m.loadPostsCmd(m.feedKind, "", 1)
	case ScreenProfile:
		if m.profileName == "" {
			return nil
		}
		return tea.Batch(
			m.loadProfileCmd(m.profileName),
			m.loadPostsCmd(api.FeedProfile, m.profileName, 1),
		)
	case ScreenFinance:
		return m.loadDashboardCmd()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initEmailViewport()
		}
		m.ready = true
		m.syncLayout()
		return m, nil

	case bootMsg:
		return m, m.enterScreenCmd(m.screen)

	case spinner.TickMsg:
		if !m.anyInFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case loginDoneMsg:
		return m, m.handleLoginDone(msg)

	case mailboxLoadedMsg:
		m.handleMailboxLoaded(msg)
		return m, nil

	case emailLoadedMsg:
		return m, m.handleEmailLoaded(msg)

	case emailSentMsg:
		return m, m.handleEmailSent(msg)

	case emailUpdatedMsg:
		return m, m.handleEmailUpdated(msg)

	case postsLoadedMsg:
		m.handlePostsLoaded(msg)
		return m, nil

	case postCreatedMsg:
		return m, m.handlePostCreated(msg)

	case postEditedMsg:
		m.handlePostEdited(msg)
		return m, nil

	case likeToggledMsg:
		m.handleLikeToggled(msg)
		return m, nil

	case profileLoadedMsg:
		return m, m.handleProfileLoaded(msg)

	case followToggledMsg:
		m.handleFollowToggled(msg)
		return m, nil

	case dashboardLoadedMsg:
		m.handleDashboardLoaded(msg)
		return m, nil

	case chartsLoadedMsg:
		m.handleChartsLoaded(msg)
		return m, nil

	case transactionsLoadedMsg:
		m.handleTransactionsLoaded(msg)
		return m, nil
	}

	return m, nil
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// A focused input owns the keyboard; only its handler sees the key.
	if m.typing() {
		return m.handleTypingKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		return m.goBack()
	}

	switch m.screen {
	case ScreenHome:
		return m.handleHomeKey(msg)
	case ScreenMailbox:
		return m.handleMailboxKey(msg)
	case ScreenEmail:
		return m.handleEmailKey(msg)
	case ScreenFeed:
		return m.handleFeedKey(msg)
	case ScreenProfile:
		return m.handleProfileKey(msg)
	case ScreenFinance:
		return m.handleFinanceKey(msg)
	case ScreenTransactions:
		return m.handleTransactionsKey(msg)
	}
	return m, nil
}

// typing reports whether a text input currently owns the keyboard.
func (m Model) typing() bool {
	switch m.screen {
	case ScreenLogin, ScreenCompose:
		return true
	case ScreenFeed:
		return m.draftOpen || m.editID != 0
	case ScreenProfile:
		return m.editID != 0
	case ScreenTransactions:
		return m.searching
	}
	return false
}

// handleTypingKey routes keys to the screen that owns the focused input.
func (m Model) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The quit chord works everywhere, including forms.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenLogin:
		return m.handleLoginKey(msg)
	case ScreenCompose:
		return m.handleComposeKey(msg)
	case ScreenFeed:
		if m.editID != 0 {
			return m.handleEditKey(msg)
		}
		return m.handleDraftKey(msg)
	case ScreenProfile:
		return m.handleEditKey(msg)
	case ScreenTransactions:
		return m.handleSearchKey(msg)
	}
	return m, nil
}

// goBack returns to the parent screen. Navigation always clears the alert.
func (m Model) goBack() (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenLogin:
		m.navigate(ScreenHome)
	case ScreenEmail:
		m.openEmail = nil
		m.navigate(ScreenMailbox)
		return m, m.loadMailboxCmd(m.mailbox)
	case ScreenCompose:
		// Draft discarded, nothing sent.
		m.navigate(ScreenMailbox)
		return m, m.loadMailboxCmd(m.mailbox)
	case ScreenProfile:
		m.profile = nil
		m.profileName = ""
		m.navigate(ScreenFeed)
		return m, m.loadPostsCmd(m.feedKind, "", 1)
	case ScreenTransactions:
		m.navigate(ScreenFinance)
	case ScreenMailbox, ScreenFeed, ScreenFinance:
		m.navigate(ScreenHome)
	}
	return m, nil
}

// navigate switches screens and clears the alert slot.
func (m *Model) navigate(s Screen) {
	m.alert.Clear()
	m.showHelp = false
	m.screen = s
}

// openLogin swaps to the login form; target is entered after success.
func (m *Model) openLogin(target Screen) {
	m.login = newLoginState(target)
	if preset := m.presetUsername(target); preset != "" {
		m.login.username.SetValue(preset)
		m.login.cycleFocus()
	}
	m.navigate(ScreenLogin)
}

// setTheme swaps palettes and restyles the stateful components.
func (m *Model) setTheme(name string) {
	m.theme = GetTheme(name)
	m.spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	styleTransactionTable(&m.txTable, m.theme)
}

// In-flight bookkeeping for mutations.

func (m *Model) begin(op string) { m.inFlight[op] = true }

func (m *Model) finish(op string) { delete(m.inFlight, op) }

func (m Model) busy(op string) bool { return m.inFlight[op] }

// anyInFlight reports whether any request is outstanding.
func (m Model) anyInFlight() bool {
	if len(m.inFlight) > 0 {
		return true
	}
	return m.emails.Loading() || m.posts.Loading() || m.transactions.Loading() || m.dashLoading
}

// contentHeight is the rows left for the active screen after the chrome.
func (m Model) contentHeight() int {
	h := m.height - 2 // header + command bar
	if m.alert.Active() {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// syncLayout resizes the stateful components after a window change.
func (m *Model) syncLayout() {
	if !m.ready {
		return
	}
	m.emailBody.Width = m.width - 4
	m.emailBody.Height = max(m.contentHeight()-emailHeaderLines, 1)
	m.compose.body.SetWidth(min(m.width-6, 100))
	m.draft.SetWidth(min(m.width-6, 100))
	m.editor.SetWidth(min(m.width-6, 100))
	sizeTransactionTable(&m.txTable, m.width, m.contentHeight())
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// renderMain renders the header, command bar, alert slot and content.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	if m.alert.Active() {
		b.WriteString(m.renderAlert())
		b.WriteString("\n")
	}

	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current screen.
func (m Model) renderContent() string {
	switch m.screen {
	case ScreenHome:
		return m.renderHome()
	case ScreenLogin:
		return m.renderLogin()
	case ScreenMailbox:
		return m.renderMailbox()
	case ScreenEmail:
		return m.renderEmail()
	case ScreenCompose:
		return m.renderCompose()
	case ScreenFeed:
		return m.renderFeed()
	case ScreenProfile:
		return m.renderProfile()
	case ScreenFinance:
		return m.renderFinance()
	case ScreenTransactions:
		return m.renderTransactions()
	default:
		return ""
	}
}

// Run starts the Bubble Tea program. The TUI owns the terminal, so log
// output goes to satchel-debug.log when SATCHEL_DEBUG is set and is
// discarded otherwise.
func Run(opts Options) error {
	if os.Getenv("SATCHEL_DEBUG") != "" {
		f, err := tea.LogToFile("satchel-debug.log", "satchel")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
