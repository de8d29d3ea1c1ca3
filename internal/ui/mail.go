package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"satchel/internal/api"
)

// emailHeaderLines is the chrome above the body viewport on the message
// screen: From, To, Subject, Date, rule, spacer.
const emailHeaderLines = 6

// composeState holds the compose form. A reply is a compose with the fields
// prefilled.
type composeState struct {
	recipients textinput.Model
	subject    textinput.Model
	body       textarea.Model
	focus      int // 0 recipients, 1 subject, 2 body
}

func newComposeState() composeState {
	to := textinput.New()
	to.Placeholder = "alice@example.com, bob@example.com"
	to.Prompt = ""
	to.CharLimit = 500
	to.Width = 60
	to.Focus()

	subject := textinput.New()
	subject.Placeholder = "Subject"
	subject.Prompt = ""
	subject.CharLimit = 200
	subject.Width = 60

	body := textarea.New()
	body.Placeholder = "Write your message..."
	body.SetWidth(78)
	body.SetHeight(10)
	body.CharLimit = 0

	return composeState{recipients: to, subject: subject, body: body}
}

func (cs *composeState) blur() {
	cs.recipients.Blur()
	cs.subject.Blur()
	cs.body.Blur()
}

func (cs *composeState) cycleFocus(dir int) {
	cs.blur()
	cs.focus = (cs.focus + dir + 3) % 3
	switch cs.focus {
	case 0:
		cs.recipients.Focus()
	case 1:
		cs.subject.Focus()
	case 2:
		cs.body.Focus()
	}
}

// update forwards a message to the focused field.
func (cs *composeState) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch cs.focus {
	case 0:
		cs.recipients, cmd = cs.recipients.Update(msg)
	case 1:
		cs.subject, cmd = cs.subject.Update(msg)
	case 2:
		cs.body, cmd = cs.body.Update(msg)
	}
	return cmd
}

// Key handling

func (m Model) handleMailboxKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CycleFilter):
		return m.cycleMailbox()
	case key.Matches(msg, m.keys.Compose):
		m.startCompose("", "", "")
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Archive):
		return m.toggleArchive()
	case key.Matches(msg, m.keys.ToggleRead):
		return m.toggleRead()
	case key.Matches(msg, m.keys.Open):
		return m.openSelectedEmail()
	}

	switch msg.String() {
	case "j", "down":
		m.emailCursor = min(m.emailCursor+1, max(m.emails.Len()-1, 0))
	case "k", "up":
		m.emailCursor = max(m.emailCursor-1, 0)
	case "g", "home":
		m.emailCursor = 0
	case "G", "end":
		m.emailCursor = max(m.emails.Len()-1, 0)
	}
	return m, nil
}

func (m Model) handleEmailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reply):
		return m.startReply()
	case key.Matches(msg, m.keys.Archive):
		return m.toggleArchive()
	}

	// Remaining keys scroll the body.
	var cmd tea.Cmd
	m.emailBody, cmd = m.emailBody.Update(msg)
	return m, cmd
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.goBack()
	case "tab":
		m.compose.cycleFocus(1)
		return m, textinput.Blink
	case "shift+tab":
		m.compose.cycleFocus(-1)
		return m, textinput.Blink
	case "ctrl+s":
		return m.submitCompose()
	case "enter":
		// Enter advances through the single-line fields; the body keeps
		// it for newlines.
		if m.compose.focus < 2 {
			m.compose.cycleFocus(1)
			return m, textinput.Blink
		}
	}
	return m, m.compose.update(msg)
}

// Actions

// cycleMailbox rotates inbox -> sent -> archive and reloads.
func (m Model) cycleMailbox() (tea.Model, tea.Cmd) {
	switch m.mailbox {
	case api.MailboxInbox:
		m.mailbox = api.MailboxSent
	case api.MailboxSent:
		m.mailbox = api.MailboxArchive
	default:
		m.mailbox = api.MailboxInbox
	}
	m.emailCursor = 0
	m.alert.Clear()
	return m, m.loadMailboxCmd(m.mailbox)
}

// openSelectedEmail opens the detail screen and fetches the full message.
func (m Model) openSelectedEmail() (tea.Model, tea.Cmd) {
	email, ok := m.emails.Item(m.emailCursor)
	if !ok {
		return m, nil
	}
	m.openEmail = nil
	m.navigate(ScreenEmail)
	return m, m.loadEmailCmd(email.ID)
}

// startCompose opens the compose form, optionally prefilled for a reply.
func (m *Model) startCompose(recipients, subject, body string) {
	m.compose = newComposeState()
	m.compose.recipients.SetValue(recipients)
	m.compose.subject.SetValue(subject)
	m.compose.body.SetValue(body)
	m.compose.body.SetWidth(min(m.width-6, 100))
	if recipients != "" {
		// Reply: jump straight to the body.
		m.compose.recipients.Blur()
		m.compose.focus = 2
		m.compose.body.Focus()
		m.compose.body.CursorStart()
	}
	m.navigate(ScreenCompose)
}

func (m Model) startReply() (tea.Model, tea.Cmd) {
	if m.openEmail == nil {
		return m, nil
	}
	e := *m.openEmail
	m.startCompose(e.Sender, replySubject(e.Subject), replyQuote(e))
	return m, textinput.Blink
}

// replySubject prefixes Re: exactly once.
func replySubject(subject string) string {
	if strings.HasPrefix(subject, "Re: ") {
		return subject
	}
	return "Re: " + subject
}

// replyQuote opens the reply body with the quoted original.
func replyQuote(e api.Email) string {
	return fmt.Sprintf("\n\nOn %s %s wrote:\n%s", e.Timestamp, e.Sender, e.Body)
}

// toggleArchive flips the archived flag of the selected or open message,
// then reloads the mailbox it disappeared from. Sent mail has no archive.
func (m Model) toggleArchive() (tea.Model, tea.Cmd) {
	if m.mailbox == api.MailboxSent || m.busy(opUpdateEmail) {
		return m, nil
	}

	var target api.Email
	if m.screen == ScreenEmail {
		if m.openEmail == nil {
			return m, nil
		}
		target = *m.openEmail
	} else {
		email, ok := m.emails.Item(m.emailCursor)
		if !ok {
			return m, nil
		}
		target = email
	}

	m.begin(opUpdateEmail)
	fields := api.EmailUpdate{Archived: api.Bool(!target.Archived)}
	return m, tea.Batch(m.updateEmailCmd(target.ID, fields), m.spin.Tick)
}

// toggleRead flips the read flag of the selected message in place.
func (m Model) toggleRead() (tea.Model, tea.Cmd) {
	if m.mailbox == api.MailboxSent || m.busy(opUpdateEmail) {
		return m, nil
	}
	email, ok := m.emails.Item(m.emailCursor)
	if !ok {
		return m, nil
	}

	m.begin(opUpdateEmail)
	fields := api.EmailUpdate{Read: api.Bool(!email.Read)}
	return m, tea.Batch(m.updateEmailCmd(email.ID, fields), m.spin.Tick)
}

// submitCompose validates locally, then posts the draft. A failed send
// leaves every field as typed.
func (m Model) submitCompose() (tea.Model, tea.Cmd) {
	if m.busy(opSendEmail) {
		return m, nil
	}

	recipients := strings.TrimSpace(m.compose.recipients.Value())
	if recipients == "" {
		m.alert.ShowWarning("At least one recipient is required.")
		return m, nil
	}

	m.begin(opSendEmail)
	subject := strings.TrimSpace(m.compose.subject.Value())
	body := m.compose.body.Value()
	return m, tea.Batch(m.sendEmailCmd(recipients, subject, body), m.spin.Tick)
}

// Message handlers

func (m *Model) handleMailboxLoaded(msg mailboxLoadedMsg) {
	if msg.err != nil {
		if !m.emails.Fail(msg.seq, msg.err) {
			return // stale response
		}
		if api.IsAuth(msg.err) && m.screen == ScreenMailbox {
			m.openLogin(ScreenMailbox)
			m.alert.ShowWarning(api.Message(msg.err, "Sign in to read your mail."))
		}
		return
	}

	selected := m.selectedEmailID()
	if !m.emails.Resolve(msg.seq, msg.emails, 1) {
		return // stale response
	}
	m.emailCursor = indexOfEmail(m.emails.Items(), selected)
}

func (m *Model) handleEmailLoaded(msg emailLoadedMsg) tea.Cmd {
	m.finish(emailOpenOp(msg.id))
	if m.screen != ScreenEmail || msg.id != m.openEmailID {
		return nil // navigated away; drop the stale payload
	}
	if msg.err != nil {
		m.navigate(ScreenMailbox)
		m.alert.ShowError(api.Message(msg.err, "Could not load the message."))
		return nil
	}

	email := msg.email
	receipt := needsReadReceipt(email)
	if receipt {
		email.Read = true
		m.markEmailRead(email.ID)
	}
	m.openEmail = &email
	m.emailBody.SetContent(lipgloss.NewStyle().Width(m.emailBody.Width).Render(email.Body))
	m.emailBody.GotoTop()

	if receipt {
		return m.markReadCmd(email.ID)
	}
	return nil
}

func (m *Model) handleEmailSent(msg emailSentMsg) tea.Cmd {
	m.finish(opSendEmail)
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			m.openLogin(ScreenCompose)
			m.alert.ShowWarning(api.Message(msg.err, "Sign in to send mail."))
			return nil
		}
		m.alert.ShowError(api.Message(msg.err, "Could not send the message."))
		return nil
	}

	// A successful send lands in the sent mailbox.
	m.mailbox = api.MailboxSent
	m.emailCursor = 0
	m.navigate(ScreenMailbox)
	m.alert.ShowSuccess("Email sent successfully.")
	return m.loadMailboxCmd(api.MailboxSent)
}

func (m *Model) handleEmailUpdated(msg emailUpdatedMsg) tea.Cmd {
	m.finish(opUpdateEmail)
	if msg.err != nil {
		m.alert.ShowError(api.Message(msg.err, "Could not update the message."))
		return nil
	}

	if msg.fields.Archived != nil {
		// Membership changed; reload whichever mailbox is showing.
		if m.screen == ScreenEmail {
			m.openEmail = nil
			m.navigate(ScreenMailbox)
		}
		return m.loadMailboxCmd(m.mailbox)
	}

	if msg.fields.Read != nil {
		// Same membership; flip the row in place.
		for i, e := range m.emails.Items() {
			if e.ID == msg.id {
				e.Read = *msg.fields.Read
				m.emails.Replace(i, e)
				break
			}
		}
		if m.openEmail != nil && m.openEmail.ID == msg.id {
			m.openEmail.Read = *msg.fields.Read
		}
	}
	return nil
}

// Helpers

// needsReadReceipt reports whether opening this message should record a
// read. Already-read messages fire nothing.
func needsReadReceipt(e api.Email) bool {
	return !e.Read
}

// markEmailRead flips the list row without a reload.
func (m *Model) markEmailRead(id int) {
	for i, e := range m.emails.Items() {
		if e.ID == id {
			e.Read = true
			m.emails.Replace(i, e)
			return
		}
	}
}

func (m Model) selectedEmailID() int {
	if e, ok := m.emails.Item(m.emailCursor); ok {
		return e.ID
	}
	return 0
}

// indexOfEmail restores the cursor to the same message after a reload.
func indexOfEmail(items []api.Email, id int) int {
	for i, e := range items {
		if e.ID == id {
			return i
		}
	}
	return 0
}

func emailOpenOp(id int) string {
	return fmt.Sprintf("email.open.%d", id)
}

func (m *Model) initEmailViewport() {
	m.emailBody = viewport.New(m.width-4, max(m.height-2-emailHeaderLines, 1))
}

// Rendering

func (m Model) renderMailbox() string {
	styles := m.theme.Styles()

	if err := m.emails.Err(); err != nil {
		return m.renderLoadFailure(err, "Could not load the mailbox.")
	}
	if !m.emails.Loaded() {
		return m.placeCenter(styles.MutedText.Render("Loading " + strings.ToLower(m.mailboxLabel()) + "..."))
	}
	if m.emails.Empty() {
		return m.placeCenter(styles.MutedText.Render(m.emptyMailboxText()))
	}

	height := m.contentHeight()
	rowWidth := m.width - 2 // box borders
	start, end := listWindow(m.emails.Len(), m.emailCursor, height-2)

	var lines []string
	for i := start; i < end; i++ {
		email, _ := m.emails.Item(i)
		lines = append(lines, m.formatEmailRow(email, rowWidth, i == m.emailCursor))
	}

	return m.renderTitledBox(m.mailboxLabel(), strings.Join(lines, "\n"), m.width, height, true)
}

// formatEmailRow renders one mailbox line: marker, correspondent, subject,
// timestamp. Unread rows read bold.
func (m Model) formatEmailRow(e api.Email, width int, selected bool) string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	unread := !e.Read && m.mailbox != api.MailboxSent

	marker := bg.Space()
	if unread {
		marker = bg.Render("●", styles.InfoText)
	}

	who := e.Sender
	if m.mailbox == api.MailboxSent {
		who = strings.Join(e.Recipients, ", ")
	}
	whoStyle := styles.MutedText
	subjectStyle := styles.MutedText
	if unread {
		whoStyle = styles.Text.Bold(true)
		subjectStyle = styles.Text
	}
	if selected {
		whoStyle = whoStyle.Foreground(lipgloss.Color(m.theme.SelectionText))
		subjectStyle = subjectStyle.Foreground(lipgloss.Color(m.theme.SelectionText))
	}

	subject := firstLine(e.Subject)
	if subject == "" {
		subject = "(no subject)"
	}

	ts := e.Timestamp
	subjectWidth := width - 26 - len([]rune(ts)) - 5
	if subjectWidth < 8 {
		subjectWidth = 8
	}

	line := marker + bg.Space() +
		bg.Render(padRight(truncate(who, 24), 24), whoStyle) + bg.Space() +
		bg.Render(padRight(truncate(subject, subjectWidth), subjectWidth), subjectStyle) + bg.Space() +
		bg.Render(ts, styles.FaintText)

	return bg.FillLine(line, width)
}

func (m Model) emptyMailboxText() string {
	switch m.mailbox {
	case api.MailboxSent:
		return "No sent mail yet."
	case api.MailboxArchive:
		return "No archived messages."
	default:
		return "Your inbox is empty."
	}
}

func (m Model) renderEmail() string {
	styles := m.theme.Styles()
	if m.openEmail == nil {
		return m.placeCenter(styles.MutedText.Render("Loading message..."))
	}
	e := *m.openEmail

	label := styles.MutedText
	subject := e.Subject
	if subject == "" {
		subject = "(no subject)"
	}

	var b strings.Builder
	b.WriteString(label.Render("From:    "))
	b.WriteString(styles.Text.Render(e.Sender))
	b.WriteString("\n")
	b.WriteString(label.Render("To:      "))
	b.WriteString(styles.Text.Render(strings.Join(e.Recipients, ", ")))
	b.WriteString("\n")
	b.WriteString(label.Render("Subject: "))
	b.WriteString(styles.Text.Bold(true).Render(subject))
	if e.Archived {
		b.WriteString("  ")
		b.WriteString(styles.WarningText.Render("[archived]"))
	}
	b.WriteString("\n")
	b.WriteString(label.Render("Date:    "))
	b.WriteString(styles.Text.Render(e.Timestamp))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(min(m.width-2, 100), 1))))
	b.WriteString("\n\n")
	b.WriteString(m.emailBody.View())

	return b.String()
}

func (m Model) renderCompose() string {
	styles := m.theme.Styles()

	toLabel := styles.MutedText
	subjectLabel := styles.MutedText
	bodyLabel := styles.MutedText
	switch m.compose.focus {
	case 0:
		toLabel = styles.AccentText
	case 1:
		subjectLabel = styles.AccentText
	case 2:
		bodyLabel = styles.AccentText
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("New message"))
	b.WriteString("\n\n")
	b.WriteString(toLabel.Render("To       "))
	b.WriteString(m.compose.recipients.View())
	b.WriteString("\n")
	b.WriteString(subjectLabel.Render("Subject  "))
	b.WriteString(m.compose.subject.View())
	b.WriteString("\n\n")
	b.WriteString(bodyLabel.Render("Body"))
	b.WriteString("\n")
	b.WriteString(m.compose.body.View())
	if m.busy(opSendEmail) {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Sending..."))
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}

// Messages

type mailboxLoadedMsg struct {
	seq     uint64
	mailbox string
	emails  []api.Email
	err     error
}

type emailLoadedMsg struct {
	id    int
	email api.Email
	err   error
}

type emailSentMsg struct{ err error }

type emailUpdatedMsg struct {
	id     int
	fields api.EmailUpdate
	err    error
}

// Commands

// loadMailboxCmd starts a tagged mailbox load; responses that lose the race
// are discarded by their handlers.
func (m *Model) loadMailboxCmd(mailbox string) tea.Cmd {
	if m.mail == nil {
		return nil
	}
	seq := m.emails.Begin(mailbox, 1)
	fetch := func() tea.Msg {
		emails, err := m.mail.Mailbox(m.ctx, mailbox)
		return mailboxLoadedMsg{seq: seq, mailbox: mailbox, emails: emails, err: err}
	}
	return tea.Batch(fetch, m.spin.Tick)
}

func (m *Model) loadEmailCmd(id int) tea.Cmd {
	if m.mail == nil {
		return nil
	}
	m.openEmailID = id
	m.begin(emailOpenOp(id))
	fetch := func() tea.Msg {
		email, err := m.mail.Email(m.ctx, id)
		return emailLoadedMsg{id: id, email: email, err: err}
	}
	return tea.Batch(fetch, m.spin.Tick)
}

// markReadCmd records the read receipt in the background. Failures are
// dropped; the next mailbox load reconciles.
func (m Model) markReadCmd(id int) tea.Cmd {
	return func() tea.Msg {
		_ = m.mail.UpdateEmail(m.ctx, id, api.EmailUpdate{Read: api.Bool(true)})
		return nil
	}
}

func (m Model) updateEmailCmd(id int, fields api.EmailUpdate) tea.Cmd {
	return func() tea.Msg {
		err := m.mail.UpdateEmail(m.ctx, id, fields)
		return emailUpdatedMsg{id: id, fields: fields, err: err}
	}
}

func (m Model) sendEmailCmd(recipients, subject, body string) tea.Cmd {
	return func() tea.Msg {
		err := m.mail.SendEmail(m.ctx, recipients, subject, body)
		return emailSentMsg{err: err}
	}
}
