package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"satchel/internal/api"
)

// newTransactionTable builds the transactions grid. Columns get their real
// widths from sizeTransactionTable once the window size is known.
func newTransactionTable(theme Theme) table.Model {
	t := table.New(table.WithFocused(true))
	sizeTransactionTable(&t, 100, 20)
	styleTransactionTable(&t, theme)
	return t
}

func styleTransactionTable(t *table.Model, theme Theme) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.BorderMuted)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(theme.SelectionText)).
		Background(lipgloss.Color(theme.SelectionBg)).
		Bold(false)
	s.Cell = s.Cell.Foreground(lipgloss.Color(theme.Text))
	t.SetStyles(s)
}

func sizeTransactionTable(t *table.Model, width, height int) {
	desc := width - 62
	if desc < 16 {
		desc = 16
	}
	t.SetColumns([]table.Column{
		{Title: "Date", Width: 12},
		{Title: "Account", Width: 16},
		{Title: "Category", Width: 14},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: desc},
	})
	t.SetHeight(max(height-3, 3))
}

// Key handling

func (m Model) handleFinanceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CycleMonths):
		return m.cycleMonths()
	case key.Matches(msg, m.keys.Transactions):
		return m.openTransactions()
	}
	return m, nil
}

func (m Model) handleTransactionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Search) {
		m.searching = true
		m.alert.Clear()
		return m, m.txSearch.Focus()
	}

	// Remaining keys move the table cursor.
	var cmd tea.Cmd
	m.txTable, cmd = m.txTable.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel; fall back to whatever pattern is applied.
		m.searching = false
		m.txSearch.Blur()
		m.txSearch.SetValue(m.transactions.Filter())
		m.txSearch.CursorEnd()
		return m, nil
	case "enter":
		m.searching = false
		m.txSearch.Blur()
		return m, m.loadTransactionsCmd(m.currentTxQuery())
	}
	var cmd tea.Cmd
	m.txSearch, cmd = m.txSearch.Update(msg)
	return m, cmd
}

// Actions

// cycleMonths rotates the chart window 3 -> 6 -> 12 and refetches both
// series. The summary and accounts keep their values; only the charts track
// the window.
func (m Model) cycleMonths() (tea.Model, tea.Cmd) {
	if m.busy(opCharts) {
		return m, nil
	}
	switch {
	case m.months < 6:
		m.months = 6
	case m.months < 12:
		m.months = 12
	default:
		m.months = 3
	}
	m.begin(opCharts)
	return m, tea.Batch(m.loadChartsCmd(m.months), m.spin.Tick)
}

func (m Model) openTransactions() (tea.Model, tea.Cmd) {
	m.navigate(ScreenTransactions)
	return m, m.loadTransactionsCmd(m.currentTxQuery())
}

func (m Model) currentTxQuery() api.TransactionQuery {
	return api.TransactionQuery{Search: strings.TrimSpace(m.txSearch.Value())}
}

// Message handlers

func (m *Model) handleDashboardLoaded(msg dashboardLoadedMsg) {
	if msg.seq != m.dashSeq {
		return // stale response
	}
	m.dashLoading = false

	if msg.err != nil {
		m.summary = nil
		m.accounts = nil
		m.spending = nil
		m.cashflow = nil
		m.dashErr = msg.err
		if api.IsAuth(msg.err) && (m.screen == ScreenFinance || m.screen == ScreenTransactions) {
			m.openLogin(ScreenFinance)
			m.alert.ShowWarning(api.Message(msg.err, "Sign in to view your dashboard."))
		}
		return
	}

	m.dashErr = nil
	summary := msg.summary
	spending := msg.spending
	cashflow := msg.cashflow
	m.summary = &summary
	m.accounts = msg.accounts
	m.spending = &spending
	m.cashflow = &cashflow

	// The formatter follows the server's primary currency.
	if summary.PrimaryCurrency != "" && summary.PrimaryCurrency != m.money.Code() {
		m.money = NewMoneyFormatter(summary.PrimaryCurrency)
	}
}

func (m *Model) handleChartsLoaded(msg chartsLoadedMsg) {
	m.finish(opCharts)
	if msg.months != m.months {
		return // the window moved again; a newer load is coming
	}
	if msg.err != nil {
		// Keep the charts we have.
		m.alert.ShowError(api.Message(msg.err, "Could not load the charts."))
		return
	}
	spending := msg.spending
	cashflow := msg.cashflow
	m.spending = &spending
	m.cashflow = &cashflow
}

func (m *Model) handleTransactionsLoaded(msg transactionsLoadedMsg) {
	if msg.err != nil {
		if !m.transactions.Fail(msg.seq, msg.err) {
			return // stale response
		}
		if api.IsAuth(msg.err) && m.screen == ScreenTransactions {
			m.openLogin(ScreenFinance)
			m.alert.ShowWarning(api.Message(msg.err, "Sign in to view transactions."))
		}
		return
	}
	if !m.transactions.Resolve(msg.seq, msg.transactions, 1) {
		return // stale response
	}
	m.txTable.SetRows(m.transactionRows())
	m.txTable.GotoTop()
}

// Helpers

func (m Model) transactionRows() []table.Row {
	items := m.transactions.Items()
	rows := make([]table.Row, 0, len(items))
	for _, tx := range items {
		rows = append(rows, table.Row{
			tx.Date,
			tx.Account,
			titleCase(tx.Category),
			m.formatAmount(tx.Currency, tx.Amount),
			transactionSummary(tx),
		})
	}
	return rows
}

// formatAmount falls back to a per-row formatter when the row's currency is
// not the dashboard's primary one.
func (m Model) formatAmount(code string, value float64) string {
	if code != "" && code != m.money.Code() {
		return NewMoneyFormatter(code).Format(value)
	}
	return m.money.Format(value)
}

func transactionSummary(tx api.Transaction) string {
	desc := firstLine(tx.Description)
	if desc == "" {
		desc = firstLine(tx.Notes)
	}
	if tx.Tags != "" {
		desc += "  [" + tx.Tags + "]"
	}
	return strings.TrimSpace(desc)
}

// Rendering

func (m Model) renderFinance() string {
	styles := m.theme.Styles()

	if m.dashErr != nil {
		return m.renderLoadFailure(m.dashErr, "Could not load the dashboard.")
	}
	if m.summary == nil {
		return m.placeCenter(styles.MutedText.Render("Loading dashboard..."))
	}

	height := m.contentHeight()
	overview := m.renderOverview()

	remaining := max(height-4, 6)
	topHeight := remaining / 2
	bottomHeight := remaining - topHeight

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	middle := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderAccountsPanel(leftWidth, topHeight),
		m.renderSpendingPanel(rightWidth, topHeight),
	)

	return overview + "\n" + middle + "\n" + m.renderCashflowPanel(m.width, bottomHeight)
}

func (m Model) renderOverview() string {
	styles := m.theme.Styles()
	s := *m.summary

	netStyle := styles.SuccessText
	if s.MonthlyNet < 0 {
		netStyle = styles.DangerText
	}

	line1 := " " + styles.MutedText.Render("Balance") + " " +
		styles.Text.Bold(true).Render(m.money.Format(s.TotalBalance)) +
		"   " + styles.MutedText.Render("Accounts") + " " +
		styles.Text.Render(fmt.Sprintf("%d", s.TotalAccounts)) +
		"   " + styles.MutedText.Render("Transactions") + " " +
		styles.Text.Render(fmt.Sprintf("%d", s.TotalTransactions))

	line2 := " " + styles.MutedText.Render("This month") + "  " +
		styles.SuccessText.Render("+"+m.money.Format(s.MonthlyIncome)) + "  " +
		styles.DangerText.Render("−"+m.money.Format(s.MonthlyExpense)) + "  " +
		styles.MutedText.Render("net") + " " + netStyle.Render(m.money.Format(s.MonthlyNet))

	return m.renderTitledBox("Overview", line1+"\n"+line2, m.width, 4, false)
}

func (m Model) renderAccountsPanel(width, height int) string {
	styles := m.theme.Styles()

	var lines []string
	if len(m.accounts) == 0 {
		lines = append(lines, " "+styles.MutedText.Render("No accounts yet."))
	}
	for i, a := range m.accounts {
		if i >= height-2 {
			break
		}
		lines = append(lines, m.renderAccountLine(a, width-2))
	}

	return m.renderTitledBox("Accounts", strings.Join(lines, "\n"), width, height, false)
}

func (m Model) renderAccountLine(a api.Account, width int) string {
	styles := m.theme.Styles()

	chip := styles.AccountStyle(a.AccountType).Render(padRight(truncate(titleCase(a.AccountType), 10), 10))
	balance := m.formatAmount(a.Currency, a.CurrentBalance)
	balStyle := styles.Text.Bold(true)
	if a.CurrentBalance < 0 {
		balStyle = styles.DangerText
	}

	nameWidth := width - 12 - len([]rune(balance)) - 4
	if nameWidth < 6 {
		nameWidth = 6
	}

	return " " + chip + " " +
		styles.Text.Render(padRight(truncate(a.Name, nameWidth), nameWidth)) + " " +
		balStyle.Render(balance)
}

func (m Model) renderSpendingPanel(width, height int) string {
	styles := m.theme.Styles()

	rows := m.spendingRows()
	if len(rows) > height-2 {
		rows = rows[:height-2] // biggest categories first
	}
	chart := renderBarChart(rows, width-4, m.money, styles)
	if chart == "" {
		chart = " " + styles.MutedText.Render("No spending in this window.")
	} else {
		chart = indentBlock(chart, " ")
	}

	title := fmt.Sprintf("Spending · last %d months", m.months)
	return m.renderTitledBox(title, chart, width, height, false)
}

func (m Model) renderCashflowPanel(width, height int) string {
	styles := m.theme.Styles()

	rows := m.cashflowRows()
	if rowCap := height - 2; len(rows) > rowCap && rowCap > 0 {
		rows = rows[len(rows)-rowCap:] // keep the most recent months
	}
	chart := renderBarChart(rows, width-4, m.money, styles)
	if chart == "" {
		chart = " " + styles.MutedText.Render("No activity in this window.")
	} else {
		chart = indentBlock(chart, " ")
	}

	title := fmt.Sprintf("Cash flow · last %d months", m.months)
	return m.renderTitledBox(title, chart, width, height, false)
}

// spendingRows maps the category breakdown to chart bars.
func (m Model) spendingRows() []chartRow {
	if m.spending == nil {
		return nil
	}
	styles := m.theme.Styles()
	rows := make([]chartRow, 0, len(m.spending.Labels))
	for i, label := range m.spending.Labels {
		if i >= len(m.spending.Values) {
			break
		}
		rows = append(rows, chartRow{
			label: titleCase(label),
			value: m.spending.Values[i],
			style: styles.AccentText,
		})
	}
	return rows
}

// cashflowRows interleaves an income bar and an expense bar per month so the
// pairs read against a shared scale.
func (m Model) cashflowRows() []chartRow {
	if m.cashflow == nil {
		return nil
	}
	styles := m.theme.Styles()
	var rows []chartRow
	for i, label := range m.cashflow.Labels {
		if i < len(m.cashflow.Income) {
			rows = append(rows, chartRow{label: label, value: m.cashflow.Income[i], style: styles.SuccessText})
		}
		if i < len(m.cashflow.Expense) {
			rows = append(rows, chartRow{value: m.cashflow.Expense[i], style: styles.DangerText})
		}
	}
	return rows
}

func indentBlock(block, prefix string) string {
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTransactions() string {
	styles := m.theme.Styles()

	if err := m.transactions.Err(); err != nil {
		return m.renderLoadFailure(err, "Could not load transactions.")
	}
	if !m.transactions.Loaded() {
		return m.placeCenter(styles.MutedText.Render("Loading transactions..."))
	}

	var b strings.Builder
	if m.searching {
		b.WriteString(" ")
		b.WriteString(m.txSearch.View())
		b.WriteString("\n\n")
	}

	if m.transactions.Empty() {
		text := "No transactions yet."
		if strings.TrimSpace(m.transactions.Filter()) != "" {
			text = "No transactions match your search."
		}
		if m.searching {
			b.WriteString(" " + styles.MutedText.Render(text))
			return b.String()
		}
		return m.placeCenter(styles.MutedText.Render(text))
	}

	b.WriteString(m.txTable.View())
	return b.String()
}

// Messages

type dashboardLoadedMsg struct {
	seq      uint64
	months   int
	summary  api.Summary
	accounts []api.Account
	spending api.Spending
	cashflow api.Cashflow
	err      error
}

type chartsLoadedMsg struct {
	months   int
	spending api.Spending
	cashflow api.Cashflow
	err      error
}

type transactionsLoadedMsg struct {
	seq          uint64
	transactions []api.Transaction
	err          error
}

// Commands

// loadDashboardCmd fetches everything the dashboard shows in one tagged
// sweep: headline numbers, accounts, then both chart series.
func (m *Model) loadDashboardCmd() tea.Cmd {
	if m.finance == nil {
		return nil
	}
	m.dashSeq++
	m.dashLoading = true
	m.dashErr = nil
	seq := m.dashSeq
	months := m.months

	fetch := func() tea.Msg {
		msg := dashboardLoadedMsg{seq: seq, months: months}
		msg.summary, msg.err = m.finance.Summary(m.ctx)
		if msg.err != nil {
			return msg
		}
		msg.accounts, msg.err = m.finance.Accounts(m.ctx)
		if msg.err != nil {
			return msg
		}
		msg.spending, msg.err = m.finance.Spending(m.ctx, months)
		if msg.err != nil {
			return msg
		}
		msg.cashflow, msg.err = m.finance.Cashflow(m.ctx, months)
		return msg
	}
	return tea.Batch(fetch, m.spin.Tick)
}

// loadChartsCmd refetches only the chart series after the window changes.
func (m Model) loadChartsCmd(months int) tea.Cmd {
	fetch := func() tea.Msg {
		msg := chartsLoadedMsg{months: months}
		msg.spending, msg.err = m.finance.Spending(m.ctx, months)
		if msg.err != nil {
			return msg
		}
		msg.cashflow, msg.err = m.finance.Cashflow(m.ctx, months)
		return msg
	}
	return fetch
}

func (m *Model) loadTransactionsCmd(q api.TransactionQuery) tea.Cmd {
	if m.finance == nil {
		return nil
	}
	seq := m.transactions.Begin(q.Search, 1)
	fetch := func() tea.Msg {
		rows, err := m.finance.Transactions(m.ctx, q)
		return transactionsLoadedMsg{seq: seq, transactions: rows, err: err}
	}
	return tea.Batch(fetch, m.spin.Tick)
}
