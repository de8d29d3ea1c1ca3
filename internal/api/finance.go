package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Summary mirrors GET /api/dashboard/summary/. Monetary values are reported
// in PrimaryCurrency.
type Summary struct {
	TotalAccounts     int     `json:"total_accounts"`
	TotalTransactions int     `json:"total_transactions"`
	TotalBalance      float64 `json:"total_balance"`
	MonthlyIncome     float64 `json:"monthly_income"`
	MonthlyExpense    float64 `json:"monthly_expense"`
	MonthlyNet        float64 `json:"monthly_net"`
	PrimaryCurrency   string  `json:"primary_currency"`
}

// Account is one entry of GET /api/dashboard/accounts/.
type Account struct {
	Name           string  `json:"name"`
	CurrentBalance float64 `json:"current_balance"`
	Currency       string  `json:"currency"`
	AccountType    string  `json:"account_type"`
}

type accountsResponse struct {
	Accounts []Account `json:"accounts"`
}

// Spending is the per-category expense breakdown for the selected window.
// Labels and Values run in parallel.
type Spending struct {
	Labels    []string  `json:"labels"`
	Values    []float64 `json:"values"`
	Months    int       `json:"months"`
	StartDate string    `json:"start_date"`
}

// Cashflow is the month-by-month income and expense series for the selected
// window. Labels, Income and Expense run in parallel.
type Cashflow struct {
	Labels    []string  `json:"labels"`
	Income    []float64 `json:"income"`
	Expense   []float64 `json:"expense"`
	StartDate string    `json:"start_date"`
}

// Transaction is one row of the JSON transactions export.
type Transaction struct {
	Date        string  `json:"date"`
	Account     string  `json:"account"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Notes       string  `json:"notes"`
	Tags        string  `json:"tags"`
}

// TransactionQuery narrows the transactions export. Zero values are omitted
// from the request.
type TransactionQuery struct {
	Account   string
	Category  string
	StartDate string
	EndDate   string
	Search    string
}

// FinanceAPI is the surface the dashboard screens consume.
type FinanceAPI interface {
	Login(ctx context.Context, username, password string) error
	LoggedIn() bool
	Summary(ctx context.Context) (Summary, error)
	Accounts(ctx context.Context) ([]Account, error)
	Spending(ctx context.Context, months int) (Spending, error)
	Cashflow(ctx context.Context, months int) (Cashflow, error)
	Transactions(ctx context.Context, q TransactionQuery) ([]Transaction, error)
}

// Ensure Finance implements FinanceAPI at compile time.
var _ FinanceAPI = (*Finance)(nil)

// Finance binds a Client to the finance server's endpoints. The dashboard
// paths keep their trailing slashes; the server routes with them.
type Finance struct {
	*Client
}

// NewFinance builds a finance service for the given server address.
func NewFinance(addr string) (*Finance, error) {
	c, err := NewClient(addr)
	if err != nil {
		return nil, err
	}
	return &Finance{Client: c}, nil
}

// Summary fetches the dashboard headline numbers.
func (f *Finance) Summary(ctx context.Context) (Summary, error) {
	return get[Summary](ctx, f.Client, "/api/dashboard/summary/", nil)
}

// Accounts fetches every account with its balance and currency.
func (f *Finance) Accounts(ctx context.Context) ([]Account, error) {
	payload, err := get[accountsResponse](ctx, f.Client, "/api/dashboard/accounts/", nil)
	if err != nil {
		return nil, err
	}
	return payload.Accounts, nil
}

// Spending fetches the per-category expense breakdown for the last months
// (clamped to 1..12 server-side).
func (f *Finance) Spending(ctx context.Context, months int) (Spending, error) {
	return get[Spending](ctx, f.Client, "/api/dashboard/spending/", monthsQuery(months))
}

// Cashflow fetches the income/expense series for the last months (clamped
// to 1..12 server-side, default 6).
func (f *Finance) Cashflow(ctx context.Context, months int) (Cashflow, error) {
	return get[Cashflow](ctx, f.Client, "/api/dashboard/cashflow/", monthsQuery(months))
}

func monthsQuery(months int) url.Values {
	if months <= 0 {
		return nil
	}
	values := url.Values{}
	values.Set("months", strconv.Itoa(months))
	return values
}

// Transactions fetches the filtered transaction list via the JSON export.
func (f *Finance) Transactions(ctx context.Context, q TransactionQuery) ([]Transaction, error) {
	values := url.Values{}
	values.Set("format", "json")
	if v := strings.TrimSpace(q.Account); v != "" {
		values.Set("account", v)
	}
	if v := strings.TrimSpace(q.Category); v != "" {
		values.Set("category", v)
	}
	if v := strings.TrimSpace(q.StartDate); v != "" {
		values.Set("start_date", v)
	}
	if v := strings.TrimSpace(q.EndDate); v != "" {
		values.Set("end_date", v)
	}
	if v := strings.TrimSpace(q.Search); v != "" {
		values.Set("search", v)
	}
	return get[[]Transaction](ctx, f.Client, "/transactions/export/", values)
}
