package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestFinance_DashboardEndpoints(t *testing.T) {
	t.Parallel()

	var gotSpendingQuery, gotCashflowQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/dashboard/summary/":
			_ = json.NewEncoder(w).Encode(Summary{
				TotalAccounts:     2,
				TotalTransactions: 40,
				TotalBalance:      1520.75,
				MonthlyIncome:     3000,
				MonthlyExpense:    1479.25,
				MonthlyNet:        1520.75,
				PrimaryCurrency:   "EUR",
			})
		case "/api/dashboard/accounts/":
			_ = json.NewEncoder(w).Encode(accountsResponse{Accounts: []Account{
				{Name: "Checking", CurrentBalance: 820.5, Currency: "EUR", AccountType: "Asset"},
				{Name: "Savings", CurrentBalance: 700.25, Currency: "EUR", AccountType: "Asset"},
			}})
		case "/api/dashboard/spending/":
			gotSpendingQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode(Spending{
				Labels: []string{"Groceries", "Rent"},
				Values: []float64{240.10, 900},
				Months: 3,
			})
		case "/api/dashboard/cashflow/":
			gotCashflowQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode(Cashflow{
				Labels:  []string{"Jun 2026", "Jul 2026"},
				Income:  []float64{3000, 3000},
				Expense: []float64{1400, 1479.25},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	f, err := NewFinance(server.URL)
	if err != nil {
		t.Fatalf("NewFinance returned error: %v", err)
	}
	ctx := context.Background()

	summary, err := f.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.PrimaryCurrency != "EUR" || summary.TotalBalance != 1520.75 {
		t.Fatalf("Summary = %#v, want EUR totals", summary)
	}

	accounts, err := f.Accounts(ctx)
	if err != nil {
		t.Fatalf("Accounts returned error: %v", err)
	}
	if len(accounts) != 2 || accounts[0].Name != "Checking" {
		t.Fatalf("Accounts = %#v, want two accounts in server order", accounts)
	}

	spending, err := f.Spending(ctx, 3)
	if err != nil {
		t.Fatalf("Spending returned error: %v", err)
	}
	if gotSpendingQuery.Get("months") != "3" {
		t.Fatalf("spending months = %q, want 3", gotSpendingQuery.Get("months"))
	}
	if len(spending.Labels) != 2 || spending.Values[1] != 900 {
		t.Fatalf("Spending = %#v, want two categories", spending)
	}

	cashflow, err := f.Cashflow(ctx, 6)
	if err != nil {
		t.Fatalf("Cashflow returned error: %v", err)
	}
	if gotCashflowQuery.Get("months") != "6" {
		t.Fatalf("cashflow months = %q, want 6", gotCashflowQuery.Get("months"))
	}
	if len(cashflow.Labels) != 2 || cashflow.Expense[1] != 1479.25 {
		t.Fatalf("Cashflow = %#v, want two months", cashflow)
	}
}

func TestFinance_TransactionsQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions/export/" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Transaction{
			{Date: "2026-08-01", Account: "Checking", Category: "Groceries", Amount: -42.5, Currency: "EUR", Description: "market"},
		})
	}))
	t.Cleanup(server.Close)

	f, err := NewFinance(server.URL)
	if err != nil {
		t.Fatalf("NewFinance returned error: %v", err)
	}

	txns, err := f.Transactions(context.Background(), TransactionQuery{
		Account:   "Checking",
		Category:  "Groceries",
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
		Search:    "market",
	})
	if err != nil {
		t.Fatalf("Transactions returned error: %v", err)
	}
	if gotQuery.Get("format") != "json" ||
		gotQuery.Get("account") != "Checking" ||
		gotQuery.Get("category") != "Groceries" ||
		gotQuery.Get("start_date") != "2026-08-01" ||
		gotQuery.Get("end_date") != "2026-08-31" ||
		gotQuery.Get("search") != "market" {
		t.Fatalf("query = %v, want filters encoded", gotQuery)
	}
	if len(txns) != 1 || txns[0].Description != "market" {
		t.Fatalf("Transactions = %#v, want one decoded row", txns)
	}
}
