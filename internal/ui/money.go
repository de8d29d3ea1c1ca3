package ui

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MoneyFormatter renders amounts in a single ISO 4217 currency with the
// symbol and digit grouping English-locale readers expect ("$1,234.50").
// The dashboard holds one formatter and rebuilds it only when the server
// reports a different primary currency code.
type MoneyFormatter struct {
	code    string
	unit    currency.Unit
	printer *message.Printer
}

// NewMoneyFormatter builds a formatter for the given ISO code. Unknown or
// empty codes fall back to USD instead of failing the render.
func NewMoneyFormatter(code string) MoneyFormatter {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	return MoneyFormatter{
		code:    unit.String(),
		unit:    unit,
		printer: message.NewPrinter(language.AmericanEnglish),
	}
}

// Code returns the ISO code this formatter renders, after any fallback.
func (f MoneyFormatter) Code() string { return f.code }

// Format renders an amount with currency symbol and grouping.
func (f MoneyFormatter) Format(value float64) string {
	if f.printer == nil {
		f = NewMoneyFormatter("")
	}
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(value)))
}
