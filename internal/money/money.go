package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Prices are stored and summed as decimals and rendered in pt-BR everywhere,
// so the relay message and the API totals can never disagree on formatting.

var printer = message.NewPrinter(language.BrazilianPortuguese)

func init() {
	// API payloads carry prices as plain JSON numbers, matching the
	// products/orders collections the frontend already consumes.
	decimal.MarshalJSONWithoutQuotes = true
}

// Format renders an amount as Brazilian currency, e.g. "R$ 1.234,56".
func Format(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return printer.Sprintf("R$ %.2f", f)
}

// Subtotal is the line-item amount: unit price times quantity.
func Subtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
