package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats amounts in a single display currency. Amounts are stored as
// plain numbers; no conversion ever happens.
type Money struct {
	currency *money.Currency
}

// NewMoney returns a formatter for the ISO 4217 code. Unknown codes fall back
// to a plain two-decimal format.
func NewMoney(code string) Money {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = &money.Currency{Code: code, Fraction: 2, Decimal: ".", Thousand: ",", Template: "1"}
	}

	return Money{currency: cur}
}

func (m Money) Code() string {
	return m.currency.Code
}

// Format renders amount with the currency's grouping, precision and symbol.
func (m Money) Format(amount float64) string {
	minor := decimal.NewFromFloat(amount).Shift(int32(m.currency.Fraction)).Round(0).IntPart()

	return m.currency.Formatter().Format(minor)
}

// Percent renders a percentage with one decimal, the way the pie chart labels do.
func Percent(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(1) + "%"
}
