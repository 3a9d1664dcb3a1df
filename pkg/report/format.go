package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatBRL renders a value as Brazilian currency, e.g. "R$1.234,56".
func FormatBRL(value decimal.Decimal) string {
	cents := value.Shift(2).Round(0).IntPart()
	return money.New(cents, money.BRL).Display()
}
