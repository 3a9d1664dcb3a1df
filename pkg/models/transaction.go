package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformedAmount is returned when an amount is not in the Brazilian
// "1.234,56" shape.
var ErrMalformedAmount = errors.New("malformed amount")

var (
	brlAmountRegex = regexp.MustCompile(`^-?\d+(?:\.\d{3})*,\d{2}$`)
	dayMonthRegex  = regexp.MustCompile(`^\d{2}/\d{2}$`)
)

// Transaction is one accepted credit card statement line.
type Transaction struct {
	date        string
	merchant    string
	installment string
	rawAmount   string
	amount      decimal.Decimal
}

func (t *Transaction) Date() string            { return t.date }
func (t *Transaction) Merchant() string        { return t.merchant }
func (t *Transaction) Installment() string     { return t.installment }
func (t *Transaction) RawAmount() string       { return t.rawAmount }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }

// Builder assembles a Transaction, keeping the first error it sees.
type Builder struct {
	tx  Transaction
	err error
}

func NewTransaction(merchant string) *Builder {
	return &Builder{tx: Transaction{merchant: merchant}}
}

// SetDate expects the statement's DD/MM notation.
func (b *Builder) SetDate(date string) *Builder {
	if b.err != nil {
		return b
	}
	if !dayMonthRegex.MatchString(date) {
		b.err = fmt.Errorf("invalid date %q", date)
		return b
	}
	b.tx.date = date
	return b
}

func (b *Builder) SetInstallment(installment string) *Builder {
	b.tx.installment = installment
	return b
}

// SetValueFromFatura parses a locale formatted amount such as "-1.234,56".
func (b *Builder) SetValueFromFatura(raw string) *Builder {
	if b.err != nil {
		return b
	}
	amount, err := ParseBRL(raw)
	if err != nil {
		b.err = err
		return b
	}
	b.tx.rawAmount = strings.TrimSpace(raw)
	b.tx.amount = amount
	return b
}

func (b *Builder) Build() (*Transaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.tx.date == "" {
		return nil, fmt.Errorf("transaction %q has no date", b.tx.merchant)
	}
	if b.tx.rawAmount == "" {
		return nil, fmt.Errorf("transaction %q has no amount", b.tx.merchant)
	}
	tx := b.tx
	return &tx, nil
}

// ParseBRL converts "1.234,56" style strings into a decimal. Thousands
// separators are optional, the two decimal places are not.
func ParseBRL(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if !brlAmountRegex.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, raw)
	}
	s = strings.ReplaceAll(s, ".", "")  // Remove thousand separators
	s = strings.ReplaceAll(s, ",", ".") // Convert decimal separator
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrMalformedAmount, raw, err)
	}
	return value, nil
}
