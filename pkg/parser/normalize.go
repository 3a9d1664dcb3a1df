package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yurifrl/gastos/pkg/models"
)

var installmentSuffixRegex = regexp.MustCompile(`\s+\d{2}/\d{2}$`)

// CleanMerchant joins a wrapped merchant description back into one line.
func CleanMerchant(raw string) string {
	s := normalizeSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// MerchantKey is the cleaned merchant without a trailing " DD/MM" marker. It
// identifies a purchase across statements and is also the name written out.
func MerchantKey(raw string) string {
	return installmentSuffixRegex.ReplaceAllString(CleanMerchant(raw), "")
}

// Key returns the MerchantKey of the candidate.
func (c Candidate) Key() string {
	return MerchantKey(c.Merchant)
}

// Normalize turns an accepted candidate into a Transaction. A malformed
// amount is reported as models.ErrMalformedAmount.
func Normalize(c Candidate) (*models.Transaction, error) {
	c = applyCreditSign(c)

	tx, err := models.NewTransaction(c.Key()).
		SetDate(c.Date).
		SetInstallment(c.Installment).
		SetValueFromFatura(c.Amount).
		Build()
	if err != nil {
		return nil, fmt.Errorf("normalizing %s %q: %w", c.Date, CleanMerchant(c.Merchant), err)
	}
	return tx, nil
}
