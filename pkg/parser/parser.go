package parser

import (
	"iter"
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// transactionRegex matches one statement line: date, merchant (which may wrap
// onto following lines), optional installment marker and the BRL amount.
var transactionRegex = regexp.MustCompile(`(?ms)^(\d{2}/\d{2})\s+([^,]+?)(?:\s*(\d{2}/\d{2}))?\s+(\d+(?:\.\d{3})*,\d{2})$`)

// Candidate is a raw transaction line recovered from page text.
type Candidate struct {
	Date        string
	Merchant    string
	Installment string
	Amount      string
	// Credit is set once a trailing "-" was moved from Merchant to Amount.
	Credit bool
}

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// Candidates scans text from the start and yields every transaction line in
// order. Text without transaction lines yields nothing.
func (p *Parser) Candidates(text string) iter.Seq[Candidate] {
	text = normalizeSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	return func(yield func(Candidate) bool) {
		rest := text
		for {
			loc := transactionRegex.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}
			c := candidateFromMatch(rest, loc)
			rest = rest[loc[1]:]

			p.logger.Debug("matched line", "date", c.Date, "merchant", c.Merchant, "installment", c.Installment, "amount", c.Amount)
			if !yield(c) {
				return
			}
		}
	}
}

// Collect drains Candidates into a slice.
func (p *Parser) Collect(text string) []Candidate {
	var out []Candidate
	for c := range p.Candidates(text) {
		out = append(out, c)
	}
	return out
}

// normalizeSpace turns Unicode whitespace such as U+00A0 into a plain space,
// keeping line breaks. RE2's \s only knows ASCII whitespace.
func normalizeSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r != '\n' && unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}

func candidateFromMatch(s string, loc []int) Candidate {
	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return s[loc[2*i]:loc[2*i+1]]
	}

	c := Candidate{
		Date:        group(1),
		Merchant:    group(2),
		Installment: group(3),
		Amount:      group(4),
	}
	return applyCreditSign(c)
}

// applyCreditSign handles the statement convention of marking refunds and
// payments with a trailing "-" after the merchant.
func applyCreditSign(c Candidate) Candidate {
	if c.Credit {
		return c
	}
	merchant := CleanMerchant(c.Merchant)
	if !strings.HasSuffix(merchant, "-") {
		return c
	}
	c.Merchant = strings.TrimSpace(strings.TrimSuffix(merchant, "-"))
	c.Amount = "-" + c.Amount
	c.Credit = true
	return c
}
