// Package report aggregates exported transactions into category and
// subscription totals and renders them.
package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/gastos/pkg/classify"
	"github.com/yurifrl/gastos/pkg/csv"
	"github.com/yurifrl/gastos/pkg/models"
)

// Total is the summed value of one label.
type Total struct {
	Label string
	Value decimal.Decimal
}

type Summary struct {
	Subscriptions     []Total
	SubscriptionTotal decimal.Decimal
	Categories        []Total
}

// Summarize re-parses the exported rows and sums them per subscription and per
// consolidated category. Both lists are sorted by label.
func Summarize(rows []csv.Row) (*Summary, error) {
	subs := map[string]decimal.Decimal{}
	cats := map[string]decimal.Decimal{}
	s := &Summary{}

	for i, row := range rows {
		value, err := models.ParseBRL(row.Valor)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if label, ok := classify.Subscription(row.Estabelecimento); ok {
			subs[label] = subs[label].Add(value)
			s.SubscriptionTotal = s.SubscriptionTotal.Add(value)
		}
		category := classify.Category(row.Estabelecimento)
		cats[category] = cats[category].Add(value)
	}

	s.Subscriptions = sortedTotals(subs)
	s.Categories = sortedTotals(cats)
	return s, nil
}

func sortedTotals(m map[string]decimal.Decimal) []Total {
	out := make([]Total, 0, len(m))
	for label, value := range m {
		out = append(out, Total{Label: label, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// Top returns the n largest categories, largest first.
func (s *Summary) Top(n int) []Total {
	out := make([]Total, len(s.Categories))
	copy(out, s.Categories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value.GreaterThan(out[j].Value)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Category returns the total of one category.
func (s *Summary) Category(label string) (decimal.Decimal, bool) {
	for _, t := range s.Categories {
		if t.Label == label {
			return t.Value, true
		}
	}
	return decimal.Zero, false
}
