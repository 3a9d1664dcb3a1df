package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/gastos/pkg/csv"
	"github.com/yurifrl/gastos/pkg/models"
)

// Filters restrict which transactions are exported. Zero values disable a
// filter.
type Filters struct {
	MinAmount float64
	MaxAmount float64
	Payee     string
}

func (f Filters) Func() csv.FilterFunc[*models.Transaction] {
	if f == (Filters{}) {
		return nil
	}
	return func(t *models.Transaction) bool {
		if f.MinAmount != 0 && t.Amount().LessThan(decimal.NewFromFloat(f.MinAmount)) {
			return false
		}
		if f.MaxAmount != 0 && t.Amount().GreaterThan(decimal.NewFromFloat(f.MaxAmount)) {
			return false
		}
		if f.Payee != "" && !strings.Contains(strings.ToLower(t.Merchant()), strings.ToLower(f.Payee)) {
			return false
		}
		return true
	}
}
