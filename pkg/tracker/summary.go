package tracker

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/example/expense-tracker/pkg/movement"
)

// CategoryTotal holds the income and expense totals of one category
type CategoryTotal struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net returns income minus expense
func (t CategoryTotal) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

func (t CategoryTotal) add(m movement.Movement) CategoryTotal {
	switch m.Kind() {
	case movement.Income:
		t.Income = t.Income.Add(m.Amount())
	case movement.Expense:
		t.Expense = t.Expense.Add(m.Amount())
	}
	return t
}

// Categories returns the keys of a summary in lexical order
func Categories[V any](summary map[string]V) []string {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
