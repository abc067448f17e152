package tracker

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/example/expense-tracker/pkg/movement"
)

// ExpenseController holds an ordered collection of movements and derives
// balances and summaries from it on demand
type ExpenseController struct {
	movements []movement.Movement
	log       zerolog.Logger
}

// Option configures an ExpenseController
type Option func(*ExpenseController)

// WithLogger sets the logger used for register, save and load events
func WithLogger(l zerolog.Logger) Option {
	return func(c *ExpenseController) {
		c.log = l
	}
}

// New returns an empty controller
func New(opts ...Option) *ExpenseController {
	c := &ExpenseController{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register appends a movement to the collection. A movement that fails
// Validate, such as the zero Movement, is refused and nothing is appended.
func (c *ExpenseController) Register(m movement.Movement) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c.movements = append(c.movements, m)
	c.log.Debug().
		Str("kind", m.Kind().String()).
		Str("amount", m.Amount().String()).
		Str("category", m.Category()).
		Int("count", len(c.movements)).
		Msg("movement registered")
	return nil
}

// Add builds a movement and registers it. Nothing is registered when
// validation fails.
func (c *ExpenseController) Add(kind movement.Kind, amount decimal.Decimal, category, description string, date time.Time) (movement.Movement, error) {
	m, err := movement.New(kind, amount, category, description, date)
	if err != nil {
		return movement.Movement{}, err
	}
	if err := c.Register(m); err != nil {
		return movement.Movement{}, err
	}
	return m, nil
}

// Movements returns a copy of the collection in insertion order
func (c *ExpenseController) Movements() []movement.Movement {
	out := make([]movement.Movement, len(c.movements))
	copy(out, c.movements)
	return out
}

// Len returns the number of movements
func (c *ExpenseController) Len() int {
	return len(c.movements)
}

// ByCategory returns all movements matching the given category
func (c *ExpenseController) ByCategory(category string) []movement.Movement {
	var filtered []movement.Movement
	for _, m := range c.movements {
		if m.Category() == category {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// Balance returns total income minus total expense
func (c *ExpenseController) Balance() decimal.Decimal {
	balance := decimal.Zero
	for _, m := range c.movements {
		balance = balance.Add(m.Signed())
	}
	return balance
}

// Totals returns the overall income and expense totals
func (c *ExpenseController) Totals() CategoryTotal {
	var total CategoryTotal
	for _, m := range c.movements {
		total = total.add(m)
	}
	return total
}

// SummaryByCategory groups movements by category, keeping income and expense
// totals apart
func (c *ExpenseController) SummaryByCategory() map[string]CategoryTotal {
	summary := make(map[string]CategoryTotal)
	for _, m := range c.movements {
		summary[m.Category()] = summary[m.Category()].add(m)
	}
	return summary
}

// ExpenseSummary returns the expense total of every category that has at
// least one expense
func (c *ExpenseController) ExpenseSummary() map[string]decimal.Decimal {
	summary := make(map[string]decimal.Decimal)
	for _, m := range c.movements {
		if m.Kind() != movement.Expense {
			continue
		}
		summary[m.Category()] = summary[m.Category()].Add(m.Amount())
	}
	return summary
}
