package movement

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Kind tells whether a movement adds to or subtracts from the balance
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

var (
	ErrInvalidKind       = errors.New("kind must be 'income' or 'expense'")
	ErrNonPositiveAmount = errors.New("amount must be greater than 0")
	ErrEmptyCategory     = errors.New("category must not be empty")
	ErrInvalidText       = errors.New("text must be valid UTF-8 without carriage returns")
	ErrDateOutOfRange    = errors.New("date year must be between 0 and 9999")
	ErrMissingDate       = errors.New("date must be set")
)

// ValidationError reports which field rejected a movement at construction
type ValidationError struct {
	Field  string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid movement %s: %v", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// Valid reports whether k is one of the recognized kinds
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (k Kind) String() string { return string(k) }

// ParseKind converts text such as "Income" or " expense " into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", &ValidationError{Field: "kind", Reason: fmt.Errorf("%w, got %q", ErrInvalidKind, s)}
	}
	return k, nil
}

// Movement is a single recorded income or expense. Build it with New; the
// zero Movement is invalid and rejected by Validate.
type Movement struct {
	kind        Kind
	amount      decimal.Decimal
	category    string
	description string
	date        time.Time
}

// New validates its arguments and builds a Movement. A zero date is replaced
// by the current time.
func New(kind Kind, amount decimal.Decimal, category, description string, date time.Time) (Movement, error) {
	if date.IsZero() {
		date = time.Now()
	}
	// RFC 3339 offsets carry whole minutes only
	if _, offset := date.Zone(); offset%60 != 0 {
		date = date.UTC()
	}

	m := Movement{
		kind:        kind,
		amount:      amount,
		category:    strings.TrimSpace(category),
		description: description,
		date:        date.Round(0),
	}
	if err := m.Validate(); err != nil {
		return Movement{}, err
	}
	return m, nil
}

// Validate reports the first field that breaks the movement invariants
func (m Movement) Validate() error {
	if !m.kind.Valid() {
		return &ValidationError{Field: "kind", Reason: fmt.Errorf("%w, got %q", ErrInvalidKind, string(m.kind))}
	}
	if !m.amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: fmt.Errorf("%w, got %s", ErrNonPositiveAmount, m.amount)}
	}
	if m.category == "" {
		return &ValidationError{Field: "category", Reason: ErrEmptyCategory}
	}
	if !validText(m.category) {
		return &ValidationError{Field: "category", Reason: ErrInvalidText}
	}
	if !validText(m.description) {
		return &ValidationError{Field: "description", Reason: ErrInvalidText}
	}
	if m.date.IsZero() {
		return &ValidationError{Field: "date", Reason: ErrMissingDate}
	}
	if y := m.date.Year(); y < 0 || y > 9999 {
		return &ValidationError{Field: "date", Reason: fmt.Errorf("%w, got %d", ErrDateOutOfRange, y)}
	}
	return nil
}

// validText rejects what the CSV or JSON codecs would alter on a round trip
func validText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, '\r')
}

func (m Movement) Kind() Kind              { return m.kind }
func (m Movement) Amount() decimal.Decimal { return m.amount }
func (m Movement) Category() string        { return m.category }
func (m Movement) Description() string     { return m.description }
func (m Movement) Date() time.Time         { return m.date }

// Signed returns the amount with the sign it contributes to the balance
func (m Movement) Signed() decimal.Decimal {
	if m.kind == Expense {
		return m.amount.Neg()
	}
	return m.amount
}

// Equal compares amounts by value and dates by instant
func (m Movement) Equal(o Movement) bool {
	return m.kind == o.kind &&
		m.amount.Equal(o.amount) &&
		m.category == o.category &&
		m.description == o.description &&
		m.date.Equal(o.date)
}

func (m Movement) String() string {
	return fmt.Sprintf("%s %s %s %q %s", m.date.Format(time.DateOnly), m.kind, m.amount, m.category, m.description)
}
