package tracker

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/expense-tracker/pkg/movement"
)

// dateLayout keeps sub-second precision so dates survive a round trip
const dateLayout = time.RFC3339Nano

// Save writes every movement to path, replacing the file
func (c *ExpenseController) Save(path string, format Format) error {
	format, err := ParseFormat(string(format))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, format, c.movements); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	c.log.Debug().
		Str("path", path).
		Str("format", string(format)).
		Int("count", len(c.movements)).
		Msg("ledger saved")
	return nil
}

// Load replaces the collection with the movements stored in path. The
// collection is left untouched when the file cannot be read or parsed.
func (c *ExpenseController) Load(path string, format Format) error {
	format, err := ParseFormat(string(format))
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &IOError{Op: "read", Path: path, Err: err}
	}

	movements, err := decode(bytes.NewReader(data), format, path)
	if err != nil {
		return err
	}
	c.movements = movements

	c.log.Debug().
		Str("path", path).
		Str("format", string(format)).
		Int("count", len(movements)).
		Msg("ledger loaded")
	return nil
}

// Encode writes movements to w in the given format
func Encode(w io.Writer, format Format, movements []movement.Movement) error {
	switch format {
	case JSON:
		return encodeJSON(w, movements)
	case CSV:
		return encodeCSV(w, movements)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, string(format))
	}
}

// Decode reads movements from r in the given format
func Decode(r io.Reader, format Format) ([]movement.Movement, error) {
	return decode(r, format, "input")
}

func decode(r io.Reader, format Format, name string) ([]movement.Movement, error) {
	switch format {
	case JSON:
		return decodeJSON(r, name)
	case CSV:
		return decodeCSV(r, name)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, string(format))
	}
}

// fields returns a movement in header order
func fields(m movement.Movement) []string {
	return []string{
		m.Kind().String(),
		m.Amount().String(),
		m.Category(),
		m.Description(),
		m.Date().Format(dateLayout),
	}
}

// fromFields rebuilds a movement from its textual form
func fromFields(kind, amount, category, description, date string) (movement.Movement, error) {
	k, err := movement.ParseKind(kind)
	if err != nil {
		return movement.Movement{}, err
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return movement.Movement{}, fmt.Errorf("amount %q is not numeric: %w", amount, err)
	}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return movement.Movement{}, fmt.Errorf("date %q: %w", date, err)
	}
	return movement.New(k, a, category, description, d)
}
