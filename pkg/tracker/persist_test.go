package tracker

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/expense-tracker/pkg/movement"
)

func sampleController(t *testing.T) *ExpenseController {
	t.Helper()
	c := New()
	add := func(kind movement.Kind, amount, category, description string, date time.Time) {
		_, err := c.Add(kind, decimal.RequireFromString(amount), category, description, date)
		require.NoError(t, err)
	}
	add(movement.Income, "2500", "salary", "october pay", time.Date(2024, 10, 1, 8, 0, 0, 0, time.UTC))
	add(movement.Expense, "300.75", "food", "groceries, weekly", time.Date(2024, 10, 2, 18, 30, 15, 123456789, time.UTC))
	add(movement.Expense, "150", "transport", `bus "monthly" pass`, time.Date(2024, 10, 3, 0, 0, 0, 0, time.FixedZone("CEST", 2*3600)))
	add(movement.Expense, "150", "transport", `bus "monthly" pass`, time.Date(2024, 10, 3, 0, 0, 0, 0, time.FixedZone("CEST", 2*3600)))
	add(movement.Income, "0.01", "interest", "", time.Date(2024, 10, 31, 23, 59, 59, 0, time.UTC))
	add(movement.Expense, "19.99", "books", "multi\nline, \"quoted\" ✓", time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
	add(movement.Income, "1", "gift", " padded ", time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC))
	add(movement.Income, "5", "heirloom", "", time.Date(1890, 6, 1, 12, 0, 0, 0, time.FixedZone("LMT", 17*60+30)))
	return c
}

func assertSameMovements(t *testing.T, want, got []movement.Movement) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "movement %d: want %v, got %v", i, want[i], got[i])
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, format := range []Format{JSON, CSV} {
		t.Run(string(format), func(t *testing.T) {
			src := sampleController(t)
			path := filepath.Join(t.TempDir(), "ledger."+string(format))

			require.NoError(t, src.Save(path, format))

			dst := New()
			require.NoError(t, dst.Load(path, format))
			assertSameMovements(t, src.Movements(), dst.Movements())
			assert.True(t, src.Balance().Equal(dst.Balance()))
		})
	}
}

func TestSaveLoad_Empty(t *testing.T) {
	for _, format := range []Format{JSON, CSV} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ledger."+string(format))
			require.NoError(t, New().Save(path, format))

			c := sampleController(t)
			require.NoError(t, c.Load(path, format))
			assert.Equal(t, 0, c.Len())
		})
	}
}

func TestSave_JSONLayout(t *testing.T) {
	c := New()
	_, err := c.Add(movement.Expense, decimal.RequireFromString("12.50"), "food", "lunch", time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, JSON, c.Movements()))

	assert.JSONEq(t, `[{
		"kind": "expense",
		"amount": 12.5,
		"category": "food",
		"description": "lunch",
		"date": "2024-03-15T12:00:00Z"
	}]`, buf.String())
}

func TestSave_CSVLayout(t *testing.T) {
	c := New()
	_, err := c.Add(movement.Income, decimal.NewFromInt(50), "salary", "bonus, q3", time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, CSV, c.Movements()))

	assert.Equal(t, "kind,amount,category,description,date\n"+
		"income,50,salary,\"bonus, q3\",2024-03-15T12:00:00Z\n", buf.String())
}

func TestSave_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "ledger.json")

	err := sampleController(t).Save(path, JSON)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write", ioErr.Op)
	assert.Equal(t, path, ioErr.Path)
}

func TestSave_UnknownFormat(t *testing.T) {
	err := New().Save(filepath.Join(t.TempDir(), "ledger.xml"), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoad_MissingFile(t *testing.T) {
	c := sampleController(t)
	before := c.Movements()

	err := c.Load(filepath.Join(t.TempDir(), "nope.json"), JSON)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assertSameMovements(t, before, c.Movements())
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		content string
		record  int
		errMsg  string
	}{
		{
			name:    "json amount not numeric",
			format:  JSON,
			content: `[{"kind":"income","amount":100,"category":"salary","date":"2024-01-01T00:00:00Z"},{"kind":"expense","amount":"abc","category":"food","date":"2024-01-02T00:00:00Z"}]`,
			record:  2,
		},
		{
			name:    "json missing category",
			format:  JSON,
			content: `[{"kind":"income","amount":100,"date":"2024-01-01T00:00:00Z"}]`,
			record:  1,
			errMsg:  `missing field "category"`,
		},
		{
			name:    "json unknown kind",
			format:  JSON,
			content: `[{"kind":"transfer","amount":100,"category":"bank","date":"2024-01-01T00:00:00Z"}]`,
			record:  1,
			errMsg:  "kind must be 'income' or 'expense'",
		},
		{
			name:    "json non-positive amount",
			format:  JSON,
			content: `[{"kind":"income","amount":0,"category":"bank","date":"2024-01-01T00:00:00Z"}]`,
			record:  1,
			errMsg:  "amount must be greater than 0",
		},
		{
			name:    "json not an array",
			format:  JSON,
			content: `{"kind":"income"}`,
		},
		{
			name:    "json null",
			format:  JSON,
			content: "null",
			errMsg:  "expected a JSON array",
		},
		{
			name:    "json trailing data",
			format:  JSON,
			content: "[] garbage {",
			errMsg:  "unexpected data after the JSON array",
		},
		{
			name:    "json second array",
			format:  JSON,
			content: "[]\n[]",
			errMsg:  "unexpected data after the JSON array",
		},
		{
			name:    "json truncated",
			format:  JSON,
			content: `[{"kind":"income",`,
		},
		{
			name:    "csv amount not numeric",
			format:  CSV,
			content: "kind,amount,category,description,date\nexpense,ten,food,,2024-01-01T00:00:00Z\n",
			record:  1,
			errMsg:  "is not numeric",
		},
		{
			name:    "csv missing column",
			format:  CSV,
			content: "kind,amount,category,description,date\nincome,10,salary,2024-01-01T00:00:00Z\n",
			record:  1,
		},
		{
			name:    "csv bad date",
			format:  CSV,
			content: "kind,amount,category,description,date\nincome,10,salary,,yesterday\n",
			record:  1,
			errMsg:  `date "yesterday"`,
		},
		{
			name:    "csv wrong header",
			format:  CSV,
			content: "type,category,amount,description,date\n",
		},
		{
			name:    "csv empty file",
			format:  CSV,
			content: "",
			errMsg:  "missing header row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ledger."+string(tt.format))
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			c := sampleController(t)
			before := c.Movements()

			err := c.Load(path, tt.format)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, path, perr.Path)
			assert.Equal(t, tt.record, perr.Record)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
			assertSameMovements(t, before, c.Movements())
		})
	}
}

func TestLoad_JSONOptionalDescription(t *testing.T) {
	in := `[{"kind":"Income","amount":"2500","category":"salary","date":"2024-01-01T00:00:00Z"}]`

	got, err := Decode(strings.NewReader(in), JSON)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, movement.Income, got[0].Kind())
	assert.Equal(t, "", got[0].Description())
}

func TestLoad_AcceptsFormatInAnyCase(t *testing.T) {
	src := sampleController(t)
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, src.Save(path, Format("JSON")))

	dst := New()
	require.NoError(t, dst.Load(path, Format(" Json ")))
	assertSameMovements(t, src.Movements(), dst.Movements())
}

func TestLoad_UnknownFormatSkipsRead(t *testing.T) {
	err := New().Load(filepath.Join(t.TempDir(), "missing.xml"), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	var ioErr *IOError
	assert.False(t, errors.As(err, &ioErr))
}

func TestDecode_UnknownFormat(t *testing.T) {
	_, err := Decode(strings.NewReader(""), Format("yaml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/tmp/ledger.JSON")
	require.NoError(t, err)
	assert.Equal(t, JSON, f)

	f, err = FormatFromPath("movements.csv")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)

	_, err = FormatFromPath("movements")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = FormatFromPath("movements.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
