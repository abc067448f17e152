package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/example/expense-tracker/pkg/movement"
)

// jsonMovement is the persisted form of a movement. The amount is a JSON
// number carrying the exact decimal text.
type jsonMovement struct {
	Kind        string      `json:"kind"`
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
}

// jsonRecord uses pointers to tell missing keys from empty values
type jsonRecord struct {
	Kind        *string      `json:"kind"`
	Amount      *json.Number `json:"amount"`
	Category    *string      `json:"category"`
	Description *string      `json:"description"`
	Date        *string      `json:"date"`
}

func encodeJSON(w io.Writer, movements []movement.Movement) error {
	out := make([]jsonMovement, 0, len(movements))
	for _, m := range movements {
		f := fields(m)
		out = append(out, jsonMovement{
			Kind:        f[0],
			Amount:      json.Number(f[1]),
			Category:    f[2],
			Description: f[3],
			Date:        f[4],
		})
	}

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode movements: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func decodeJSON(r io.Reader, name string) ([]movement.Movement, error) {
	dec := json.NewDecoder(r)
	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	if raw == nil {
		return nil, &ParseError{Path: name, Err: errors.New("expected a JSON array, got null")}
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Path: name, Err: errors.New("unexpected data after the JSON array")}
	}

	movements := make([]movement.Movement, 0, len(raw))
	for i, item := range raw {
		var rec jsonRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, &ParseError{Path: name, Record: i + 1, Err: err}
		}
		m, err := rec.movement()
		if err != nil {
			return nil, &ParseError{Path: name, Record: i + 1, Err: err}
		}
		movements = append(movements, m)
	}
	return movements, nil
}

func (r jsonRecord) movement() (movement.Movement, error) {
	switch {
	case r.Kind == nil:
		return movement.Movement{}, missingField("kind")
	case r.Amount == nil:
		return movement.Movement{}, missingField("amount")
	case r.Category == nil:
		return movement.Movement{}, missingField("category")
	case r.Date == nil:
		return movement.Movement{}, missingField("date")
	}

	var description string
	if r.Description != nil {
		description = *r.Description
	}
	return fromFields(*r.Kind, string(*r.Amount), *r.Category, description, *r.Date)
}

func missingField(name string) error {
	return fmt.Errorf("missing field %q", name)
}
