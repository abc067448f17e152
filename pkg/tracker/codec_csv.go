package tracker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/example/expense-tracker/pkg/movement"
)

func encodeCSV(w io.Writer, movements []movement.Movement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, m := range movements {
		if err := cw.Write(fields(m)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func decodeCSV(r io.Reader, name string) ([]movement.Movement, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Path: name, Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	if !slices.Equal(head, header) {
		return nil, &ParseError{Path: name, Err: fmt.Errorf("unexpected header %v, want %v", head, header)}
	}

	var movements []movement.Movement
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: name, Record: row, Err: err}
		}
		m, err := fromFields(rec[0], rec[1], rec[2], rec[3], rec[4])
		if err != nil {
			return nil, &ParseError{Path: name, Record: row, Err: err}
		}
		movements = append(movements, m)
	}
	return movements, nil
}
