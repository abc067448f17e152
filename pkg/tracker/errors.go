package tracker

import (
	"errors"
	"fmt"
)

var ErrUnknownFormat = errors.New("unknown format")

// ParseError reports persisted data that could not be turned back into
// movements. Record is the 1-based entry that failed, or 0 when the file as
// a whole is malformed.
type ParseError struct {
	Path   string
	Record int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("failed to parse %s: record %d: %v", e.Path, e.Record, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a file that could not be read or written
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
