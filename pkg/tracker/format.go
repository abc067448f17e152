package tracker

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects the on-disk layout of a ledger
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
)

// header is shared by both codecs: JSON keys and CSV columns
var header = []string{"kind", "amount", "category", "description", "date"}

// ParseFormat accepts "json" or "csv" in any case
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, CSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath infers the format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}
