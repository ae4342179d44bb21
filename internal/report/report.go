// Package report renders command results, such as template diagnostics and
// locale listings, in the output formats selectable on the command line.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMissingInterface  = errors.New("missing required interface")
)

// Format represents an output format.
type Format string

const (
	Plain    Format = "plain"
	Table    Format = "table"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
	TSV      Format = "tsv"
	CSV      Format = "csv"
	Markdown Format = "markdown"
	MsgPack  Format = "msgpack"
)

var formats = []Format{Plain, Table, JSON, JSONL, YAML, TSV, CSV, Markdown, MsgPack}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Alignment is the horizontal placement of a column's cells.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// Rower provides row data. Required for TSV, CSV, Table and Markdown.
type Rower interface {
	Row() []string
}

// Headed provides column headers. Markdown requires it.
type Headed interface {
	Header() []string
}

// Aligned sets per-column alignment for Table and Markdown. Missing
// columns are left-aligned.
type Aligned interface {
	Alignments() []Alignment
}

// Styled provides a terminal-coloured line for Plain. Without it Plain uses
// fmt.Stringer or %v.
type Styled interface {
	Styled() string
}

// Write formats items and writes to w.
func Write[T any](w io.Writer, f Format, items ...T) error {
	switch f {
	case Plain:
		return writePlain(w, items)
	case Table:
		return writeTable(w, items)
	case JSON:
		return writeJSON(w, items)
	case JSONL:
		return writeJSONL(w, items)
	case YAML:
		return writeYAML(w, items)
	case TSV:
		return writeTSV(w, items)
	case CSV:
		return writeCSV(w, items)
	case Markdown:
		return writeMarkdown(w, items)
	case MsgPack:
		return writeMsgPack(w, items)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal formats items and returns the bytes.
func Marshal[T any](f Format, items ...T) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, items...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rowsOf[T any](f Format, items []T) (header []string, rows [][]string, err error) {
	if _, ok := any(items[0]).(Rower); !ok {
		return nil, nil, fmt.Errorf("%w: format %q requires Rower, not implemented by %T", ErrMissingInterface, f, items[0])
	}
	if h, ok := any(items[0]).(Headed); ok {
		header = h.Header()
	}
	rows = make([][]string, len(items))
	for i, item := range items {
		rows[i] = any(item).(Rower).Row()
	}
	return header, rows, nil
}

func alignmentsOf(item any, n int) []Alignment {
	out := make([]Alignment, n)
	if a, ok := item.(Aligned); ok {
		copy(out, a.Alignments())
	}
	return out
}
