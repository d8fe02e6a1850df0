// Package export turns the rows of a filtered list into downloadable
// artifacts (CSV and PDF statements) and saves them to disk.
package export

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmpty is returned when there is nothing to export. No file is produced.
var ErrEmpty = errors.New("nothing to export")

// Field is a single key/value cell of an exported row.
type Field struct {
	Key   string
	Value string
}

// Row is an ordered list of fields. The order of the first row's keys
// defines the column order of the document.
type Row []Field

// Get returns the value stored under key, or "" when the row lacks it.
func (r Row) Get(key string) string {
	for _, f := range r {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

func (r Row) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// RowMapper converts a list item into an exported row.
type RowMapper[T any] func(T) Row

// Rows maps items through fn.
func Rows[T any](items []T, fn RowMapper[T]) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, fn(item))
	}
	return rows
}

// CSV renders rows as delimited text. The header line holds the keys of
// the first row; every value line wraps each value in double quotes with
// inner quotes doubled. N rows always give N+1 lines.
func CSV(rows []Row) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	keys := rows[0].Keys()
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(keys, ","))

	for _, row := range rows {
		values := make([]string, len(keys))
		for i, k := range keys {
			values[i] = Quote(row.Get(k))
		}
		lines = append(lines, strings.Join(values, ","))
	}

	return []byte(strings.Join(lines, "\n")), nil
}

// lineBreaks flattens values so every record stays on one line.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Quote wraps s in double quotes, doubling any quote inside it. Line
// breaks become spaces.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(lineBreaks.Replace(s), `"`, `""`) + `"`
}

// Render produces the document for the given format.
func Render(format, title string, rows []Row) ([]byte, error) {
	switch format {
	case FormatCSV:
		return CSV(rows)
	case FormatPDF:
		return PDF(title, rows)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)
