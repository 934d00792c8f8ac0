package csvparse

import (
	"io"
	"strings"
)

// Parse splits CSV content into rows of fields in source order.
//
// Quoted fields may contain commas, newlines and doubled quotes ("" decodes to ").
// A carriage return outside quotes is dropped, so CRLF input behaves like LF.
// Malformed quoting never fails: an unterminated quote swallows the rest of the input
// into the current field.
func Parse(content string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)
	n := len(content)
	for i := 0; i < n; i++ {
		ch := content[i]
		if inQuotes {
			if ch != '"' {
				field.WriteByte(ch)
				continue
			}
			if i+1 < n && content[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = false
			continue
		}
		switch ch {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, field.String())
			field.Reset()
		case '\n':
			row = append(row, field.String())
			rows = append(rows, row)
			row = nil
			field.Reset()
		case '\r':
		default:
			field.WriteByte(ch)
		}
	}
	// trailing row without a final newline
	if field.Len() > 0 || len(row) > 0 {
		row = append(row, field.String())
		rows = append(rows, row)
	}
	return rows
}

// ReadAll reads r fully and parses it.
func ReadAll(r io.Reader) ([][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(b)), nil
}
