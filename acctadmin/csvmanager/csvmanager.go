package csvmanager

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one data line of tabular input. Field names are matched without
// regard to case or surrounding whitespace.
type Row struct {
	Line   int
	fields map[string]string
}

// NewRow builds a row from name/value pairs.
func NewRow(line int, values map[string]string) Row {
	fields := make(map[string]string, len(values))
	for k, v := range values {
		fields[normalizeHeader(k)] = strings.TrimSpace(v)
	}
	return Row{Line: line, fields: fields}
}

// Get returns the value of the named field, or "" when absent.
func (r Row) Get(name string) string {
	return r.fields[normalizeHeader(name)]
}

// RowReader produces the ordered rows of a tabular input file.
type RowReader interface {
	ReadRows(ctx context.Context, path string) ([]Row, error)
}

// CSVRowReader reads comma-separated files with a header line.
type CSVRowReader struct {
	Comma rune
}

func (c CSVRowReader) ReadRows(ctx context.Context, path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return c.Read(ctx, f)
}

// Read parses rows from r. Line numbers count the header as line 1.
func (c CSVRowReader) Read(ctx context.Context, r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	if c.Comma != 0 {
		cr.Comma = c.Comma
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv: missing header")
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}

		line, _ := cr.FieldPos(0)
		values := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				values[name] = record[i]
			}
		}
		rows = append(rows, NewRow(line, values))
	}

	return rows, nil
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
