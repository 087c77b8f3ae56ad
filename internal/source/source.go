// Package source reads location rows from CSV files.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/woozymasta/poimap/internal/location"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Input column names.
const (
	ColumnName        = "Nama"
	ColumnLatitude    = "Latitude"
	ColumnLongitude   = "Longitude"
	ColumnCategory    = "Tipe"
	ColumnDescription = "Deskripsi"
)

// Row is one data line keyed by header column name.
type Row struct {
	Fields map[string]string
	Index  int // 0-based, header excluded
}

// Get returns a trimmed column value. Missing columns and blank cells are reported as absent.
func (r Row) Get(column string) (string, bool) {
	v, ok := r.Fields[column]
	if !ok {
		return "", false
	}

	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}

	return v, true
}

// GetOr returns the column value or def when it is absent.
func (r Row) GetOr(column, def string) string {
	if v, ok := r.Get(column); ok {
		return v
	}

	return def
}

// Load reads all rows of the CSV file at path.
// On failure rows are nil and the error is a *location.Error.
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &location.Error{
				Type:    location.ErrorTypeNotFound,
				Message: "input file not found",
				Path:    path,
				Err:     err,
			}
		}

		return nil, &location.Error{
			Type:    location.ErrorTypeParse,
			Message: "cannot open input file",
			Path:    path,
			Err:     err,
		}
	}
	defer func() { _ = f.Close() }()

	rows, err := Read(f)
	if err != nil {
		return nil, &location.Error{
			Type:    location.ErrorTypeParse,
			Message: "cannot parse input file",
			Path:    path,
			Err:     err,
		}
	}

	log.Debug().Str("path", path).Int("rows", len(rows)).Msg("Input file loaded")

	return rows, nil
}

// Read parses CSV data with a header line.
// UTF-8 and BOM-marked UTF-16 input is accepted.
func Read(r io.Reader) ([]Row, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty input: header line missing")
		}

		return nil, err
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = normalize(h)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		if len(record) > len(columns) {
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(columns), len(record))
		}

		fields := make(map[string]string, len(record))
		for i, value := range record {
			fields[columns[i]] = normalize(value)
		}

		rows = append(rows, Row{Index: len(rows), Fields: fields})
	}

	return rows, nil
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
