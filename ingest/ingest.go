// Package ingest loads tabular input and derives the combined tokens the
// index structures are built over.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"
)

// Record is one CSV row keyed by normalized column name.
type Record map[string]string

// NormalizeField trims and lowercases a column name. Every lookup goes
// through the normalized form; raw header spellings never leave this
// package.
func NormalizeField(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ReadCSV parses the input, normalizes the header once and returns the
// records along with the normalized header order. Header-only or empty
// input yields zero records; emptiness is diagnosed downstream where a
// structure actually needs tokens.
func ReadCSV(r io.Reader) ([]Record, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = NormalizeField(h)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, cell := range row {
			if i < len(header) {
				rec[header[i]] = cell
			}
		}
		records = append(records, rec)
	}
	return records, header, nil
}

// MissingFieldError reports records that lack a column required for token
// derivation.
type MissingFieldError struct {
	Fields  []string
	Records []int // 1-based record numbers
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("ingest: missing field(s) %v in record(s) %v", e.Fields, e.Records)
}

// DeriveTokens combines two columns of every record into one token,
// "<a>_<b>". Every record must carry both columns; otherwise the whole
// derivation fails, since indexes built on partial data would be
// ill-defined.
func DeriveTokens(records []Record, fieldA, fieldB string) ([]string, error) {
	fieldA = NormalizeField(fieldA)
	fieldB = NormalizeField(fieldB)

	var missingFields []string
	var missingRecords []int
	tokens := make([]string, 0, len(records))
	for i, rec := range records {
		a, okA := rec[fieldA]
		b, okB := rec[fieldB]
		if !okA && !slices.Contains(missingFields, fieldA) {
			missingFields = append(missingFields, fieldA)
		}
		if !okB && !slices.Contains(missingFields, fieldB) {
			missingFields = append(missingFields, fieldB)
		}
		if !okA || !okB {
			missingRecords = append(missingRecords, i+1)
			continue
		}
		tokens = append(tokens, a+"_"+b)
	}
	if len(missingFields) > 0 {
		slices.Sort(missingFields)
		return nil, &MissingFieldError{Fields: missingFields, Records: missingRecords}
	}
	return tokens, nil
}

// WriteTokenColumn writes the derived tokens back out as a one-column CSV,
// mirroring the merged column of the source data.
func WriteTokenColumn(w io.Writer, name string, tokens []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{name}); err != nil {
		return err
	}
	for _, t := range tokens {
		if err := cw.Write([]string{t}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
