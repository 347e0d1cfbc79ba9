// sources/adapter.go
package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/flyprivate/dealfeed/models"
	"github.com/flyprivate/dealfeed/normalize"
)

// Adapter parses one operator's captured listing table into draft records.
// Parse fails only when the input is unreadable as tabular data; individual
// bad rows are logged and skipped, never fatal to the batch.
type Adapter interface {
	Tag() string
	Parse(r io.Reader) ([]models.Draft, error)
}

// ForTag returns the adapter variant for an operator tag. Adding an operator
// means adding a variant here, nothing else changes.
func ForTag(tag string, n *normalize.Normalizer) (Adapter, error) {
	switch strings.ToLower(tag) {
	case "luxaviation":
		return &LuxAviation{norm: n}, nil
	case "catchajet":
		return &CatchAJet{norm: n}, nil
	case "mirai":
		return &Mirai{norm: n}, nil
	case "sovereign":
		return &Sovereign{norm: n}, nil
	default:
		return nil, fmt.Errorf("unknown source tag: %s", tag)
	}
}

// readRows decodes a captured CSV into typed rows. Headers the struct does
// not know are ignored; columns the capture omitted decode to "".
func readRows[T any](r io.Reader) ([]T, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	dec, err := csvutil.NewDecoder(csvReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}

	var rows []T
	for {
		var row T
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to decode CSV row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// keepDigits strips everything but digits and the decimal point.
func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseAmount parses a money amount that may carry thousands separators.
func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", "")), 64)
}

func isYes(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}

func isNo(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "no")
}
