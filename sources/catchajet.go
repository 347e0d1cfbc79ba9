// sources/catchajet.go
package sources

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/flyprivate/dealfeed/derive"
	"github.com/flyprivate/dealfeed/models"
	"github.com/flyprivate/dealfeed/normalize"
)

// CatchAJet parses captures with separate departure/arrival columns and a
// price sentence of the form "Book the entire jet for €1,234".
type CatchAJet struct {
	norm *normalize.Normalizer
}

func (a *CatchAJet) Tag() string { return "catchajet" }

func (a *CatchAJet) Parse(r io.Reader) ([]models.Draft, error) {
	rows, err := readRows[models.CatchAJetRow](r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catchajet capture: %w", err)
	}

	var drafts []models.Draft
	for i, row := range rows {
		d, err := a.parseRow(row)
		if err != nil {
			log.Printf("WARN catchajet: skipping row %d: %v\n", i+1, err)
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func (a *CatchAJet) parseRow(row models.CatchAJetRow) (models.Draft, error) {
	origin := a.norm.Clean(row.Departure)
	destination := a.norm.Clean(row.Arrival)
	if origin == "" || destination == "" {
		return models.Draft{}, fmt.Errorf("missing departure/arrival in row %+v", row)
	}

	return models.Draft{
		Origin:      origin,
		Destination: destination,
		Aircraft:    "Citation CJ2",
		Amenities: []string{
			"Ground Transportation",
			"Catering",
			"Max Passengers: " + strings.TrimSpace(row.MaxPax),
		},
		BasePrice: a.parsePrice(row.Price),
		Date:      row.Date,
		Thumbnail: row.Thumbnail,
	}, nil
}

// parsePrice strips the booking-sentence prefix and rejects suspiciously low
// amounts, which this operator emits for placeholder listings.
func (a *CatchAJet) parsePrice(s string) float64 {
	text := strings.TrimSpace(strings.ReplaceAll(s, "Book the entire jet for €", ""))
	v, err := parseAmount(text)
	if err != nil {
		log.Printf("WARN catchajet: could not parse price %q, using placeholder\n", s)
		return derive.PlaceholderPrice
	}
	if v < 500 {
		return derive.PlaceholderPrice
	}
	return v
}
