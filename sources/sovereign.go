// sources/sovereign.go
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

// Sovereign parses captures where the whole listing is flattened into one
// tab-delimited flightinfo field. Every flight departs London; the
// destination is the third tab field when present, else the second; prices
// are GBP and converted to EUR.
type Sovereign struct {
	norm *normalize.Normalizer
}

const gbpToEur = 1.15

func (a *Sovereign) Tag() string { return "sovereign" }

func (a *Sovereign) Parse(r io.Reader) ([]models.Draft, error) {
	rows, err := readRows[models.SovereignRow](r)
	if err != nil {
		return nil, fmt.Errorf("failed to read sovereign capture: %w", err)
	}

	var drafts []models.Draft
	for i, row := range rows {
		d, err := a.parseRow(row)
		if err != nil {
			log.Printf("WARN sovereign: skipping row %d: %v\n", i+1, err)
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func (a *Sovereign) parseRow(row models.SovereignRow) (models.Draft, error) {
	var parts []string
	for _, p := range strings.Split(row.FlightInfo, "\t") {
		if p = a.norm.Clean(strings.TrimSpace(p)); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return models.Draft{}, fmt.Errorf("flightinfo %q has too few fields", row.FlightInfo)
	}

	destination := parts[1]
	if len(parts) > 2 {
		destination = parts[2]
	}
	aircraft := "Citation Jet"
	if len(parts) > 3 {
		aircraft = parts[len(parts)-1]
	}

	return models.Draft{
		Origin:      "London",
		Destination: destination,
		Aircraft:    aircraft,
		Amenities: []string{
			"Ground Transportation",
			"Catering",
			"Max Passengers: 6",
		},
		BasePrice: a.parsePrice(parts),
		Date:      row.Date,
		Thumbnail: row.Thumbnail,
	}, nil
}

// parsePrice finds the GBP field among the tab parts and converts to EUR.
func (a *Sovereign) parsePrice(parts []string) float64 {
	pricePart := "£4000"
	for _, p := range parts {
		if strings.Contains(p, "£") {
			pricePart = p
			break
		}
	}
	v, err := parseAmount(strings.ReplaceAll(pricePart, "£", ""))
	if err != nil {
		log.Printf("WARN sovereign: could not parse price %q, using placeholder\n", pricePart)
		return derive.PlaceholderPrice
	}
	return v * gbpToEur
}
