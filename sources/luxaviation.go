// sources/luxaviation.go
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

// LuxAviation parses captures where the route field reads
// "Origin Airport Destination" and the price is EUR-prefixed free text.
type LuxAviation struct {
	norm *normalize.Normalizer
}

func (a *LuxAviation) Tag() string { return "luxaviation" }

func (a *LuxAviation) Parse(r io.Reader) ([]models.Draft, error) {
	rows, err := readRows[models.LuxAviationRow](r)
	if err != nil {
		return nil, fmt.Errorf("failed to read luxaviation capture: %w", err)
	}

	var drafts []models.Draft
	for i, row := range rows {
		d, err := a.parseRow(row)
		if err != nil {
			log.Printf("WARN luxaviation: skipping row %d: %v\n", i+1, err)
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func (a *LuxAviation) parseRow(row models.LuxAviationRow) (models.Draft, error) {
	parts := strings.Split(row.Route, " Airport ")
	if len(parts) < 2 {
		return models.Draft{}, fmt.Errorf("route %q has no ' Airport ' separator", row.Route)
	}

	amenities := []string{
		"Ground Transportation",
		"Catering",
		"Max Passengers: " + strings.TrimSpace(row.MaxPax),
	}
	if isYes(row.WiFi) {
		amenities = append(amenities, "WiFi")
	}
	if isYes(row.Pets) {
		amenities = append(amenities, "Pet Friendly")
	} else if isNo(row.Pets) {
		amenities = append(amenities, "No Pets")
	}
	if isYes(row.Beds) {
		amenities = append(amenities, "Beds")
	}

	return models.Draft{
		Origin:      a.norm.Clean(strings.TrimSpace(parts[0])),
		Destination: a.norm.Clean(strings.TrimSpace(parts[1])),
		Aircraft:    row.Aircraft,
		Amenities:   amenities,
		BasePrice:   a.parsePrice(row.Price),
		Date:        row.Date,
		Thumbnail:   row.Thumbnail,
	}, nil
}

// parsePrice handles both "EUR 3,500" and bare numeric text, falling back to
// the placeholder price whenever nothing parseable remains.
func (a *LuxAviation) parsePrice(s string) float64 {
	if strings.Contains(s, "EUR") {
		after := strings.SplitN(s, "EUR", 2)[1]
		if v, err := parseAmount(after); err == nil {
			return v
		}
		log.Printf("WARN luxaviation: could not parse price %q, using placeholder\n", s)
		return derive.PlaceholderPrice
	}
	if digits := keepDigits(s); digits != "" {
		if v, err := parseAmount(digits); err == nil {
			return v
		}
	}
	log.Printf("WARN luxaviation: could not parse price %q, using placeholder\n", s)
	return derive.PlaceholderPrice
}
