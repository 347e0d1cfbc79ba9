// sources/mirai.go
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

// Mirai parses captures where the route uses an em-dash separator
// ("Paris — Geneva"), the price amount is the third word of a sentence, and
// maxpax reads like "Up to 6".
type Mirai struct {
	norm *normalize.Normalizer
}

func (a *Mirai) Tag() string { return "mirai" }

func (a *Mirai) Parse(r io.Reader) ([]models.Draft, error) {
	rows, err := readRows[models.MiraiRow](r)
	if err != nil {
		return nil, fmt.Errorf("failed to read mirai capture: %w", err)
	}

	var drafts []models.Draft
	for i, row := range rows {
		d, err := a.parseRow(row)
		if err != nil {
			log.Printf("WARN mirai: skipping row %d: %v\n", i+1, err)
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func (a *Mirai) parseRow(row models.MiraiRow) (models.Draft, error) {
	parts := strings.Split(row.Route, " — ")
	if len(parts) < 2 {
		return models.Draft{}, fmt.Errorf("route %q has no em-dash separator", row.Route)
	}

	// maxpax arrives as "Up to 6"; keep the trailing count.
	paxFields := strings.Fields(row.MaxPax)
	maxPax := ""
	if len(paxFields) > 0 {
		maxPax = paxFields[len(paxFields)-1]
	}

	return models.Draft{
		Origin:      a.norm.Clean(strings.TrimSpace(parts[0])),
		Destination: a.norm.Clean(strings.TrimSpace(parts[1])),
		Aircraft:    "Cessna Citation CJ2",
		Amenities: []string{
			"Ground Transportation",
			"Catering",
			"Max Passengers: " + maxPax,
		},
		BasePrice: a.parsePrice(row.Price),
		Date:      row.Date,
		Thumbnail: row.Thumbnail,
	}, nil
}

// parsePrice takes the third word of the price sentence ("Entire jet 4800
// EUR") and keeps its numeric characters.
func (a *Mirai) parsePrice(s string) float64 {
	words := strings.Fields(s)
	if len(words) >= 3 {
		if v, err := parseAmount(keepDigits(words[2])); err == nil {
			return v
		}
	}
	log.Printf("WARN mirai: could not parse price %q, using placeholder\n", s)
	return derive.PlaceholderPrice
}
