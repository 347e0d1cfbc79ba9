// gazetteer/gazetteer.go
package gazetteer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/flyprivate/dealfeed/models"
	"github.com/flyprivate/dealfeed/normalize"
)

// ErrMissingReferenceData aborts the run: without the airport reference table
// nothing can be resolved.
var ErrMissingReferenceData = errors.New("airport reference data not found")

// Index holds the immutable lookup tables built from the reference CSV.
// Built once at startup, read-only afterwards, safe to share.
type Index struct {
	byCity map[string]*models.Airport // keyed by normalized city name
	byIATA map[string]*models.Airport
	byICAO map[string]*models.Airport

	// Normalized city keys sorted shortest-first then lexicographic. The
	// permissive matching tiers iterate this slice so that, when several
	// keys match, the winner is deterministic across runs.
	keys []string
}

// Load reads the reference table at path and builds the lookup index.
// Rows missing latitude or longitude are dropped. At most one airport is
// retained per normalized city name, first seen wins; its IATA and ICAO
// codes (when present) point at the same entry.
func Load(path string, n *normalize.Normalizer) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingReferenceData, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open airport reference CSV %s: %w", path, err)
	}
	defer f.Close()

	idx := &Index{
		byCity: make(map[string]*models.Airport),
		byIATA: make(map[string]*models.Airport),
		byICAO: make(map[string]*models.Airport),
	}

	csvReader := csv.NewReader(f)
	csvReader.FieldsPerRecord = -1
	dec, err := csvutil.NewDecoder(csvReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for airport reference: %w", err)
	}

	skipped := 0
	for {
		var row models.AirportRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			skipped++
			continue
		}

		lat, latErr := strconv.ParseFloat(strings.TrimSpace(row.Latitude), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(row.Longitude), 64)
		if latErr != nil || lonErr != nil {
			skipped++
			continue
		}

		city := n.Clean(strings.TrimSpace(row.RegionName))
		if city == "" {
			skipped++
			continue
		}

		key := n.Key(city)
		if _, exists := idx.byCity[key]; exists {
			continue
		}

		a := &models.Airport{
			City:           city,
			NormalizedCity: key,
			IATA:           strings.TrimSpace(row.IATA),
			ICAO:           strings.TrimSpace(row.ICAO),
			Coords:         models.Coordinates{Lat: lat, Lon: lon},
		}
		idx.byCity[key] = a
		if a.IATA != "" {
			idx.byIATA[a.IATA] = a
		}
		if a.ICAO != "" {
			idx.byICAO[a.ICAO] = a
		}
	}

	idx.keys = make([]string, 0, len(idx.byCity))
	for k := range idx.byCity {
		idx.keys = append(idx.keys, k)
	}
	sort.Slice(idx.keys, func(i, j int) bool {
		if len(idx.keys[i]) != len(idx.keys[j]) {
			return len(idx.keys[i]) < len(idx.keys[j])
		}
		return idx.keys[i] < idx.keys[j]
	})

	log.Printf("Gazetteer: loaded %d cities and %d IATA codes from %s (%d rows skipped)\n",
		len(idx.byCity), len(idx.byIATA), path, skipped)
	return idx, nil
}

// Cities returns the number of distinct normalized city entries.
func (idx *Index) Cities() int { return len(idx.byCity) }

// IATACodes returns the number of indexed IATA codes.
func (idx *Index) IATACodes() int { return len(idx.byIATA) }

// CityCoords looks up coordinates by normalized city key.
func (idx *Index) CityCoords(key string) (models.Coordinates, bool) {
	if a, ok := idx.byCity[key]; ok {
		return a.Coords, true
	}
	return models.Coordinates{}, false
}

// CodeCoords looks up a bracketed airport code, IATA first then ICAO.
func (idx *Index) CodeCoords(code string) (models.Coordinates, bool) {
	if a, ok := idx.byIATA[code]; ok {
		return a.Coords, true
	}
	if a, ok := idx.byICAO[code]; ok {
		return a.Coords, true
	}
	return models.Coordinates{}, false
}

// Keys returns the normalized city keys in the deterministic iteration order
// used by the permissive matching tiers.
func (idx *Index) Keys() []string { return idx.keys }
