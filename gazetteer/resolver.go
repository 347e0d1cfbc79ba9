// gazetteer/resolver.go
package gazetteer

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	gocache "github.com/patrickmn/go-cache"

	"github.com/flyprivate/dealfeed/models"
	"github.com/flyprivate/dealfeed/normalize"
)

// airportAliases maps well-known multi-word airport names onto their city.
// Matched by case-insensitive substring containment against the cleaned
// input, in order. Applied before any gazetteer lookup.
var airportAliases = []struct{ name, city string }{
	{"amsterdam schiphol", "amsterdam"},
	{"paris le bourget", "paris"},
	{"paris orly", "paris"},
	{"paris cdg", "paris"},
	{"london heathrow", "london"},
	{"london gatwick", "london"},
	{"london luton", "london"},
	{"london stansted", "london"},
	{"london city", "london"},
	{"zurich kloten", "zurich"},
	{"geneva cointrin", "geneva"},
	{"chambery aix", "chambery"},
	{"nice cote", "nice"},
	{"frankfurt main", "frankfurt"},
	{"frankfurt hahn", "frankfurt"},
	{"toulon-hyeres", "toulon"},
	{"toulon hyeres", "toulon"},
	{"ciampino g b pastine", "rome"},
	{"ciampinoa g b pastine", "rome"},
	{"ciampino", "rome"},
	{"vaclav havel", "prague"},
	{"adolfo lopez mateos", "mexico city"},
	{"faa'a", "papeete"},
	{"abeid amani karume", "zanzibar"},
	{"edinburgh airport", "edinburgh"},
	{"innsbruck airport", "innsbruck"},
	{"speyer airport", "speyer"},
	{"billund airport", "billund"},
	{"keetmanshoop airport", "keetmanshoop"},
}

var bracketCodeRe = regexp.MustCompile(`\(([A-Z]{3,4})\)`)

// Resolver maps arbitrarily dirty place names onto gazetteer coordinates
// through an ordered fallback chain, most specific tier first. Results are
// memoized by raw input for the lifetime of one run.
type Resolver struct {
	idx   *Index
	norm  *normalize.Normalizer
	cache *gocache.Cache
}

// NewResolver returns a Resolver with a fresh per-run result cache.
func NewResolver(idx *Index, n *normalize.Normalizer) *Resolver {
	return &Resolver{
		idx:   idx,
		norm:  n,
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Resolve returns the coordinates for a raw place name, or nil when no tier
// matches. It never fails: malformed input yields a logged diagnostic and nil.
//
// Tiers, first hit wins. The ordering runs from most to least specific and
// must not be rearranged: reordering changes which of several plausible
// matches wins.
//
//	1. clean, trim hyphen qualifier, apply the alias table
//	2. exact normalized-city match
//	3. mutual substring match against city keys
//	4. first-word prefix match
//	5. bracketed IATA/ICAO code from the original input
//	6. three-character prefix match
func (r *Resolver) Resolve(raw string) *models.Coordinates {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if v, ok := r.cache.Get(raw); ok {
		return v.(*models.Coordinates)
	}
	c := r.resolve(raw)
	r.cache.Set(raw, c, gocache.NoExpiration)
	return c
}

func (r *Resolver) resolve(raw string) *models.Coordinates {
	// Tier 1: clean up and alias.
	cleaned := normalize.TrimHyphenQualifier(r.norm.Clean(raw))
	key := normalize.Collapse(strings.ToLower(cleaned))
	for _, a := range airportAliases {
		if strings.Contains(key, a.name) {
			key = a.city
			break
		}
	}

	if key == "" {
		log.Printf("WARN Resolver: nothing left of %q after cleanup, cannot resolve\n", raw)
		return nil
	}

	// Tier 2: exact match.
	if c, ok := r.idx.CityCoords(key); ok {
		return &models.Coordinates{Lat: c.Lat, Lon: c.Lon}
	}

	// Tier 3: mutual substring match. Keys iterate shortest-first so the
	// winner among several containing keys is stable across runs.
	for _, k := range r.idx.Keys() {
		if strings.Contains(k, key) || strings.Contains(key, k) {
			c, _ := r.idx.CityCoords(k)
			return &models.Coordinates{Lat: c.Lat, Lon: c.Lon}
		}
	}

	// Tier 4: first word of the input as a key prefix.
	if fields := strings.Fields(key); len(fields) > 0 {
		firstWord := fields[0]
		for _, k := range r.idx.Keys() {
			if strings.HasPrefix(k, firstWord) {
				c, _ := r.idx.CityCoords(k)
				return &models.Coordinates{Lat: c.Lat, Lon: c.Lon}
			}
		}
	}

	// Tier 5: bracketed airport code from the original, uncleaned input.
	if m := bracketCodeRe.FindStringSubmatch(raw); m != nil {
		if c, ok := r.idx.CodeCoords(m[1]); ok {
			return &models.Coordinates{Lat: c.Lat, Lon: c.Lon}
		}
	}

	// Tier 6: last resort, first three characters.
	if len(key) >= 3 {
		prefix := key[:3]
		for _, k := range r.idx.Keys() {
			if strings.HasPrefix(k, prefix) {
				c, _ := r.idx.CityCoords(k)
				return &models.Coordinates{Lat: c.Lat, Lon: c.Lon}
			}
		}
	}

	log.Printf("WARN Resolver: no coordinates found for %q (normalized: %q)%s\n",
		raw, key, r.nearestKeyHint(key))
	return nil
}

// nearestKeyHint names the gazetteer key closest to the failed lookup by edit
// distance. Diagnostic only; it never influences resolution.
func (r *Resolver) nearestKeyHint(key string) string {
	best, bestDist := "", -1
	for _, k := range r.idx.Keys() {
		d := levenshtein.ComputeDistance(key, k)
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	if best == "" {
		return ""
	}
	return ", closest gazetteer key: " + strconv.Quote(best)
}
