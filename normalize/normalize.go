// normalize/normalize.go
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cityCorrections is applied literally, string for string, before any generic
// accent stripping. The ASCII-garbled variants ("ZÃ¼rich") come from captures
// that were double-encoded upstream; generic decomposition cannot recover
// those, so each known damaged form is listed next to its clean form.
// Order matters for overlapping entries ("Nice-Côte" before "Côte").
var cityCorrections = []struct{ from, to string }{
	{"Zürich", "Zurich"},
	{"ZÃ¼rich", "Zurich"},
	{"Chambéry", "Chambery"},
	{"ChambÃ©ry", "Chambery"},
	{"Málaga", "Malaga"},
	{"MÃ¡laga", "Malaga"},
	{"Düsseldorf", "Dusseldorf"},
	{"DÃ¼sseldorf", "Dusseldorf"},
	{"Liège", "Liege"},
	{"LiÃ¨ge", "Liege"},
	{"Genève", "Geneva"},
	{"GenÃ¨ve", "Geneva"},
	{"Václav", "Vaclav"},
	{"VÃ¡clav", "Vaclav"},
	{"Nice-Côte", "Nice"},
	{"Nice-CÃ´te", "Nice"},
	{"Orléans", "Orleans"},
	{"OrlÃ©ans", "Orleans"},
	{"Hyères", "Hyeres"},
	{"HyÃ¨res", "Hyeres"},
	{"Mérignac", "Bordeaux"},
	{"MÃ©rignac", "Bordeaux"},
	{"Paris-Le Bourget", "Paris"},
	{"Rotterdam The Hague", "Rotterdam"},
	{"Côte", "Cote"},
	{"CÃ´te", "Cote"},
	{"Wevelgem", "Bruxelles"},
}

var (
	parenRe      = regexp.MustCompile(`\([^)]*\)`)
	noiseRe      = regexp.MustCompile(`(?i)international|airport|airfield|aerodrome|terminal`)
	hyphenTailRe = regexp.MustCompile(`-.*$`)
)

// Normalizer cleans and canonicalizes free-text place names. Both operations
// are pure functions of their input; results are memoized for the lifetime of
// one pipeline run, which must never change output, only skip recomputation.
type Normalizer struct {
	cleaned *gocache.Cache
	keys    *gocache.Cache
}

// New returns a Normalizer with fresh memoization caches. Build one per
// pipeline run so nothing leaks across runs.
func New() *Normalizer {
	return &Normalizer{
		cleaned: gocache.New(gocache.NoExpiration, 0),
		keys:    gocache.New(gocache.NoExpiration, 0),
	}
}

// Clean standardizes a place name for display: applies the literal correction
// table, strips parenthesized airport codes and generic noise tokens
// (international, airport, ...), drops remaining diacritics, and collapses
// whitespace. The result keeps its original casing.
func (n *Normalizer) Clean(name string) string {
	if v, ok := n.cleaned.Get(name); ok {
		return v.(string)
	}

	s := name
	for _, c := range cityCorrections {
		s = strings.ReplaceAll(s, c.from, c.to)
	}
	s = parenRe.ReplaceAllString(s, "")
	s = noiseRe.ReplaceAllString(s, "")
	s = StripAccents(s)
	s = Collapse(s)

	n.cleaned.Set(name, s, gocache.NoExpiration)
	return s
}

// Key normalizes a place name for comparison: Clean, then lowercase and
// collapse whitespace. Keys are only ever used for lookups, never stored as
// the display name.
func (n *Normalizer) Key(name string) string {
	if v, ok := n.keys.Get(name); ok {
		return v.(string)
	}

	k := Collapse(strings.ToLower(n.Clean(name)))

	n.keys.Set(name, k, gocache.NoExpiration)
	return k
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents decomposes to NFD and drops combining marks, reducing accented
// letters to their base form.
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// Collapse trims and squeezes runs of whitespace to single spaces.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TrimHyphenQualifier drops everything from the first hyphen on. Used only
// when preparing a name for coordinate lookup ("Toulon-Hyeres" -> "Toulon");
// display names keep their hyphenated form.
func TrimHyphenQualifier(s string) string {
	return strings.TrimSpace(hyphenTailRe.ReplaceAllString(s, ""))
}
