// gazetteer/resolver_test.go
package gazetteer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flyprivate/dealfeed/normalize"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	return NewResolver(loadTestIndex(t), normalize.New())
}

func TestResolveExactMatch(t *testing.T) {
	r := newTestResolver(t)

	c := r.Resolve("Paris")
	require.NotNil(t, c)
	assert.InDelta(t, 49.0097, c.Lat, 1e-9)
	assert.InDelta(t, 2.5479, c.Lon, 1e-9)
}

func TestResolveCleansBeforeLookup(t *testing.T) {
	r := newTestResolver(t)

	// Mojibake, airport suffix and code are all stripped before matching.
	c := r.Resolve("ZÃ¼rich Airport (ZRH)")
	require.NotNil(t, c)
	assert.InDelta(t, 47.4647, c.Lat, 1e-9)
}

func TestResolveAliasTable(t *testing.T) {
	r := newTestResolver(t)

	// "amsterdam schiphol" is not in the test gazetteer, but the alias chain
	// still runs on known names present in it.
	c := r.Resolve("London Heathrow")
	require.NotNil(t, c)
	assert.InDelta(t, 51.47, c.Lat, 1e-9)

	c = r.Resolve("Nice Cote d'Azur")
	require.NotNil(t, c)
	assert.InDelta(t, 43.6584, c.Lat, 1e-9)
}

func TestResolveHyphenQualifierOnlyAffectsLookup(t *testing.T) {
	r := newTestResolver(t)

	// The hyphen tail is dropped for lookup only, leaving "London".
	c := r.Resolve("London-Luton")
	require.NotNil(t, c)
	assert.InDelta(t, 51.47, c.Lat, 1e-9)
}

func TestResolveSubstringMatch(t *testing.T) {
	r := newTestResolver(t)

	// "Greater London" contains the gazetteer key "london".
	c := r.Resolve("Greater London")
	require.NotNil(t, c)
	assert.InDelta(t, 51.47, c.Lat, 1e-9)
}

func TestResolveFirstWordPrefixMatch(t *testing.T) {
	r := newTestResolver(t)

	// No substring relation, but the first word "lond" prefixes "london".
	c := r.Resolve("Lond Centre Ville")
	require.NotNil(t, c)
	assert.InDelta(t, 51.47, c.Lat, 1e-9)
}

func TestResolveBracketedCode(t *testing.T) {
	r := newTestResolver(t)

	// The name itself matches nothing; the bracketed IATA code does.
	c := r.Resolve("Xyzabc Q (NCE)")
	require.NotNil(t, c)
	assert.InDelta(t, 43.6584, c.Lat, 1e-9)

	// ICAO works too.
	c = r.Resolve("Xyzabc Q (EGLL)")
	require.NotNil(t, c)
	assert.InDelta(t, 51.47, c.Lat, 1e-9)
}

func TestResolveThreeCharPrefixFallback(t *testing.T) {
	r := newTestResolver(t)

	c := r.Resolve("Parwick Upon Nothing")
	require.NotNil(t, c)
	assert.InDelta(t, 49.0097, c.Lat, 1e-9)
}

func TestResolveUnresolvableReturnsNil(t *testing.T) {
	r := newTestResolver(t)

	assert.Nil(t, r.Resolve("Xqzwv"))
	assert.Nil(t, r.Resolve(""))
	assert.Nil(t, r.Resolve("   "))
}

func TestResolveExactNeverFallsThrough(t *testing.T) {
	r := newTestResolver(t)

	// "Nice" matches exactly; the substring tier (where "nice" is contained
	// in nothing else here, but would also self-match) must not be consulted.
	c := r.Resolve("Nice")
	require.NotNil(t, c)
	assert.InDelta(t, 43.6584, c.Lat, 1e-9)
}

func TestResolveIsIdempotent(t *testing.T) {
	r := newTestResolver(t)

	first := r.Resolve("ZÃ¼rich Airport (ZRH)")
	second := r.Resolve("ZÃ¼rich Airport (ZRH)")
	require.NotNil(t, first)
	assert.Equal(t, first, second)

	// Misses are cached too and stay misses.
	assert.Nil(t, r.Resolve("Xqzwv"))
	assert.Nil(t, r.Resolve("Xqzwv"))
}
