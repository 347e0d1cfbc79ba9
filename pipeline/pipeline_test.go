// pipeline/pipeline_test.go
package pipeline

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flyprivate/dealfeed/derive"
	"github.com/flyprivate/dealfeed/gazetteer"
	"github.com/flyprivate/dealfeed/normalize"
)

const testAirportsCSV = `country_code,region_name,iata,icao,airport,latitude,longitude
FR,Paris,CDG,LFPG,Charles de Gaulle,49.0097,2.5479
FR,Nice,NCE,LFMN,Cote d'Azur,43.6584,7.2159
CH,Genève,GVA,LSGG,Cointrin,46.2381,6.1090
GB,London,LHR,EGLL,Heathrow,51.4700,-0.4543
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestPipeline(t *testing.T, dir string) *Pipeline {
	t.Helper()
	norm := normalize.New()
	idx, err := gazetteer.Load(writeFile(t, dir, "iata-icao.csv", testAirportsCSV), norm)
	require.NoError(t, err)
	return New(idx, norm, derive.NewCalculator(rand.New(rand.NewSource(99))))
}

func TestRunEndToEndLuxAviation(t *testing.T) {
	dir := t.TempDir()
	p := newTestPipeline(t, dir)

	luxCSV := `route,aircraft,maxpax,WiFi,Pets,Beds,price,date
Paris Airport Nice,Citation XLS,8,yes,no,no,"EUR 3,500",2024-12-20
`
	flights, summary, err := p.Run([]Source{
		{Tag: "luxaviation", Path: writeFile(t, dir, "lux.csv", luxCSV)},
	})
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, 1, summary.PerSource["luxaviation"])

	f := flights[0]
	assert.Equal(t, "Paris", f.Origin)
	assert.Equal(t, "Nice", f.Destination)
	assert.Equal(t, "luxaviation", f.OperatedBy)
	assert.Equal(t, 4200, f.FlyPrivatePrice) // ceil(3500 * 1.2)
	assert.Equal(t, "December 20", f.Date)
	assert.Equal(t, "10:00", f.DepartureTime)
	assert.Equal(t, "1h 43m", f.Duration)
	assert.Equal(t, "11:43", f.ArrivalTime)
	assert.Contains(t, f.Amenities, "WiFi")
	assert.Contains(t, f.Amenities, "Max Passengers: 8")
	assert.Equal(t, "/api/placeholder/400/320", f.Thumbnail)

	require.NotNil(t, f.OriginLat)
	assert.InDelta(t, 49.0097, *f.OriginLat, 1e-9)
	require.NotNil(t, f.DestLon)
	assert.InDelta(t, 7.2159, *f.DestLon, 1e-9)

	assert.True(t, f.ID >= 0 && f.ID < 1_000_000_000_000)
}

func TestRunDiscardsUnresolvedRoutes(t *testing.T) {
	dir := t.TempDir()
	p := newTestPipeline(t, dir)

	luxCSV := `route,aircraft,maxpax,WiFi,Pets,Beds,price,date
Xqzwv Airport Qqvvk,Citation,4,no,no,no,EUR 2000,2025-01-05
Paris Airport Nice,Citation,4,no,no,no,EUR 2000,2025-01-06
`
	flights, summary, err := p.Run([]Source{
		{Tag: "luxaviation", Path: writeFile(t, dir, "lux.csv", luxCSV)},
	})
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "Paris", flights[0].Origin)
	assert.Equal(t, 1, summary.Discarded)
	assert.Contains(t, summary.Unresolved, "Xqzwv -> Qqvvk")
}

func TestRunDiscardsUnderpricedFlights(t *testing.T) {
	dir := t.TempDir()
	p := newTestPipeline(t, dir)

	// Base price 50 gives flyPrivate 60, below the 100 floor.
	luxCSV := `route,aircraft,maxpax,WiFi,Pets,Beds,price,date
Paris Airport Nice,Citation,4,no,no,no,50,2025-01-05
London Airport Nice,Citation,4,no,no,no,EUR 2000,2025-01-06
`
	flights, summary, err := p.Run([]Source{
		{Tag: "luxaviation", Path: writeFile(t, dir, "lux.csv", luxCSV)},
	})
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "London", flights[0].Origin)
	assert.Equal(t, 1, summary.Discarded)
}

func TestRunSortsDecemberBeforeJanuary(t *testing.T) {
	dir := t.TempDir()
	p := newTestPipeline(t, dir)

	// January 5 parses to 2025, December 20 to 2024: December sorts first
	// even though the rows arrive in the opposite order.
	luxCSV := `route,aircraft,maxpax,WiFi,Pets,Beds,price,date
Paris Airport Nice,Citation,4,no,no,no,EUR 2000,2025-01-05
London Airport Genève,Citation,4,no,no,no,EUR 2000,2024-12-20
`
	flights, _, err := p.Run([]Source{
		{Tag: "luxaviation", Path: writeFile(t, dir, "lux.csv", luxCSV)},
	})
	require.NoError(t, err)
	require.Len(t, flights, 2)
	assert.Equal(t, "December 20", flights[0].Date)
	assert.Equal(t, "January 05", flights[1].Date)
}

func TestRunSkipsUnreadableSourceAndContinues(t *testing.T) {
	dir := t.TempDir()
	p := newTestPipeline(t, dir)

	miraiCSV := `route,maxpax,price,date
Paris — Genève,Up to 6,Entire jet 4800 EUR,2025-02-01
`
	flights, summary, err := p.Run([]Source{
		{Tag: "catchajet", Path: filepath.Join(dir, "does-not-exist.csv")},
		{Tag: "mirai", Path: writeFile(t, dir, "mirai.csv", miraiCSV)},
	})
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "mirai", flights[0].OperatedBy)
	assert.Contains(t, summary.SkippedSources, "catchajet")
}

func TestRunUnknownTagIsSkipped(t *testing.T) {
	dir := t.TempDir()
	p := newTestPipeline(t, dir)

	flights, summary, err := p.Run([]Source{
		{Tag: "ryanair", Path: filepath.Join(dir, "whatever.csv")},
	})
	require.NoError(t, err)
	assert.Empty(t, flights)
	assert.Contains(t, summary.SkippedSources, "ryanair")
	assert.Equal(t, 0, summary.Total)
}

func TestRunEmptyResultIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	p := newTestPipeline(t, dir)

	flights, summary, err := p.Run(nil)
	require.NoError(t, err)
	assert.NotNil(t, flights)
	assert.Empty(t, flights)
	assert.Equal(t, 0, summary.Total)
}
