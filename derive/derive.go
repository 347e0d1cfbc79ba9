// derive/derive.go
package derive

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/golang/geo/s2"

	"github.com/flyprivate/dealfeed/models"
)

const (
	earthRadiusKm = 6371
	cruiseSpeedKm = 500 // assumed average cruise speed, km/h
	groundOpsMin  = 20  // fixed takeoff/landing allowance

	// DepartureTime is fixed for every listing.
	DepartureTime = "10:00"

	defaultDuration = "1h 30m"
	defaultArrival  = "11:30"
	defaultDate     = "December 25"

	// placeholder used whenever a source price cannot be parsed
	PlaceholderPrice = 4000
)

// charterMultipliers is the fixed discrete set a charter markup is drawn
// from. Randomized on purpose: the storefront wants price diversity, not a
// financial calculation.
var charterMultipliers = []float64{2.0, 2.1, 2.2, 2.3, 2.4, 2.5, 2.6, 2.7, 2.8, 2.9, 3.0}

// Calculator computes the derived fields of a canonical record. The random
// source is injected so tests can pin the charter multiplier and IDs.
type Calculator struct {
	rng *rand.Rand
}

// NewCalculator returns a Calculator backed by rng, or by a time-seeded
// source when rng is nil.
func NewCalculator(rng *rand.Rand) *Calculator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Calculator{rng: rng}
}

// Prices returns the charter price (base times a random multiplier from
// charterMultipliers, rounded up) and the FlyPrivate price (base times 1.2,
// rounded up). The two are independent: charter is not guaranteed to exceed
// FlyPrivate.
func (c *Calculator) Prices(basePrice float64) (charter, flyPrivate int) {
	m := charterMultipliers[c.rng.Intn(len(charterMultipliers))]
	charter = int(math.Ceil(basePrice * m))
	flyPrivate = int(math.Ceil(basePrice * 1.2))
	return charter, flyPrivate
}

// GenerateID returns a random 12-digit numeric identifier. Collisions are
// possible and not checked.
func (c *Calculator) GenerateID() int64 {
	return c.rng.Int63n(1_000_000_000_000)
}

// EstimateDuration estimates flight time from the great-circle distance
// between the endpoints at cruise speed, plus the ground-operations
// allowance. Either endpoint unresolved yields the fixed default.
func EstimateDuration(origin, dest *models.Coordinates) string {
	if origin == nil || dest == nil {
		return defaultDuration
	}

	from := s2.LatLngFromDegrees(origin.Lat, origin.Lon)
	to := s2.LatLngFromDegrees(dest.Lat, dest.Lon)
	distanceKm := from.Distance(to).Radians() * earthRadiusKm

	totalMinutes := int(distanceKm/cruiseSpeedKm*60) + groundOpsMin
	return fmt.Sprintf("%dh %02dm", totalMinutes/60, totalMinutes%60)
}

// ArrivalTime adds a "XhYYm" duration to an "HH:MM" departure. Minutes wrap
// into hours and hours wrap modulo 24; the day rollover is dropped, so an
// overnight arrival keeps the departure date. That matches what the
// storefront has always displayed and is kept as-is. Any parse failure
// returns the fixed default.
func ArrivalTime(departure, duration string) string {
	depParts := strings.Split(departure, ":")
	if len(depParts) != 2 {
		return defaultArrival
	}
	depHour, err1 := strconv.Atoi(strings.TrimSpace(depParts[0]))
	depMinute, err2 := strconv.Atoi(strings.TrimSpace(depParts[1]))

	durParts := strings.SplitN(duration, "h", 2)
	if len(durParts) != 2 || err1 != nil || err2 != nil {
		return defaultArrival
	}
	durHours, err3 := strconv.Atoi(strings.TrimSpace(durParts[0]))
	durMinutes, err4 := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(durParts[1]), "m")))
	if err3 != nil || err4 != nil {
		return defaultArrival
	}

	totalMinutes := depMinute + durMinutes
	totalHours := depHour + durHours + totalMinutes/60
	return fmt.Sprintf("%02d:%02d", totalHours%24, totalMinutes%60)
}

// dateLayouts are tried in this fixed order; the first successful parse wins.
var dateLayouts = []string{"2006-01-02", "January 2", "2 Jan", "2/1/2006", "2/1"}

// FormatDate normalizes an upstream date string to "Month Day". The listing
// season spans December through the following year, so December dates get
// year 2024 and everything else 2025 before formatting. Unparseable input
// yields the fixed default.
func FormatDate(dateStr string) string {
	s := strings.TrimSpace(dateStr)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return withSeasonYear(t).Format("January 02")
	}
	return defaultDate
}

// SortDate parses a formatted "Month Day" back into a comparable time using
// the same season-year rule. Unparseable input pins to December 25, 2024.
func SortDate(formatted string) time.Time {
	t, err := time.Parse("January 2", strings.TrimSpace(formatted))
	if err != nil {
		return time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC)
	}
	return withSeasonYear(t)
}

func withSeasonYear(t time.Time) time.Time {
	year := 2025
	if t.Month() == time.December {
		year = 2024
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
