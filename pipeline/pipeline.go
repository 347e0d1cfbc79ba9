// pipeline/pipeline.go
package pipeline

import (
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/flyprivate/dealfeed/derive"
	"github.com/flyprivate/dealfeed/gazetteer"
	"github.com/flyprivate/dealfeed/models"
	"github.com/flyprivate/dealfeed/normalize"
	"github.com/flyprivate/dealfeed/sources"
)

const defaultThumbnail = "/api/placeholder/400/320"

// Source names one capture file to ingest.
type Source struct {
	Tag  string
	Path string
}

// Summary collects run diagnostics for reporting. It is informational only;
// the functional output is the flight slice.
type Summary struct {
	Total          int
	PerSource      map[string]int
	SkippedSources []string
	Discarded      int
	Unresolved     []string

	MinCharter, MaxCharter       int
	MinFlyPrivate, MaxFlyPrivate int
	EarliestDate, LatestDate     time.Time
}

// Pipeline is the per-run context: it owns the normalization and resolution
// caches through its Normalizer and Resolver, so repeated runs start clean.
type Pipeline struct {
	norm     *normalize.Normalizer
	resolver *gazetteer.Resolver
	calc     *derive.Calculator
}

// New wires a run context over a loaded gazetteer index. The same Normalizer
// used during gazetteer load should be passed in so key normalization agrees.
func New(idx *gazetteer.Index, n *normalize.Normalizer, calc *derive.Calculator) *Pipeline {
	return &Pipeline{
		norm:     n,
		resolver: gazetteer.NewResolver(idx, n),
		calc:     calc,
	}
}

// Run processes every source to completion, one after another. A source that
// cannot be read or parsed is skipped and the rest continue. Surviving
// records are filtered, sorted ascending by calendar date, and returned
// ready for serialization. An empty result is reported but is not an error.
func (p *Pipeline) Run(srcs []Source) ([]models.Flight, *Summary, error) {
	summary := &Summary{PerSource: make(map[string]int)}
	flights := []models.Flight{}

	for _, src := range srcs {
		log.Printf("Pipeline: processing %s data from %s\n", src.Tag, src.Path)

		adapter, err := sources.ForTag(src.Tag, p.norm)
		if err != nil {
			log.Printf("WARN Pipeline: skipping source %s: %v\n", src.Tag, err)
			summary.SkippedSources = append(summary.SkippedSources, src.Tag)
			continue
		}

		f, err := os.Open(src.Path)
		if err != nil {
			log.Printf("WARN Pipeline: skipping source %s, cannot open %s: %v\n", src.Tag, src.Path, err)
			summary.SkippedSources = append(summary.SkippedSources, src.Tag)
			continue
		}
		drafts, err := adapter.Parse(f)
		f.Close()
		if err != nil {
			log.Printf("WARN Pipeline: skipping source %s: %v\n", src.Tag, err)
			summary.SkippedSources = append(summary.SkippedSources, src.Tag)
			continue
		}

		kept := 0
		for _, draft := range drafts {
			flight := p.build(src.Tag, draft)
			if flight.FlyPrivatePrice < 100 {
				summary.Discarded++
				continue
			}
			if !flight.Resolved() {
				summary.Discarded++
				summary.Unresolved = append(summary.Unresolved,
					fmt.Sprintf("%s -> %s", flight.Origin, flight.Destination))
				continue
			}
			flights = append(flights, flight)
			kept++
		}
		summary.PerSource[src.Tag] = kept
		log.Printf("Pipeline: %d flights kept from %s\n", kept, src.Tag)
	}

	// Stable, so same-date records keep their arrival order.
	sort.SliceStable(flights, func(i, j int) bool {
		return derive.SortDate(flights[i].Date).Before(derive.SortDate(flights[j].Date))
	})

	p.finishSummary(summary, flights)
	p.report(summary)
	return flights, summary, nil
}

// build attaches coordinates and derived metrics to one draft.
func (p *Pipeline) build(tag string, d models.Draft) models.Flight {
	originCoords := p.resolver.Resolve(d.Origin)
	destCoords := p.resolver.Resolve(d.Destination)

	charter, flyPrivate := p.calc.Prices(d.BasePrice)
	duration := derive.EstimateDuration(originCoords, destCoords)

	thumbnail := d.Thumbnail
	if thumbnail == "" {
		thumbnail = defaultThumbnail
	}

	originLat, originLon := splitCoords(originCoords)
	destLat, destLon := splitCoords(destCoords)

	return models.Flight{
		ID:              p.calc.GenerateID(),
		Thumbnail:       thumbnail,
		Origin:          d.Origin,
		Destination:     d.Destination,
		OriginLat:       originLat,
		OriginLon:       originLon,
		DestLat:         destLat,
		DestLon:         destLon,
		CharterPrice:    charter,
		FlyPrivatePrice: flyPrivate,
		Date:            derive.FormatDate(d.Date),
		Duration:        duration,
		DepartureTime:   derive.DepartureTime,
		ArrivalTime:     derive.ArrivalTime(derive.DepartureTime, duration),
		Aircraft:        d.Aircraft,
		Amenities:       d.Amenities,
		OperatedBy:      tag,
	}
}

// splitCoords copies a resolved pair into the nullable record fields.
func splitCoords(c *models.Coordinates) (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	lat, lon := c.Lat, c.Lon
	return &lat, &lon
}

func (p *Pipeline) finishSummary(s *Summary, flights []models.Flight) {
	s.Total = len(flights)
	for i, f := range flights {
		if i == 0 || f.CharterPrice < s.MinCharter {
			s.MinCharter = f.CharterPrice
		}
		if f.CharterPrice > s.MaxCharter {
			s.MaxCharter = f.CharterPrice
		}
		if i == 0 || f.FlyPrivatePrice < s.MinFlyPrivate {
			s.MinFlyPrivate = f.FlyPrivatePrice
		}
		if f.FlyPrivatePrice > s.MaxFlyPrivate {
			s.MaxFlyPrivate = f.FlyPrivatePrice
		}
		d := derive.SortDate(f.Date)
		if i == 0 || d.Before(s.EarliestDate) {
			s.EarliestDate = d
		}
		if i == 0 || d.After(s.LatestDate) {
			s.LatestDate = d
		}
	}
}

func (p *Pipeline) report(s *Summary) {
	log.Printf("Pipeline: total flights processed: %d\n", s.Total)

	tags := make([]string, 0, len(s.PerSource))
	for tag := range s.PerSource {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		log.Printf("Pipeline: - %s: %d flights\n", tag, s.PerSource[tag])
	}

	if s.Discarded > 0 {
		log.Printf("WARN Pipeline: %d flights discarded (underpriced or unresolved)\n", s.Discarded)
	}
	for _, route := range s.Unresolved {
		log.Printf("WARN Pipeline: unresolved route: %s\n", route)
	}

	if s.Total == 0 {
		log.Println("Pipeline: no flight data available for price and date ranges")
		return
	}
	log.Printf("Pipeline: charter prices €%d to €%d, FlyPrivate prices €%d to €%d\n",
		s.MinCharter, s.MaxCharter, s.MinFlyPrivate, s.MaxFlyPrivate)
	log.Printf("Pipeline: date range %s to %s\n",
		s.EarliestDate.Format("January 02, 2006"), s.LatestDate.Format("January 02, 2006"))
}
