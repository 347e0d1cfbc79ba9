// main.go
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/flyprivate/dealfeed/config"
	"github.com/flyprivate/dealfeed/derive"
	"github.com/flyprivate/dealfeed/gazetteer"
	"github.com/flyprivate/dealfeed/normalize"
	"github.com/flyprivate/dealfeed/output"
	"github.com/flyprivate/dealfeed/pipeline"
)

func main() {
	log.Println("Starting FlyPrivate Deal Feed Processor...")

	// .env is optional; it only supplies overrides.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment overrides from .env")
	}

	if err := config.LoadConfig(os.Getenv("DEALFEED_CONFIG")); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	log.Printf("Configuration loaded. Gazetteer: %s, output: %s, %d sources",
		config.AppConfig.Paths.GazetteerCSV, config.AppConfig.Paths.OutputJS,
		len(config.AppConfig.Sources))
	for _, src := range config.AppConfig.Sources {
		log.Printf("- %s: %s", src.Tag, src.CSV)
	}

	norm := normalize.New()
	idx, err := gazetteer.Load(config.AppConfig.Paths.GazetteerCSV, norm)
	if err != nil {
		log.Fatalf("Error loading airport gazetteer: %v", err)
	}

	srcs := make([]pipeline.Source, 0, len(config.AppConfig.Sources))
	for _, s := range config.AppConfig.Sources {
		srcs = append(srcs, pipeline.Source{Tag: s.Tag, Path: s.CSV})
	}

	p := pipeline.New(idx, norm, derive.NewCalculator(nil))
	flights, summary, err := p.Run(srcs)
	if err != nil {
		log.Fatalf("Error running pipeline: %v", err)
	}

	if err := output.WriteHotDeals(config.AppConfig.Paths.OutputJS, flights); err != nil {
		log.Fatalf("Error writing output: %v", err)
	}

	// One sample flight per operator, handy when eyeballing a fresh capture.
	seen := map[string]bool{}
	for _, f := range flights {
		if seen[f.OperatedBy] {
			continue
		}
		seen[f.OperatedBy] = true
		log.Printf("Sample %s flight: %s -> %s on %s, €%d", f.OperatedBy,
			f.Origin, f.Destination, f.Date, f.FlyPrivatePrice)
	}

	log.Printf("Processing complete. Total flights in output: %d", summary.Total)
}
