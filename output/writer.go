// output/writer.go
package output

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/flyprivate/dealfeed/models"
)

// WriteHotDeals serializes the ordered flight collection as the
// program-loadable array literal the storefront consumes:
//
//	const hotDeals = [ ... ];
func WriteHotDeals(path string, flights []models.Flight) error {
	if flights == nil {
		flights = []models.Flight{}
	}

	data, err := json.MarshalIndent(flights, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal hotDeals array: %w", err)
	}
	content := append([]byte("const hotDeals = "), data...)
	content = append(content, ';')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	log.Printf("Output: wrote %d flights (%d bytes) to %s\n", len(flights), len(content), path)
	return nil
}
