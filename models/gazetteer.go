// models/gazetteer.go
package models

// AirportRow mirrors one row of the iata-icao reference CSV.
// CSV tags EXACTLY match the headers of the published dataset.
// Latitude/longitude stay strings here: rows with blank or garbled values
// must be droppable at load time instead of failing the whole decode.
type AirportRow struct {
	RegionName string `csv:"region_name"`
	IATA       string `csv:"iata"`
	ICAO       string `csv:"icao"`
	Latitude   string `csv:"latitude"`
	Longitude  string `csv:"longitude"`
}

// Airport is one retained gazetteer entry: the first airport seen for a
// normalized city name. Immutable after load.
type Airport struct {
	City           string
	NormalizedCity string
	IATA           string
	ICAO           string
	Coords         Coordinates
}
