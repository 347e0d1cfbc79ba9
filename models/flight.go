// models/flight.go
package models

// Coordinates is a resolved latitude/longitude pair copied out of the
// gazetteer. Records keep it by value, never by reference.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Flight is the canonical record emitted for the storefront. JSON tags
// EXACTLY match the field names the hotDeals consumer expects.
type Flight struct {
	ID              int64    `json:"id"`
	Thumbnail       string   `json:"thumbnail"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	OriginLat       *float64 `json:"originLat"`
	OriginLon       *float64 `json:"originLon"`
	DestLat         *float64 `json:"destLat"`
	DestLon         *float64 `json:"destLon"`
	CharterPrice    int      `json:"charterPrice"`
	FlyPrivatePrice int      `json:"flyPrivatePrice"`
	Date            string   `json:"date"`
	Duration        string   `json:"duration"`
	DepartureTime   string   `json:"departureTime"`
	ArrivalTime     string   `json:"arrivalTime"`
	Aircraft        string   `json:"aircraft"`
	Amenities       []string `json:"amenities"`
	OperatedBy      string   `json:"operatedBy"`
}

// Resolved reports whether both endpoints carry usable coordinates.
func (f *Flight) Resolved() bool {
	return f.OriginLat != nil && f.OriginLon != nil && f.DestLat != nil && f.DestLon != nil
}

// Draft is the source-neutral intermediate a source adapter produces from one
// raw row, before coordinates and derived metrics are attached.
type Draft struct {
	Origin      string
	Destination string
	Aircraft    string
	Amenities   []string
	BasePrice   float64
	Date        string // raw upstream date text, formatted later
	Thumbnail   string
}
