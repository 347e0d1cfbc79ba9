// models/rows.go
package models

// Raw captured-list rows, one struct per upstream operator. CSV tags EXACTLY
// match the headers each capture job writes; columns a capture happens to
// omit simply decode to "" and the adapter falls back per field.

// LuxAviationRow: route is "Origin Airport Destination"; price is
// EUR-prefixed free text; WiFi/Pets/Beds are yes/no flags.
type LuxAviationRow struct {
	Route     string `csv:"route"`
	Aircraft  string `csv:"aircraft"`
	MaxPax    string `csv:"maxpax"`
	WiFi      string `csv:"WiFi"`
	Pets      string `csv:"Pets"`
	Beds      string `csv:"Beds"`
	Price     string `csv:"price"`
	Date      string `csv:"date"`
	Thumbnail string `csv:"thumbnail"`
}

// CatchAJetRow: separate departure/arrival columns; price text reads
// "Book the entire jet for €1,234".
type CatchAJetRow struct {
	Departure string `csv:"departure"`
	Arrival   string `csv:"arrival"`
	MaxPax    string `csv:"maxpax"`
	Price     string `csv:"price"`
	Date      string `csv:"date"`
	Thumbnail string `csv:"thumbnail"`
}

// MiraiRow: route uses an em-dash separator; price is a sentence whose third
// word is the amount; maxpax reads like "Up to 6".
type MiraiRow struct {
	Route     string `csv:"route"`
	MaxPax    string `csv:"maxpax"`
	Price     string `csv:"price"`
	Date      string `csv:"date"`
	Thumbnail string `csv:"thumbnail"`
}

// SovereignRow: the capture flattens the whole listing into one tab-delimited
// flightinfo field; everything is positional.
type SovereignRow struct {
	FlightInfo string `csv:"flightinfo"`
	Date       string `csv:"date"`
	Thumbnail  string `csv:"thumbnail"`
}
