package domain

// StationMarker is a point on the station map. Coordinates and the example
// PM2.5 level are authored by hand; the geocoding fields are filled in by
// EnrichMarkers when a geocoder is configured.
type StationMarker struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	PM25 float64 `json:"pm25"`

	FormattedAddress string  `json:"formatted_address,omitempty"`
	PlaceName        string  `json:"place_name,omitempty"`
	GeoConfidence    float64 `json:"geo_confidence,omitempty"`
	GeoSource        string  `json:"geo_source,omitempty"` // "reverse", "original", "failed"
}

// MapCenter is the default viewport center (Dakar peninsula).
var MapCenter = struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom float64 `json:"zoom"`
}{Lat: 14.75, Lon: -17.23, Zoom: 10.4}

var stationMarkers = []StationMarker{
	{Name: "Université de Thiès", Lat: 14.794498, Lon: -16.961053, PM25: 54},
	{Name: "Ecole Elhadj Mbaye Diop, Ouakam, Dakar", Lat: 14.720079, Lon: -17.490598, PM25: 61},
	{Name: "Ecole Elémentaire Ndiangué, Richard-Toll", Lat: 16.457985, Lon: -15.705461, PM25: 72},
	{Name: "Lycée Technique André Peytavin, Saint-Louis", Lat: 16.019319, Lon: -16.490593, PM25: 50},
	{Name: "Lycée de Bargny, Rufisque", Lat: 14.694865, Lon: -17.224226, PM25: 66},
	{Name: "Lycée Cheikh Mouhamadou Moustapha Mbacké, Diourbel", Lat: 14.661614, Lon: -16.231110, PM25: 68},
	{Name: "Ecole Elhadj Mbaye Diop (Multimedia), Ouakam, Dakar", Lat: 14.720079, Lon: -17.490598, PM25: 61},
	{Name: "kaikai_office(indoor)", Lat: 14.733916, Lon: -17.495694, PM25: 55},
	{Name: "Ecole Notre Dame des Victoires, Diourbel", Lat: 14.653855, Lon: -16.230600, PM25: 69},
	{Name: "Station de référence, Pikine", Lat: 14.744458, Lon: -17.401711, PM25: 60},
}

// StationMarkers returns a copy of the static station map table.
func StationMarkers() []StationMarker {
	out := make([]StationMarker, len(stationMarkers))
	copy(out, stationMarkers)
	return out
}
