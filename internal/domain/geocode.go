package domain

import (
	"context"
	"log/slog"
)

// EnrichMarkers reverse-geocodes each marker. With a nil geocoder the markers
// are returned unchanged. Failures only mark the affected marker.
func EnrichMarkers(ctx context.Context, markers []StationMarker, geocoder Geocoder, logger *slog.Logger) []StationMarker {
	if geocoder == nil {
		return markers
	}

	out := make([]StationMarker, len(markers))
	for i, m := range markers {
		out[i] = enrichMarker(ctx, m, geocoder, logger)
	}
	return out
}

func enrichMarker(ctx context.Context, m StationMarker, geocoder Geocoder, logger *slog.Logger) StationMarker {
	if m.Lat == 0 && m.Lon == 0 {
		m.GeoSource = "original"
		return m
	}

	result, err := geocoder.ReverseGeocode(ctx, m.Lat, m.Lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"station", m.Name,
			"lat", m.Lat,
			"lon", m.Lon,
			"error", err,
		)
		m.GeoSource = "failed"
		return m
	}
	if result.FormattedAddress == "" {
		m.GeoSource = "original"
		return m
	}

	m.FormattedAddress = result.FormattedAddress
	m.PlaceName = result.PlaceName
	m.GeoConfidence = result.Confidence
	m.GeoSource = "reverse"
	return m
}
