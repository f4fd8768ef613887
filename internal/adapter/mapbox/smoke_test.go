//go:build mapbox

package mapbox

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/observability"
)

// These tests hit the real Mapbox API and require a valid MAPBOX_TOKEN env var.
// Run with: go test -tags=mapbox ./internal/adapter/mapbox/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Fatal("MAPBOX_TOKEN must be set to run smoke tests")
	}
	return NewClient(token, 10*time.Second, 5, observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_ReverseGeocode(t *testing.T) {
	c := smokeClient(t)

	// Ouakam, Dakar
	result, err := c.ReverseGeocode(context.Background(), 14.720079, -17.490598)
	require.NoError(t, err)

	assert.NotEmpty(t, result.FormattedAddress)
	assert.Contains(t, result.FormattedAddress, "Senegal")
	assert.Greater(t, result.Confidence, 0.0)
}

func TestSmoke_EnrichStationMarkers(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedGeocoder(c, 32, observability.NewMetricsForTesting())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	markers := domain.EnrichMarkers(context.Background(), domain.StationMarkers(), cached, logger)
	for _, m := range markers {
		assert.Equal(t, "reverse", m.GeoSource, m.Name)
	}

	again := domain.EnrichMarkers(context.Background(), domain.StationMarkers(), cached, logger)
	assert.Equal(t, markers, again)
}
