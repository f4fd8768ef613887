package http

import (
	"net/http"
	"strings"

	"github.com/guregu/null"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/query"
)

type filtersResponse struct {
	Stations []string         `json:"stations"`
	Months   []int            `json:"months"`
	TempMin  null.Float       `json:"temp_min"`
	TempMax  null.Float       `json:"temp_max"`
	Table    domain.TableMeta `json:"table"`
}

type queryResponse struct {
	Criteria query.Criteria          `json:"criteria"`
	ViewSize int                     `json:"view_size"`
	Summary  query.Summary           `json:"summary"`
	Groups   []query.GroupRow        `json:"groups"`
	Records  []domain.PreparedRecord `json:"records,omitempty"`
}

type seriesResponse struct {
	Station  string                  `json:"station"`
	Criteria query.Criteria          `json:"criteria"`
	Records  []domain.PreparedRecord `json:"records"`
}

type mapResponse struct {
	Center  any                    `json:"center"`
	Markers []domain.StationMarker `json:"markers"`
}

// currentTable writes a 503 and returns nil when nothing has been loaded.
func (s *Server) currentTable(w http.ResponseWriter) *domain.PreparedTable {
	table := s.tables.Table()
	if table == nil {
		writeError(w, http.StatusServiceUnavailable, "data not loaded")
	}
	return table
}

func (s *Server) handleFilters(w http.ResponseWriter, _ *http.Request) {
	table := s.currentTable(w)
	if table == nil {
		return
	}

	low, high := query.TempRange(table)
	writeJSON(w, http.StatusOK, filtersResponse{
		Stations: query.CanonicalStations(table),
		Months:   query.Months(table),
		TempMin:  low,
		TempMax:  high,
		Table:    table.Meta(),
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	table := s.currentTable(w)
	if table == nil {
		return
	}

	values := r.URL.Query()
	c, err := parseCriteria(values, table)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	includeRecords, err := parseIncludeRecords(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := query.Run(table, c)
	query.SortGroups(result.Groups)
	s.metrics.ViewSize.Observe(float64(len(result.View)))

	resp := queryResponse{
		Criteria: c,
		ViewSize: len(result.View),
		Summary:  result.Summary,
		Groups:   result.Groups,
	}
	if includeRecords {
		resp.Records = result.View
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSeries applies the month and min_temp parameters to the station named
// in the path. Station query parameters are ignored.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	table := s.currentTable(w)
	if table == nil {
		return
	}

	station := strings.TrimSpace(r.PathValue("station"))
	values := r.URL.Query()
	values.Del("station")
	values.Set("station", station)

	c, err := parseCriteria(values, table)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	series := query.StationSeries(query.Apply(table, c), station)
	s.metrics.ViewSize.Observe(float64(len(series)))

	writeJSON(w, http.StatusOK, seriesResponse{
		Station:  station,
		Criteria: c,
		Records:  series,
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	markers := domain.EnrichMarkers(r.Context(), domain.StationMarkers(), s.geocoder, s.logger)
	writeJSON(w, http.StatusOK, mapResponse{
		Center:  domain.MapCenter,
		Markers: markers,
	})
}
