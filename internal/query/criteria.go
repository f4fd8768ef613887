package query

import (
	"github.com/samber/lo"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
)

// Criteria is one filter selection. An empty Stations or Months set selects
// nothing; there is no implicit "all".
type Criteria struct {
	Stations []string `json:"stations"`
	Months   []int    `json:"months"`
	MinTemp  float64  `json:"min_temp"`
}

// DefaultCriteria selects every canonical station, every month present and
// the lowest observed temperature, mirroring the initial dashboard state.
func DefaultCriteria(table *domain.PreparedTable) Criteria {
	c := Criteria{
		Stations: CanonicalStations(table),
		Months:   Months(table),
	}
	if low, _ := TempRange(table); low.Valid {
		c.MinTemp = low.Float64
	}
	return c
}

type matcher struct {
	stations map[string]struct{}
	months   map[int]struct{}
	minTemp  float64
}

func newMatcher(c Criteria) matcher {
	return matcher{
		stations: lo.SliceToMap(c.Stations, func(s string) (string, struct{}) { return s, struct{}{} }),
		months:   lo.SliceToMap(c.Months, func(m int) (int, struct{}) { return m, struct{}{} }),
		minTemp:  c.MinTemp,
	}
}

func (m matcher) empty() bool {
	return len(m.stations) == 0 || len(m.months) == 0
}

// match applies the three predicates. A record with no temperature reading
// never clears the threshold.
func (m matcher) match(r domain.PreparedRecord) bool {
	if _, ok := m.stations[r.Station]; !ok {
		return false
	}
	if _, ok := m.months[r.Month]; !ok {
		return false
	}
	return r.Temp.Valid && r.Temp.Float64 >= m.minTemp
}
