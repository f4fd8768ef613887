package query

import (
	"slices"

	"github.com/guregu/null"
	"github.com/samber/lo"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
)

// CanonicalStations returns the distinct real station names, sorted.
// Placeholders ("nan", "none", "") are dropped.
func CanonicalStations(table *domain.PreparedTable) []string {
	names := lo.FilterMap(table.Records(), func(r domain.PreparedRecord, _ int) (string, bool) {
		return r.Station, !domain.IsPlaceholderStation(r.Station)
	})
	names = lo.Uniq(names)
	slices.Sort(names)
	return names
}

// Months returns the distinct months present, ascending.
func Months(table *domain.PreparedTable) []int {
	months := lo.Uniq(lo.Map(table.Records(), func(r domain.PreparedRecord, _ int) int {
		return r.Month
	}))
	slices.Sort(months)
	return months
}

// TempRange returns the lowest and highest observed temperatures. Both are
// absent when no record has a temperature.
func TempRange(table *domain.PreparedTable) (low, high null.Float) {
	for _, r := range table.Records() {
		if !r.Temp.Valid {
			continue
		}
		if !low.Valid || r.Temp.Float64 < low.Float64 {
			low = null.FloatFrom(r.Temp.Float64)
		}
		if !high.Valid || r.Temp.Float64 > high.Float64 {
			high = null.FloatFrom(r.Temp.Float64)
		}
	}
	return low, high
}
