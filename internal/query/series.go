package query

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
)

// StationSeries restricts a view to one station and orders it along the time
// axis (date, then hour). Records without a calendar date cannot be placed on
// that axis and are left out.
func StationSeries(v View, station string) View {
	series := View(lo.Filter([]domain.PreparedRecord(v), func(r domain.PreparedRecord, _ int) bool {
		return r.Station == station && r.CalendarDate.Valid
	}))
	slices.SortStableFunc(series, func(a, b domain.PreparedRecord) int {
		if c := a.CalendarDate.Time.Compare(b.CalendarDate.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.Hour, b.Hour)
	})
	return series
}
