package query

import (
	"cmp"
	"slices"

	"github.com/guregu/null"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
)

// GroupRow holds the pollutant means for one (month, station) pair.
type GroupRow struct {
	Month   int        `json:"month"`
	Station string     `json:"station"`
	Count   int        `json:"count"`
	PM25    null.Float `json:"pm25"`
	PM10    null.Float `json:"pm10"`
	CO      null.Float `json:"co"`
	O3      null.Float `json:"o3"`
}

// Mean returns the row's mean for p.
func (g GroupRow) Mean(p domain.Pollutant) null.Float {
	switch p {
	case domain.PM25:
		return g.PM25
	case domain.PM10:
		return g.PM10
	case domain.CO:
		return g.CO
	case domain.O3:
		return g.O3
	default:
		return null.Float{}
	}
}

type groupKey struct {
	month   int
	station string
}

// GroupMeans groups a view by (month, station) and averages each pollutant
// over its present values. Only groups that occur in the view are returned.
// Row order follows first appearance in the view and carries no meaning; use
// SortGroups when a stable order is needed.
func GroupMeans(v View) []GroupRow {
	grouped := make(map[groupKey]View)
	order := make([]groupKey, 0)

	for _, r := range v {
		key := groupKey{month: r.Month, station: r.Station}
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], r)
	}

	rows := make([]GroupRow, 0, len(order))
	for _, key := range order {
		members := grouped[key]
		rows = append(rows, GroupRow{
			Month:   key.month,
			Station: key.station,
			Count:   len(members),
			PM25:    mean(members, func(r domain.PreparedRecord) null.Float { return r.PM25 }),
			PM10:    mean(members, func(r domain.PreparedRecord) null.Float { return r.PM10 }),
			CO:      mean(members, func(r domain.PreparedRecord) null.Float { return r.CO }),
			O3:      mean(members, func(r domain.PreparedRecord) null.Float { return r.O3 }),
		})
	}
	return rows
}

// SortGroups orders rows by month, then station.
func SortGroups(rows []GroupRow) {
	slices.SortFunc(rows, func(a, b GroupRow) int {
		if c := cmp.Compare(a.Month, b.Month); c != 0 {
			return c
		}
		return cmp.Compare(a.Station, b.Station)
	})
}
