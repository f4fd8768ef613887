package query

import (
	"math"

	"github.com/guregu/null"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
)

// Summary holds the headline figures for a view.
type Summary struct {
	DayCount int        `json:"day_count"`
	AvgTemp  null.Float `json:"avg_temp"`
	AvgCO    null.Float `json:"avg_co"`
}

// Summarize counts distinct calendar dates (absent dates are not counted) and
// averages temperature (1 decimal) and CO (2 decimals).
func Summarize(v View) Summary {
	days := make(map[int64]struct{})
	for _, r := range v {
		if r.CalendarDate.Valid {
			days[r.CalendarDate.Time.Unix()] = struct{}{}
		}
	}

	return Summary{
		DayCount: len(days),
		AvgTemp:  round(mean(v, func(r domain.PreparedRecord) null.Float { return r.Temp }), 1),
		AvgCO:    round(mean(v, func(r domain.PreparedRecord) null.Float { return r.CO }), 2),
	}
}

// mean averages the present values of a field; absent when none are present.
func mean(v View, field func(domain.PreparedRecord) null.Float) null.Float {
	values := lo.FilterMap(v, func(r domain.PreparedRecord, _ int) (float64, bool) {
		f := field(r)
		return f.Float64, f.Valid
	})
	if len(values) == 0 {
		return null.Float{}
	}
	m := stat.Mean(values, nil)
	// Sums of extreme readings can overflow.
	if math.IsInf(m, 0) || math.IsNaN(m) {
		return null.Float{}
	}
	return null.FloatFrom(m)
}

// round rounds half to even at the given number of decimals.
func round(f null.Float, decimals int) null.Float {
	if !f.Valid {
		return f
	}
	scale := math.Pow(10, float64(decimals))
	return null.FloatFrom(math.RoundToEven(f.Float64*scale) / scale)
}
