package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/guregu/null"
)

// missingTokens are the spellings of "not measured" found in exports.
var missingTokens = map[string]struct{}{
	"":      {},
	"na":    {},
	"nan":   {},
	"none":  {},
	"null":  {},
	"<nil>": {},
}

// Prepare runs the preparation stage over every raw row: month normalization,
// calendar date derivation against referenceYear, and projection. Any row with
// an unparseable month, day or hour aborts the whole load; there is no partial
// table.
func Prepare(raw []RawRecord, referenceYear int) (*PreparedTable, error) {
	records := make([]PreparedRecord, 0, len(raw))
	invalidDates := 0

	for i, r := range raw {
		rec, err := PrepareRecord(r, referenceYear)
		if err != nil {
			// 1-based, header excluded.
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if !rec.CalendarDate.Valid {
			invalidDates++
		}
		records = append(records, rec)
	}

	return NewPreparedTable(records, TableMeta{
		ReferenceYear: referenceYear,
		LoadedAt:      clock.Now().UTC(),
		InvalidDates:  invalidDates,
	}), nil
}

// PrepareRecord converts a single raw row.
func PrepareRecord(r RawRecord, referenceYear int) (PreparedRecord, error) {
	month, err := NormalizeMonth(r.Month)
	if err != nil {
		return PreparedRecord{}, err
	}
	day, err := parseInteger(strings.TrimSpace(r.Day))
	if err != nil {
		return PreparedRecord{}, fmt.Errorf("%w: day %q", ErrInvalidRow, r.Day)
	}
	hour, err := parseInteger(strings.TrimSpace(r.Hour))
	if err != nil {
		return PreparedRecord{}, fmt.Errorf("%w: hour %q", ErrInvalidRow, r.Hour)
	}

	date := CalendarDate(referenceYear, month, day)

	return PreparedRecord{
		CalendarDate: date,
		Month:        month,
		Day:          day,
		Hour:         hour,
		Measurements: Measurements{
			PM25: parseMeasurement(r.PM25),
			PM10: parseMeasurement(r.PM10),
			CO:   parseMeasurement(r.CO),
			O3:   parseMeasurement(r.O3),
			Temp: parseMeasurement(r.Temp),
			Pres: parseMeasurement(r.Pres),
			Dewp: parseMeasurement(r.Dewp),
		},
		Station:   strings.TrimSpace(r.Station),
		DateLabel: DateLabel(date),
	}, nil
}

// IsPlaceholderStation reports whether s stands in for a missing station name.
func IsPlaceholderStation(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none":
		return true
	default:
		return false
	}
}

// parseMeasurement returns an absent value for missing tokens and for text
// that does not parse as a finite number.
func parseMeasurement(s string) null.Float {
	s = strings.TrimSpace(s)
	if _, ok := missingTokens[strings.ToLower(s)]; ok {
		return null.Float{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return null.Float{}
	}
	return null.FloatFrom(v)
}
