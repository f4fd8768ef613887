package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/guregu/null"
)

var (
	// ErrInvalidMonth is returned when a month value is neither a known name
	// nor an integer in 1..12.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidRow is returned when a required integer field cannot be parsed.
	ErrInvalidRow = errors.New("invalid row")

	// ErrMissingColumn is returned when the source lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrDuplicateColumn is returned when a required column appears more than
	// once in the header.
	ErrDuplicateColumn = errors.New("duplicate required column")
)

// monthNames maps lower-cased French month names to month numbers. Unaccented
// spellings are included because exports frequently strip diacritics.
var monthNames = map[string]int{
	"janvier":   1,
	"février":   2,
	"fevrier":   2,
	"mars":      3,
	"avril":     4,
	"mai":       5,
	"juin":      6,
	"juillet":   7,
	"août":      8,
	"aout":      8,
	"septembre": 9,
	"octobre":   10,
	"novembre":  11,
	"décembre":  12,
	"decembre":  12,
}

var canonicalMonthNames = [12]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// MonthName returns the French name of month m, or "" outside 1..12.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return canonicalMonthNames[m-1]
}

// NormalizeMonth converts a raw month value to 1..12. Known names are looked
// up; anything else must already be an integer (integral floats such as "4.0"
// are accepted).
func NormalizeMonth(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if n, ok := monthNames[strings.ToLower(s)]; ok {
		return n, nil
	}

	n, err := parseInteger(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, raw)
	}
	if n < 1 || n > 12 {
		return 0, fmt.Errorf("%w: %d out of range", ErrInvalidMonth, n)
	}
	return n, nil
}

// CalendarDate builds a UTC date from the reference year, month and day.
// It returns an absent value when the combination does not exist in that year.
func CalendarDate(year, month, day int) null.Time {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return null.Time{}
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (31 April → 1 May); reject those.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return null.Time{}
	}
	return null.TimeFrom(t)
}

// DateLabel formats a calendar date as "dd/mm", absent when date is absent.
func DateLabel(date null.Time) null.String {
	if !date.Valid {
		return null.String{}
	}
	return null.StringFrom(date.Time.Format("02/01"))
}

func parseInteger(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}
