// Command validate loads an air-quality CSV through the same preparation stage
// the dashboard uses and prints an integrity report: row counts, calendar
// dates that do not exist in the reference year, station coverage and missing
// measurements. Load faults (unknown month, bad day or hour, missing column)
// exit with status 1.
//
// Usage:
//
//	go run ./cmd/validate -data main_data.csv -year 2023
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/guregu/null"
	"github.com/samber/lo"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/adapter/csvfile"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/query"
)

// phase tracks findings for one section of the report. Warnings do not fail
// the run; errors do.
type phase struct {
	name     string
	warnings []string
	errors   []string
}

func (p *phase) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataPath := flag.String("data", "main_data.csv", "path to the input CSV")
	year := flag.Int("year", 2023, "reference year used to build calendar dates")
	flag.Parse()

	os.Exit(run(*dataPath, *year, os.Stdout))
}

func run(path string, year int, w io.Writer) int {
	fmt.Fprintln(w, "=== Air Quality Data Integrity Report ===")
	fmt.Fprintf(w, "File: %s  Reference year: %d\n\n", path, year)

	source := csvfile.NewSource(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	raw, err := source.Extract(context.Background())
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	table, err := domain.Prepare(raw, year)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		checkDates(table),
		checkStations(table),
		checkMeasurements(table),
	}

	stations := query.CanonicalStations(table)
	low, high := query.TempRange(table)
	fmt.Fprintf(w, "Rows:          %d\n", table.Len())
	fmt.Fprintf(w, "Months:        %s\n", joinInts(query.Months(table)))
	fmt.Fprintf(w, "Stations:      %d\n", len(stations))
	fmt.Fprintf(w, "TEMP range:    %s .. %s\n", formatFloat(low), formatFloat(high))
	fmt.Fprintln(w)

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		switch {
		case !p.passed():
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		case len(p.warnings) > 0:
			status = fmt.Sprintf("WARN (%d)", len(p.warnings))
		}
		fmt.Fprintf(w, "  %-28s %s\n", p.name, status)
	}

	for _, p := range phases {
		if len(p.errors) == 0 && len(p.warnings) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [E%d] %s\n", i+1, e)
		}
		for i, e := range p.warnings {
			fmt.Fprintf(w, "  [W%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nValidation passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// checkDates reports (month, day) pairs that are not real dates in the
// reference year. Those rows stay in the table but never count as days.
func checkDates(table *domain.PreparedTable) *phase {
	p := &phase{name: "Calendar dates"}
	if table.Len() == 0 {
		p.errorf("file has no data rows")
		return p
	}

	invalid := lo.Filter(table.Records(), func(r domain.PreparedRecord, _ int) bool {
		return !r.CalendarDate.Valid
	})
	pairs := lo.Uniq(lo.Map(invalid, func(r domain.PreparedRecord, _ int) string {
		return fmt.Sprintf("%02d/%02d", r.Day, r.Month)
	}))
	slices.Sort(pairs)
	for _, pair := range pairs {
		p.warnf("%s does not exist in %d", pair, table.Meta().ReferenceYear)
	}
	if len(invalid) > 0 {
		p.warnf("%d rows have no calendar date", len(invalid))
	}
	return p
}

func checkStations(table *domain.PreparedTable) *phase {
	p := &phase{name: "Stations"}

	placeholders := lo.CountBy(table.Records(), func(r domain.PreparedRecord) bool {
		return domain.IsPlaceholderStation(r.Station)
	})
	if placeholders > 0 {
		p.warnf("%d rows have a placeholder station and are never selectable", placeholders)
	}

	stations := query.CanonicalStations(table)
	if len(stations) == 0 {
		p.errorf("no real station names found")
		return p
	}

	known := lo.SliceToMap(domain.StationMarkers(), func(m domain.StationMarker) (string, struct{}) {
		return m.Name, struct{}{}
	})
	for _, s := range stations {
		if _, ok := known[s]; !ok {
			p.warnf("station %q has no map marker", s)
		}
	}
	return p
}

func checkMeasurements(table *domain.PreparedTable) *phase {
	p := &phase{name: "Measurements"}
	records := table.Records()

	fields := []struct {
		name  string
		value func(domain.PreparedRecord) null.Float
	}{
		{"PM2.5", func(r domain.PreparedRecord) null.Float { return r.PM25 }},
		{"PM10", func(r domain.PreparedRecord) null.Float { return r.PM10 }},
		{"CO", func(r domain.PreparedRecord) null.Float { return r.CO }},
		{"O3", func(r domain.PreparedRecord) null.Float { return r.O3 }},
		{"TEMP", func(r domain.PreparedRecord) null.Float { return r.Temp }},
		{"PRES", func(r domain.PreparedRecord) null.Float { return r.Pres }},
		{"DEWP", func(r domain.PreparedRecord) null.Float { return r.Dewp }},
	}
	for _, f := range fields {
		missing := lo.CountBy(records, func(r domain.PreparedRecord) bool { return !f.value(r).Valid })
		if missing == len(records) && len(records) > 0 {
			p.errorf("%s is missing on every row", f.name)
			continue
		}
		if missing > 0 {
			p.warnf("%s missing on %d of %d rows", f.name, missing, len(records))
		}
	}

	noTemp := lo.CountBy(records, func(r domain.PreparedRecord) bool { return !r.Temp.Valid })
	if noTemp > 0 {
		p.warnf("%d rows without TEMP can never pass a temperature threshold", noTemp)
	}
	return p
}

func joinInts(ns []int) string {
	return strings.Join(lo.Map(ns, func(n int, _ int) string { return fmt.Sprint(n) }), ", ")
}

func formatFloat(f null.Float) string {
	if !f.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", f.Float64)
}
