// Command genmock writes a deterministic synthetic air-quality CSV in the
// dashboard's input schema, for demos and local testing. The same seed always
// produces the same file.
//
// Usage:
//
//	go run ./cmd/genmock -out main_data.csv -months 12 -days 3 -seed 42
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/samber/lo"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
)

var columns = []string{
	"No", "month", "day", "hour",
	"PM2.5", "PM10", "SO2", "NO2", "CO", "O3",
	"TEMP", "PRES", "DEWP", "station",
}

type options struct {
	months          int
	daysPerMonth    int
	seed            uint64
	missingRate     float64
	placeholderRate float64
	numericMonths   bool
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output CSV path")
	var opts options
	flag.IntVar(&opts.months, "months", 12, "number of months to generate, starting in January")
	flag.IntVar(&opts.daysPerMonth, "days", 3, "sampled days per month")
	flag.Uint64Var(&opts.seed, "seed", 42, "random seed")
	flag.Float64Var(&opts.missingRate, "missing-rate", 0.02, "fraction of measurements written as NA")
	flag.Float64Var(&opts.placeholderRate, "placeholder-rate", 0.01, "fraction of rows with a placeholder station")
	flag.BoolVar(&opts.numericMonths, "numeric-months", false, "write months as numbers instead of names")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if opts.months < 1 || opts.months > 12 {
		return fmt.Errorf("-months must be in 1..12, got %d", opts.months)
	}
	if opts.daysPerMonth < 1 || opts.daysPerMonth > 28 {
		return fmt.Errorf("-days must be in 1..28, got %d", opts.daysPerMonth)
	}

	df := generate(opts)
	if df.Err != nil {
		return fmt.Errorf("build frame: %w", df.Err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	defer f.Close()

	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Printf("wrote %d rows to %s", df.Nrow(), *out)
	return nil
}

// generate builds the frame column by column. Stations are the names on the
// static station map so the map and the charts line up.
func generate(opts options) dataframe.DataFrame {
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	stations := lo.Map(domain.StationMarkers(), func(m domain.StationMarker, _ int) string { return m.Name })
	hours := []int{0, 6, 12, 18}

	cols := make(map[string][]string, len(columns))
	add := func(name, value string) { cols[name] = append(cols[name], value) }

	n := 0
	for month := 1; month <= opts.months; month++ {
		days := sampleDays(rng, opts.daysPerMonth)
		for _, day := range days {
			for _, hour := range hours {
				for si, station := range stations {
					n++
					add("No", strconv.Itoa(n))
					if opts.numericMonths {
						add("month", strconv.Itoa(month))
					} else {
						add("month", domain.MonthName(month))
					}
					add("day", strconv.Itoa(day))
					add("hour", strconv.Itoa(hour))

					// Harmattan months (Dec..Mar) carry more dust.
					dust := 1.0
					if month <= 3 || month == 12 {
						dust = 1.6
					}
					base := (35 + float64(si)*3) * dust
					pm25 := base + rng.NormFloat64()*8
					temp := 24 + 5*math.Sin(float64(month-3)*math.Pi/6) + float64(hour-12)/3 + rng.NormFloat64()

					add("PM2.5", measurement(rng, opts.missingRate, math.Max(pm25, 1), 1))
					add("PM10", measurement(rng, opts.missingRate, math.Max(pm25*1.8+rng.NormFloat64()*10, 2), 1))
					add("SO2", measurement(rng, opts.missingRate, 2+rng.Float64()*8, 1))
					add("NO2", measurement(rng, opts.missingRate, 10+rng.Float64()*30, 1))
					add("CO", measurement(rng, opts.missingRate, 300+rng.Float64()*900, 0))
					add("O3", measurement(rng, opts.missingRate, 10+rng.Float64()*60, 1))
					add("TEMP", measurement(rng, opts.missingRate, temp, 1))
					add("PRES", measurement(rng, opts.missingRate, 1010+rng.NormFloat64()*3, 1))
					add("DEWP", measurement(rng, opts.missingRate, temp-6-rng.Float64()*6, 1))

					if rng.Float64() < opts.placeholderRate {
						add("station", "nan")
					} else {
						add("station", station)
					}
				}
			}
		}
	}

	cs := make([]series.Series, len(columns))
	for i, name := range columns {
		cs[i] = series.New(cols[name], series.String, name)
	}
	return dataframe.New(cs...)
}

// sampleDays picks k distinct days in 1..28, ascending.
func sampleDays(rng *rand.Rand, k int) []int {
	days := rng.Perm(28)[:k]
	for i := range days {
		days[i]++
	}
	slices.Sort(days)
	return days
}

func measurement(rng *rand.Rand, missingRate, v float64, decimals int) string {
	if rng.Float64() < missingRate {
		return "NA"
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
