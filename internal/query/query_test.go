package query_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/guregu/null"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/query"
)

const testYear = 2023

type row struct {
	month, day, hour, station string
	temp, pm25, pm10, co, o3  string
}

func buildTable(t *testing.T, rows ...row) *domain.PreparedTable {
	t.Helper()
	raw := make([]domain.RawRecord, 0, len(rows))
	for _, r := range rows {
		hour := r.hour
		if hour == "" {
			hour = "0"
		}
		raw = append(raw, domain.RawRecord{
			Month: r.month, Day: r.day, Hour: hour,
			PM25: r.pm25, PM10: r.pm10, CO: r.co, O3: r.o3,
			Temp: r.temp, Pres: "1010", Dewp: "15",
			Station: r.station,
		})
	}
	table, err := domain.Prepare(raw, testYear)
	require.NoError(t, err)
	return table
}

// twoStations is the pair of readings used in the documented examples.
func twoStations(t *testing.T) *domain.PreparedTable {
	return buildTable(t,
		row{month: "Janvier", day: "5", station: "A", temp: "20", pm25: "40", pm10: "60", co: "700", o3: "30"},
		row{month: "Janvier", day: "5", station: "B", temp: "10", pm25: "10", pm10: "20", co: "300", o3: "12"},
	)
}

func TestRun_SingleStationAboveThreshold(t *testing.T) {
	table := twoStations(t)

	res := query.Run(table, query.Criteria{Stations: []string{"A"}, Months: []int{1}, MinTemp: 15})

	require.Len(t, res.View, 1)
	assert.Equal(t, "A", res.View[0].Station)
	assert.Equal(t, 1, res.Summary.DayCount)
	assert.Equal(t, null.FloatFrom(20.0), res.Summary.AvgTemp)
	assert.Equal(t, null.FloatFrom(700.0), res.Summary.AvgCO)
}

func TestRun_BothStationsGroupedSeparately(t *testing.T) {
	table := twoStations(t)

	res := query.Run(table, query.Criteria{Stations: []string{"A", "B"}, Months: []int{1}, MinTemp: 0})

	require.Len(t, res.View, 2)
	groups := res.Groups
	query.SortGroups(groups)

	want := []query.GroupRow{
		{Month: 1, Station: "A", Count: 1, PM25: null.FloatFrom(40), PM10: null.FloatFrom(60), CO: null.FloatFrom(700), O3: null.FloatFrom(30)},
		{Month: 1, Station: "B", Count: 1, PM25: null.FloatFrom(10), PM10: null.FloatFrom(20), CO: null.FloatFrom(300), O3: null.FloatFrom(12)},
	}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, res.Summary.DayCount, "both readings share one date")
	assert.Equal(t, null.FloatFrom(15.0), res.Summary.AvgTemp)
}

func TestApply_EmptySelectionsYieldEmptyView(t *testing.T) {
	table := twoStations(t)

	assert.Empty(t, query.Apply(table, query.Criteria{Stations: nil, Months: []int{1}}))
	assert.Empty(t, query.Apply(table, query.Criteria{Stations: []string{"A", "B"}, Months: nil}))
	assert.Empty(t, query.Apply(table, query.Criteria{}))
}

func TestApply_ThresholdIsInclusive(t *testing.T) {
	table := twoStations(t)

	view := query.Apply(table, query.Criteria{Stations: []string{"A", "B"}, Months: []int{1}, MinTemp: 10})
	assert.Len(t, view, 2)

	view = query.Apply(table, query.Criteria{Stations: []string{"A", "B"}, Months: []int{1}, MinTemp: 10.0001})
	assert.Len(t, view, 1)
}

func TestApply_MissingTemperatureNeverMatches(t *testing.T) {
	table := buildTable(t,
		row{month: "Mars", day: "1", station: "A", temp: ""},
		row{month: "Mars", day: "1", station: "A", temp: "-5"},
	)

	view := query.Apply(table, query.Criteria{Stations: []string{"A"}, Months: []int{3}, MinTemp: -100})
	require.Len(t, view, 1)
	assert.Equal(t, null.FloatFrom(-5), view[0].Temp)
}

func TestApply_ExactlyTheMatchingRecords(t *testing.T) {
	table := buildTable(t,
		row{month: "Janvier", day: "1", station: "A", temp: "20"},
		row{month: "Février", day: "1", station: "A", temp: "20"},
		row{month: "Janvier", day: "2", station: "B", temp: "20"},
		row{month: "Janvier", day: "3", station: "C", temp: "20"},
		row{month: "Janvier", day: "4", station: "A", temp: "14.9"},
		row{month: "Mars", day: "4", station: "B", temp: "30"},
	)
	c := query.Criteria{Stations: []string{"A", "B"}, Months: []int{1, 3}, MinTemp: 15}

	view := query.Apply(table, c)

	got := make([]string, 0, len(view))
	for _, r := range view {
		got = append(got, r.Station+"/"+r.DateLabel.String)
	}
	assert.Equal(t, []string{"A/01/01", "B/02/01", "B/04/03"}, got)

	// Every excluded record fails at least one predicate.
	for _, r := range table.Records() {
		included := false
		for _, v := range view {
			if v == r {
				included = true
			}
		}
		stationOK := r.Station == "A" || r.Station == "B"
		monthOK := r.Month == 1 || r.Month == 3
		tempOK := r.Temp.Valid && r.Temp.Float64 >= 15
		assert.Equal(t, stationOK && monthOK && tempOK, included, "%+v", r)
	}
}

func TestSummarize_EmptyViewHasAbsentMeans(t *testing.T) {
	s := query.Summarize(query.View{})

	assert.Equal(t, 0, s.DayCount)
	assert.False(t, s.AvgTemp.Valid)
	assert.False(t, s.AvgCO.Valid)
}

func TestSummarize_TrueZeroMeanIsPresent(t *testing.T) {
	table := buildTable(t,
		row{month: "Janvier", day: "1", station: "A", temp: "-1", co: "0"},
		row{month: "Janvier", day: "2", station: "A", temp: "1", co: "0"},
	)

	s := query.Summarize(query.Apply(table, query.Criteria{Stations: []string{"A"}, Months: []int{1}, MinTemp: -10}))

	assert.Equal(t, null.FloatFrom(0), s.AvgTemp)
	assert.Equal(t, null.FloatFrom(0), s.AvgCO)
}

func TestSummarize_InvalidDatesExcludedFromDayCount(t *testing.T) {
	table := buildTable(t,
		row{month: "Février", day: "30", station: "A", temp: "20"},
		row{month: "Février", day: "28", station: "A", temp: "20"},
		row{month: "Février", day: "28", hour: "5", station: "A", temp: "22"},
	)

	s := query.Summarize(query.Apply(table, query.Criteria{Stations: []string{"A"}, Months: []int{2}}))

	assert.Equal(t, 1, s.DayCount)
	assert.Equal(t, null.FloatFrom(20.7), s.AvgTemp)
}

func TestSummarize_Rounding(t *testing.T) {
	table := buildTable(t,
		row{month: "Mars", day: "1", station: "A", temp: "20.04", co: "1.111"},
		row{month: "Mars", day: "2", station: "A", temp: "20.1", co: "1.114"},
	)

	s := query.Summarize(query.Apply(table, query.Criteria{Stations: []string{"A"}, Months: []int{3}}))

	assert.InDelta(t, 20.1, s.AvgTemp.Float64, 1e-9)
	assert.InDelta(t, 1.11, s.AvgCO.Float64, 1e-9)
}

func TestSummarize_AllCOMissing(t *testing.T) {
	table := buildTable(t, row{month: "Mars", day: "1", station: "A", temp: "20", co: "NaN"})

	s := query.Summarize(query.Apply(table, query.Criteria{Stations: []string{"A"}, Months: []int{3}}))

	assert.True(t, s.AvgTemp.Valid)
	assert.False(t, s.AvgCO.Valid)
}

func TestGroupMeans_SkipsMissingValues(t *testing.T) {
	table := buildTable(t,
		row{month: "Avril", day: "1", station: "A", temp: "20", pm25: "10", pm10: "", co: "1", o3: ""},
		row{month: "Avril", day: "2", station: "A", temp: "20", pm25: "30", pm10: "", co: "3", o3: "5"},
		row{month: "Décembre", day: "2", station: "A", temp: "20", pm25: "7"},
	)

	groups := query.GroupMeans(query.Apply(table, query.Criteria{Stations: []string{"A"}, Months: []int{4, 12}}))
	query.SortGroups(groups)

	require.Len(t, groups, 2)
	april := groups[0]
	assert.Equal(t, 4, april.Month)
	assert.Equal(t, 2, april.Count)
	assert.Equal(t, null.FloatFrom(20), april.PM25)
	assert.False(t, april.PM10.Valid, "no PM10 readings in the group")
	assert.Equal(t, null.FloatFrom(2), april.CO)
	assert.Equal(t, null.FloatFrom(5), april.O3)
	assert.Equal(t, april.PM25, april.Mean(domain.PM25))

	assert.Equal(t, 12, groups[1].Month)
	assert.Equal(t, null.FloatFrom(7), groups[1].PM25)
}

func TestGroupMeans_EmptyView(t *testing.T) {
	assert.Empty(t, query.GroupMeans(query.View{}))
}

func TestCanonicalStations_ExcludesPlaceholders(t *testing.T) {
	table := buildTable(t,
		row{month: "1", day: "1", station: "B", temp: "1"},
		row{month: "1", day: "1", station: "nan", temp: "1"},
		row{month: "1", day: "1", station: "NaN", temp: "1"},
		row{month: "1", day: "1", station: "None", temp: "1"},
		row{month: "1", day: "1", station: "", temp: "1"},
		row{month: "1", day: "1", station: "A", temp: "1"},
		row{month: "1", day: "2", station: "B", temp: "1"},
	)

	assert.Equal(t, []string{"A", "B"}, query.CanonicalStations(table))
	assert.Equal(t, 7, table.Len(), "placeholder rows remain in the table")
}

func TestMonthsAndTempRange(t *testing.T) {
	table := buildTable(t,
		row{month: "Décembre", day: "1", station: "A", temp: "24.5"},
		row{month: "Janvier", day: "1", station: "A", temp: "18"},
		row{month: "Janvier", day: "2", station: "A", temp: ""},
		row{month: "Mars", day: "1", station: "A", temp: "31"},
	)

	assert.Equal(t, []int{1, 3, 12}, query.Months(table))

	low, high := query.TempRange(table)
	assert.Equal(t, null.FloatFrom(18), low)
	assert.Equal(t, null.FloatFrom(31), high)
}

func TestTempRange_NoTemperatures(t *testing.T) {
	table := buildTable(t, row{month: "1", day: "1", station: "A"})

	low, high := query.TempRange(table)
	assert.False(t, low.Valid)
	assert.False(t, high.Valid)
}

func TestDefaultCriteria_SelectsEverything(t *testing.T) {
	table := buildTable(t,
		row{month: "Janvier", day: "1", station: "A", temp: "18"},
		row{month: "Mars", day: "1", station: "B", temp: "12"},
		row{month: "Mars", day: "2", station: "none", temp: "40"},
	)

	c := query.DefaultCriteria(table)

	assert.Equal(t, []string{"A", "B"}, c.Stations)
	assert.Equal(t, []int{1, 3}, c.Months)
	assert.Equal(t, 12.0, c.MinTemp)
	assert.Len(t, query.Apply(table, c), 2)
}

func TestStationSeries_OrdersByDateThenHour(t *testing.T) {
	table := buildTable(t,
		row{month: "Mars", day: "2", hour: "1", station: "A", temp: "20"},
		row{month: "Mars", day: "1", hour: "23", station: "A", temp: "20"},
		row{month: "Mars", day: "1", hour: "4", station: "A", temp: "20"},
		row{month: "Mars", day: "1", hour: "4", station: "B", temp: "20"},
		row{month: "Avril", day: "31", hour: "0", station: "A", temp: "20"},
	)
	view := query.Apply(table, query.Criteria{Stations: []string{"A", "B"}, Months: []int{3, 4}})

	series := query.StationSeries(view, "A")

	require.Len(t, series, 3)
	assert.Equal(t, []int{4, 23, 1}, []int{series[0].Hour, series[1].Hour, series[2].Hour})
	assert.Equal(t, 1, series[0].Day)
	assert.Equal(t, 2, series[2].Day)
	// The source view keeps its own order.
	assert.Equal(t, 2, view[0].Day)
}

func TestRun_DoesNotMutateTable(t *testing.T) {
	table := twoStations(t)
	before := table.Records()

	res := query.Run(table, query.Criteria{Stations: []string{"A", "B"}, Months: []int{1}})
	res.View[0].Station = "changed"

	if diff := cmp.Diff(before, table.Records()); diff != "" {
		t.Fatalf("table changed (-before +after):\n%s", diff)
	}
}

func TestSummarize_OverflowingMeanIsAbsent(t *testing.T) {
	table := buildTable(t,
		row{month: "Janvier", day: "1", station: "B", temp: "20", co: "1e308", pm25: "1e308"},
		row{month: "Janvier", day: "2", station: "B", temp: "22", co: "1e308", pm25: "1e308"},
	)
	view := query.Apply(table, query.Criteria{Stations: []string{"B"}, Months: []int{1}})

	s := query.Summarize(view)
	assert.False(t, s.AvgCO.Valid)
	assert.Equal(t, null.FloatFrom(21), s.AvgTemp)

	groups := query.GroupMeans(view)
	require.Len(t, groups, 1)
	assert.False(t, groups[0].PM25.Valid)
	assert.False(t, groups[0].CO.Valid)
}

func TestCanonicalStations_TrimmedNames(t *testing.T) {
	table := buildTable(t,
		row{month: "Janvier", day: "1", station: "Station A ", temp: "20"},
		row{month: "Janvier", day: "2", station: " Station A", temp: "20"},
	)

	stations := query.CanonicalStations(table)
	assert.Equal(t, []string{"Station A"}, stations)
	assert.Len(t, query.Apply(table, query.Criteria{Stations: stations, Months: []int{1}}), 2)
}
