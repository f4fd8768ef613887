package domain

import (
	"time"

	"github.com/guregu/null"
)

// RequiredColumns lists the CSV header names the preparation stage reads.
var RequiredColumns = []string{
	"month", "day", "hour",
	"PM2.5", "PM10", "CO", "O3",
	"TEMP", "PRES", "DEWP",
	"station",
}

// RawRecord is one CSV row as read from the source, before any parsing.
type RawRecord struct {
	Month   string `json:"month"`
	Day     string `json:"day"`
	Hour    string `json:"hour"`
	PM25    string `json:"PM2.5"`
	PM10    string `json:"PM10"`
	CO      string `json:"CO"`
	O3      string `json:"O3"`
	Temp    string `json:"TEMP"`
	Pres    string `json:"PRES"`
	Dewp    string `json:"DEWP"`
	Station string `json:"station"`
}

// Measurements holds the projected sensor values. Each one may be absent.
type Measurements struct {
	PM25 null.Float `json:"pm25"`
	PM10 null.Float `json:"pm10"`
	CO   null.Float `json:"co"`
	O3   null.Float `json:"o3"`
	Temp null.Float `json:"temp"`
	Pres null.Float `json:"pres"`
	Dewp null.Float `json:"dewp"`
}

// Pollutant names one of the charted measurement columns.
type Pollutant string

const (
	PM25 Pollutant = "PM2.5"
	PM10 Pollutant = "PM10"
	CO   Pollutant = "CO"
	O3   Pollutant = "O3"
)

// Pollutants are the four series charted per (month, station) group.
var Pollutants = []Pollutant{PM25, PM10, CO, O3}

// Value returns the measurement for p, or an absent value for unknown names.
func (m Measurements) Value(p Pollutant) null.Float {
	switch p {
	case PM25:
		return m.PM25
	case PM10:
		return m.PM10
	case CO:
		return m.CO
	case O3:
		return m.O3
	default:
		return null.Float{}
	}
}

// PreparedRecord is a cleaned, projected reading. CalendarDate and DateLabel
// are absent together when month and day do not form a real date.
type PreparedRecord struct {
	CalendarDate null.Time `json:"datetime"`
	Month        int       `json:"month"`
	Day          int       `json:"day"`
	Hour         int       `json:"hour"`
	Measurements
	Station   string      `json:"station"`
	DateLabel null.String `json:"date"`
}

// TableMeta describes how and when a PreparedTable was built.
type TableMeta struct {
	ReferenceYear int       `json:"reference_year"`
	LoadedAt      time.Time `json:"loaded_at"`
	Rows          int       `json:"rows"`
	InvalidDates  int       `json:"invalid_dates"`
}

// PreparedTable is the read-only result of the preparation stage. It is safe
// for concurrent readers; nothing mutates it after Prepare returns.
type PreparedTable struct {
	records []PreparedRecord
	meta    TableMeta
}

// NewPreparedTable copies records into a new table.
func NewPreparedTable(records []PreparedRecord, meta TableMeta) *PreparedTable {
	owned := make([]PreparedRecord, len(records))
	copy(owned, records)
	meta.Rows = len(owned)
	return &PreparedTable{records: owned, meta: meta}
}

// Len returns the number of records.
func (t *PreparedTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns a copy of the i-th record.
func (t *PreparedTable) At(i int) PreparedRecord {
	return t.records[i]
}

// Records returns a copy of every record in load order.
func (t *PreparedTable) Records() []PreparedRecord {
	if t == nil {
		return nil
	}
	out := make([]PreparedRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Meta returns load metadata.
func (t *PreparedTable) Meta() TableMeta {
	if t == nil {
		return TableMeta{}
	}
	return t.meta
}
