// Package domain models hourly air-quality sensor readings and the preparation
// stage that turns raw CSV rows into an immutable table of prepared records.
//
// # Data Source
//
// Readings come from a single CSV export of the Kaikai sensor network (one row
// per station per hour). The file is read in full at startup; there is no
// streaming or incremental ingestion.
//
// # Column Conventions
//
// Required columns:
//
//	month, day, hour, PM2.5, PM10, CO, O3, TEMP, PRES, DEWP, station
//
// Any other column (SO2, NO2, RAIN, wd, WSPM, ...) is ignored by projection.
//
// Month values are either localized (French) month names or integers:
//
//	"Janvier" → 1, "Février" → 2, ..., "Décembre" → 12
//	"3", "3.0" → 3
//
// Names are matched case-insensitively, with or without accents. A month that
// is neither a known name nor an integer in 1..12 aborts the load; see
// [NormalizeMonth].
//
// The file carries no year. Calendar dates are built from a configured
// reference year plus month and day, so they are only meaningful within one
// year. Combinations that do not exist in that year (31 April, 29 February in
// a non-leap year) produce an absent date rather than an error; see
// [CalendarDate].
//
// Missing values:
//
//	"", "NA", "NaN", "nan", "None", "<nil>" in a measurement column mean the
//	value was not measured. They become absent (null) values, never zero.
//
// Station placeholders:
//
//	"nan", "none" and the empty string (any case) are not real stations. Rows
//	carrying them stay in the table but are excluded from the canonical
//	station set; see [IsPlaceholderStation].
package domain
