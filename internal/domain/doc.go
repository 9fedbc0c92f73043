// Package domain models weather observation data as it moves through the
// cleaning pipeline.
//
// # Data Source
//
// Input is a CSV file of daily weather observations, one row per city per
// date, with a header row naming the columns. Column names are configurable;
// the canonical names used throughout this package are:
//
//	city, date, temperature_celsius, humidity_percent, wind_speed_kph,
//	weather_condition
//
// # Data Conventions
//
// Dates appear in several formats in real exports. Parsing is attempted
// against a fixed ordered list of layouts, first match wins, independently
// per row:
//
//	2006-01-02   →  ISO / YYYY-MM-DD
//	01/02/2006   →  US / MM/DD/YYYY
//	2006/01/02   →  YYYY/MM/DD
//	Jan 2, 2006  →  spelled month
//
// Missing values:
//
//	Empty cells and the sentinels "NA", "N/A", "NaN", "None", "unknown" and
//	"Unknown" all mark a missing value. Numeric cells that fail to parse are
//	also treated as missing rather than failing the row.
//
// Weather conditions:
//
//	Free text, standardized during cleaning: trimmed, case-folded, and
//	collapsed into a canonical token set (Sunny, Cloudy, Partly Cloudy,
//	Rainy, Snowy, Stormy, Foggy, Windy). Anything unrecognized or empty
//	becomes the sentinel "Unknown", which marks the row for removal.
//
// Derived fields:
//
//	temperature_fahrenheit = temperature_celsius * 9/5 + 32, computed for
//	every surviving record. year/month/day are extracted from the parsed
//	date. None of these appear in the input.
//
// # Invariants
//
// After the full pipeline runs, every record has a date and a city, every
// numeric column present in the schema has a value (original or imputed), the
// condition is never "Unknown", and fahrenheit is consistent with celsius.
// [Table] carries the schema so validation can name missing columns exactly.
package domain
