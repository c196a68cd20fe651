// Package domain models air-quality telemetry from the RMCAB monitoring
// network (Red de Monitoreo de Calidad del Aire de Bogotá).
//
// # Data Source
//
// Readings originate from the RMCAB multi-station report endpoint
// (/Report/GetMultiStationsReportNewAsync), a GET API that returns per-hour
// averages for a set of stations and monitor channels over a time window.
// The response shape is not guaranteed: records usually arrive under a
// "Data" key, sometimes under "data" or "results", and occasionally as a
// bare JSON array.
//
// # Time Encodings
//
// The upstream API mixes at least four timestamp representations:
//
//	Tick counter:
//	  A 64-bit count of 100-nanosecond intervals since 0001-01-01T00:00:00
//	  UTC (the .NET epoch). Request windows are expressed this way, and
//	  some responses echo timestamps back as raw tick integers.
//	  See [ToTicks] and [FromTicks].
//
//	Day-month-year clock:
//	  "DD-MM-YYYY HH:MM", local time. The hour 24 marks end of day:
//	  "10-10-2025 24:00" means "11-10-2025 00:00". See [NormalizeTimestamp].
//
//	ISO-8601:
//	  With or without a UTC offset or Z suffix. Offset-less values are
//	  interpreted in the station's local zone (America/Bogota in production).
//
//	Unix seconds:
//	  Plain epoch-second integers, distinguished from ticks by magnitude.
//
// # Sentinel Tokens
//
// Summary rows appended to reports carry marker strings instead of
// timestamps ("Minimum", "Maximum", "Average", "Summary:", "MinDate", ...).
// A record bearing one of these has no instant and must be dropped, never
// defaulted to the current time: an earlier revision of the upstream
// consumer substituted "now" on parse failure and silently mis-dated data
// during format drift.
//
// Value fields use their own sentinels ("----", "N/A", "null", ...) for
// missing measurements; [SanitizeValue] rejects those along with anything
// outside the (-999999, 999999) sanity bound.
//
// # Channel Codes
//
// Each monitor channel has an upstream code of the form S_<station>_<n>,
// e.g. "S_1_10" for PM2.5 at station 1. Response field keys usually match a
// code exactly, but irregular reports truncate or re-prefix them, so
// [ResolveChannel] falls back to matching the code's final numeric segment
// as a key suffix. The fallback is a best-effort heuristic: a key matching
// two channels is flagged as ambiguous rather than resolved arbitrarily.
package domain
