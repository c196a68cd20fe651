package domain

import "time"

// Station is one physical monitoring site in the RMCAB network.
// Stations are slow-changing reference data owned by seeding; the ingestion
// pipeline only reads them.
type Station struct {
	ID        int64
	Name      string
	RMCABID   int64 // station identifier in the upstream network
	Latitude  float64
	Longitude float64
}

// Channel is one measured quantity at one station (upstream: "monitor").
// At most one Channel exists per (station, code) pair.
type Channel struct {
	ID        int64
	StationID int64
	Kind      string // e.g. "PM2.5", "Temperature"
	Code      string // upstream field key, e.g. "S_1_10"
	Unit      string // e.g. "µg/m3", "°C"
}

// Reading is one timestamped observation on one channel. The pipeline is
// the only writer; a Reading is never updated or deleted, and at most one
// exists per (channel, timestamp) pair.
type Reading struct {
	ChannelID int64
	TakenAt   time.Time
	Value     float64
}

// Window bounds a single fetch attempt. It is never persisted.
type Window struct {
	From        time.Time
	To          time.Time
	Granularity int // sampling granularity in minutes
}

// CycleSummary aggregates the outcome of one ingestion cycle.
type CycleSummary struct {
	StationsProcessed   int `json:"stations_processed"`
	RowsPersisted       int `json:"rows_persisted"`
	StationsWithoutData int `json:"stations_without_data"`
	Errors              int `json:"errors"`
}
