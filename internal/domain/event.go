package domain

import "time"

// ReadingEvent is the serialized form of a newly persisted Reading, carrying
// enough station and channel context for downstream consumers (reporting,
// forecasting) to use it without a database join.
type ReadingEvent struct {
	StationID   int64     `json:"station_id"`
	StationName string    `json:"station_name"`
	ChannelID   int64     `json:"channel_id"`
	ChannelCode string    `json:"channel_code"`
	Kind        string    `json:"kind"`
	Unit        string    `json:"unit,omitempty"`
	TakenAt     time.Time `json:"taken_at"`
	Value       float64   `json:"value"`
}
