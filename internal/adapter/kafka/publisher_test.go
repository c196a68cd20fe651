package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sincov/airq-ingest-service/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	takenAt := time.Date(2025, time.October, 10, 13, 0, 0, 0, time.UTC)
	event := domain.ReadingEvent{
		StationID:   1,
		StationName: "Usaquen",
		ChannelID:   7,
		ChannelCode: "S_1_10",
		Kind:        "PM2.5",
		Unit:        "µg/m3",
		TakenAt:     takenAt,
		Value:       24.3,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("S_1_10"), msg.Key)
	assert.Contains(t, string(msg.Value), `"channel_code":"S_1_10"`)
	assert.Contains(t, string(msg.Value), `"value":24.3`)

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "station_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("1"), msg.Headers[0].Value)
	assert.Equal(t, "kind", msg.Headers[1].Key)
	assert.Equal(t, []byte("PM2.5"), msg.Headers[1].Value)
	assert.Equal(t, "taken_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(takenAt.Format(time.RFC3339)), msg.Headers[2].Value)
}
