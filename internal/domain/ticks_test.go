package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTicks_UnixEpoch(t *testing.T) {
	epoch := time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(621_355_968_000_000_000), ToTicks(epoch))
}

func TestToTicks_KnownInstant(t *testing.T) {
	// 2025-10-10T00:00:00-05:00 == 2025-10-10T05:00:00Z
	instant := time.Date(2025, time.October, 10, 0, 0, 0, 0, time.FixedZone("-05", -5*3600))
	assert.Equal(t, int64(638_956_692_000_000_000), ToTicks(instant))
}

func TestFromTicks_Localizes(t *testing.T) {
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	got := FromTicks(638_956_692_000_000_000, loc)
	assert.Equal(t, "2025-10-10T00:00:00-05:00", got.Format(time.RFC3339))
}

func TestTicks_PreUnixEpoch(t *testing.T) {
	instant := time.Date(1900, time.June, 15, 12, 30, 45, 0, time.UTC)
	assert.True(t, FromTicks(ToTicks(instant), time.UTC).Equal(instant))
}

func TestTicks_SubSecondResolution(t *testing.T) {
	// 100ns is the tick resolution; finer precision never occurs upstream.
	instant := time.Date(2025, time.March, 1, 8, 15, 30, 123_456_700, time.UTC)
	assert.True(t, FromTicks(ToTicks(instant), time.UTC).Equal(instant))
}

func TestTicks_RoundTripRandomInstants(t *testing.T) {
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	lo := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	hi := time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()

	for i := 0; i < 1000; i++ {
		sec := lo + rng.Int63n(hi-lo)
		instant := time.Unix(sec, 0).In(loc)

		back := FromTicks(ToTicks(instant), loc)
		require.True(t, back.Equal(instant), "round trip mismatch for %s: got %s", instant, back)
	}
}
