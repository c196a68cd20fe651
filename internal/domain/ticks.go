package domain

import "time"

const (
	ticksPerSecond = 10_000_000 // one tick is 100 nanoseconds

	// unixEpochTicks is the tick count at 1970-01-01T00:00:00Z, i.e. the
	// offset between the .NET epoch (0001-01-01T00:00:00Z) and Unix time.
	unixEpochTicks = 621_355_968_000_000_000
)

// ToTicks converts an instant to the upstream tick encoding: the number of
// 100-nanosecond intervals since 0001-01-01T00:00:00 UTC. Exact for any
// instant between year 1 and year 9999.
func ToTicks(t time.Time) int64 {
	return unixEpochTicks + t.Unix()*ticksPerSecond + int64(t.Nanosecond())/100
}

// FromTicks converts an upstream tick count back to an instant localized to
// loc. FromTicks(ToTicks(t), loc) equals t for any t expressible at tick
// resolution.
func FromTicks(ticks int64, loc *time.Location) time.Time {
	rel := ticks - unixEpochTicks
	sec := rel / ticksPerSecond
	rem := rel % ticksPerSecond
	if rem < 0 {
		sec--
		rem += ticksPerSecond
	}
	return time.Unix(sec, rem*100).In(loc)
}
