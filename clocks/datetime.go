package clocks

import (
	"time"
)

type Datetime struct {
	Seconds     uint64
	Nanoseconds uint32
}

// FromTime converts t to a Datetime. Instants before the epoch clamp to
// zero.
func FromTime(t time.Time) Datetime {
	if t.Unix() < 0 {
		return Datetime{}
	}
	return Datetime{
		Seconds:     uint64(t.Unix()),
		Nanoseconds: uint32(t.Nanosecond()),
	}
}

// FromTm converts a calendar time read as UTC.
func FromTm(tm Tm) Datetime {
	return FromTime(tm.utc())
}

// Time returns d as a UTC time.Time.
func (d Datetime) Time() time.Time {
	return time.Unix(int64(d.Seconds), int64(d.Nanoseconds)).UTC()
}

func Now() Datetime {
	return FromTime(time.Now())
}
