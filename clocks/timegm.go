package clocks

import (
	"time"
)

// Tm is a broken-down calendar time. Year is the full year and Month runs
// from 1 to 12. Fields may be out of range; they are normalized the way
// mktime does, so month 13 is January of the next year and day 0 is the
// last day of the previous month.
type Tm struct {
	Year  int
	Month int
	Day   int
	Hour  int
	Min   int
	Sec   int

	// Set by Normalize, ignored by Timegm.
	Wday int // days since Sunday, 0-6
	Yday int // days since January 1, 0-365
}

func (tm Tm) utc() time.Time {
	return time.Date(tm.Year, time.Month(tm.Month), tm.Day, tm.Hour, tm.Min, tm.Sec, 0, time.UTC)
}

// Timegm returns the seconds since the Unix epoch of tm read as UTC. There
// is no time zone or DST lookup and the process environment is never
// consulted.
func Timegm(tm Tm) int64 {
	return tm.utc().Unix()
}

// Normalize returns tm with every field brought into range and Wday and
// Yday filled in.
func Normalize(tm Tm) Tm {
	return fromTime(tm.utc())
}

// FromUnix is the inverse of Timegm.
func FromUnix(sec int64) Tm {
	return fromTime(time.Unix(sec, 0).UTC())
}

func fromTime(t time.Time) Tm {
	return Tm{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
		Hour:  t.Hour(),
		Min:   t.Minute(),
		Sec:   t.Second(),
		Wday:  int(t.Weekday()),
		Yday:  t.YearDay() - 1,
	}
}
