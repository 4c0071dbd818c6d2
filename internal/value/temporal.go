package value

import "fmt"

// Date is a calendar date with no time-of-day component.
type Date struct {
	Year, Month, Day int
}

func (Date) Kind() Kind { return KindDate }
func (d Date) String() string {
	return fmt.Sprintf(`@"%04d-%02d-%02d"`, d.Year, d.Month, d.Day)
}

// Offset distinguishes "no offset", a fixed UTC offset in minutes, and a
// named IANA zone. A time with offset `Z` and a time with named zone
// `@Etc/UTC` compare unequal even when they denote the same instant, so the
// zero value (OffsetNone) must never compare equal to an explicit
// zero-minute OffsetFixed, and OffsetFixed must never compare equal to
// OffsetNamed even at the same effective instant.
type OffsetKind uint8

const (
	OffsetNone OffsetKind = iota
	OffsetFixed
	OffsetNamed
)

// Time is a time-of-day value, optionally carrying a UTC offset or a named
// zone.
type Time struct {
	Hour, Minute, Second int
	Nanos                int
	OffsetKind           OffsetKind
	OffsetMinutes        int    // valid when OffsetKind == OffsetFixed
	Zone                 string // valid when OffsetKind == OffsetNamed
}

func (Time) Kind() Kind { return KindTime }

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanos != 0 {
		s += trimFrac(t.Nanos)
	}
	s += t.offsetSuffix()
	return `@"` + s + `"`
}

func (t Time) offsetSuffix() string {
	switch t.OffsetKind {
	case OffsetFixed:
		if t.OffsetMinutes == 0 {
			return "Z"
		}
		sign := "+"
		m := t.OffsetMinutes
		if m < 0 {
			sign = "-"
			m = -m
		}
		return fmt.Sprintf("%s%02d:%02d", sign, m/60, m%60)
	case OffsetNamed:
		return "@" + t.Zone
	default:
		return ""
	}
}

func trimFrac(nanos int) string {
	s := fmt.Sprintf("%09d", nanos)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s == "" {
		return ""
	}
	return "." + s
}

// DateTime combines Date and Time.
type DateTime struct {
	Date Date
	Time Time
}

func (DateTime) Kind() Kind { return KindDateTime }

func (dt DateTime) String() string {
	s := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", dt.Date.Year, dt.Date.Month, dt.Date.Day,
		dt.Time.Hour, dt.Time.Minute, dt.Time.Second)
	if dt.Time.Nanos != 0 {
		s += trimFrac(dt.Time.Nanos)
	}
	s += dt.Time.offsetSuffix()
	return `@"` + s + `"`
}

// totalNanos returns the time-of-day as nanoseconds since midnight, for
// comparison purposes (the offset is NOT applied; offsets take part in
// equality only, via the literal-equality rule in sameOffset, and Compare
// ignores them).
func (t Time) totalNanos() int64 {
	return int64(t.Hour)*3600e9 + int64(t.Minute)*60e9 + int64(t.Second)*1e9 + int64(t.Nanos)
}

// sameOffset reports whether two temporal offsets are literally identical:
// different textual offset forms never compare equal, even at the same
// instant.
func sameOffset(a, b Time) bool {
	if a.OffsetKind != b.OffsetKind {
		return false
	}
	switch a.OffsetKind {
	case OffsetFixed:
		return a.OffsetMinutes == b.OffsetMinutes
	case OffsetNamed:
		return a.Zone == b.Zone
	default:
		return true
	}
}
