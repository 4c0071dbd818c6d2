package value

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sosodev/duration"
)

var (
	dateRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	timeRe     = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(\.\d+)?(Z|z|[+-]\d{2}:\d{2}|@[A-Za-z_/]+)?$`)
	dateTimeRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})T(.+)$`)
)

// ParseTemporal parses the content of an `@"..."` temporal literal (or the
// string argument to the matching conversion BIF) into the Date, Time,
// DateTime, YearsMonthsDuration, or DaysTimeDuration it denotes. Which
// variant results is decided purely by the shape of the content, the same
// discrimination rule the `duration(...)`/`date(...)`/`time(...)`
// conversion functions use; there is no separate type tag in the source
// text.
func ParseTemporal(raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "P") || strings.HasPrefix(raw, "-P") {
		return parseDuration(raw)
	}
	if m := dateTimeRe.FindStringSubmatch(raw); m != nil {
		d, err := parseDate(m[1])
		if err != nil {
			return nil, err
		}
		t, err := parseTime(m[2])
		if err != nil {
			return nil, err
		}
		return DateTime{Date: d, Time: t}, nil
	}
	if dateRe.MatchString(raw) {
		d, err := parseDate(raw)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	if timeRe.MatchString(raw) {
		t, err := parseTime(raw)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("invalid temporal string %q", raw)
}

// ParseDate parses a bare "YYYY-MM-DD" string (the `date(str)` BIF form).
func ParseDate(s string) (Date, error) { return parseDate(s) }

// ParseTime parses a bare "HH:MM:SS[.fff][Z|±HH:MM|@Zone]" string (the
// `time(str)` BIF form).
func ParseTime(s string) (Time, error) { return parseTime(s) }

// ParseDateTime parses a bare "YYYY-MM-DDTHH:MM:SS..." string (the
// `date and time(str)` BIF form).
func ParseDateTime(s string) (DateTime, error) {
	m := dateTimeRe.FindStringSubmatch(s)
	if m == nil {
		return DateTime{}, fmt.Errorf("invalid date and time string %q", s)
	}
	d, err := parseDate(m[1])
	if err != nil {
		return DateTime{}, err
	}
	t, err := parseTime(m[2])
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{Date: d, Time: t}, nil
}

// ParseDuration parses an ISO-8601 duration string (the `duration(str)` BIF
// form), returning either a YearsMonthsDuration or a DaysTimeDuration value.
func ParseDuration(s string) (Value, error) { return parseDuration(s) }

func parseDate(s string) (Date, error) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return Date{}, fmt.Errorf("invalid date string %q", s)
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return Date{}, fmt.Errorf("invalid date string %q", s)
	}
	return Date{Year: y, Month: mo, Day: d}, nil
}

func parseTime(s string) (Time, error) {
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return Time{}, fmt.Errorf("invalid time string %q", s)
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	se, _ := strconv.Atoi(m[3])
	if h > 23 || mi > 59 || se > 59 {
		return Time{}, fmt.Errorf("invalid time string %q", s)
	}
	t := Time{Hour: h, Minute: mi, Second: se}
	if m[4] != "" {
		frac := m[4][1:]
		for len(frac) < 9 {
			frac += "0"
		}
		n, _ := strconv.Atoi(frac[:9])
		t.Nanos = n
	}
	switch off := m[5]; {
	case off == "":
		t.OffsetKind = OffsetNone
	case off == "Z" || off == "z":
		t.OffsetKind = OffsetFixed
		t.OffsetMinutes = 0
	case strings.HasPrefix(off, "@"):
		t.OffsetKind = OffsetNamed
		t.Zone = off[1:]
	default:
		sign := 1
		if off[0] == '-' {
			sign = -1
		}
		hh, _ := strconv.Atoi(off[1:3])
		mm, _ := strconv.Atoi(off[4:6])
		t.OffsetKind = OffsetFixed
		t.OffsetMinutes = sign * (hh*60 + mm)
	}
	return t, nil
}

func parseDuration(raw string) (Value, error) {
	neg := false
	body := raw
	if strings.HasPrefix(body, "-") {
		neg = true
		body = body[1:]
	}
	d, err := duration.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("invalid duration string %q", raw)
	}
	if d.Years != 0 || d.Months != 0 {
		months := int64(d.Years)*12 + int64(d.Months)
		if neg {
			months = -months
		}
		return YearsMonthsDuration{Months: months}, nil
	}
	secs := d.Weeks*7*24*3600 + d.Days*24*3600 + d.Hours*3600 + d.Minutes*60 + d.Seconds
	nanos := int64(secs * 1e9)
	if neg {
		nanos = -nanos
	}
	return DaysTimeDuration{Nanos: nanos}, nil
}
