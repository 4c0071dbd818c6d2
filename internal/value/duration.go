package value

import "fmt"

// YearsMonthsDuration stores a signed count of months (the years-and-months
// duration subtype never carries a days/time component; the duration()
// conversion function discriminates the two duration families by content).
type YearsMonthsDuration struct {
	Months int64
}

func (YearsMonthsDuration) Kind() Kind { return KindYearsMonthsDuration }

func (d YearsMonthsDuration) String() string {
	m := d.Months
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	y := m / 12
	mo := m % 12
	body := "P"
	if y != 0 {
		body += fmt.Sprintf("%dY", y)
	}
	if mo != 0 || y == 0 {
		body += fmt.Sprintf("%dM", mo)
	}
	return `@"` + sign + body + `"`
}

// DaysTimeDuration stores a signed duration at nanosecond resolution.
type DaysTimeDuration struct {
	Nanos int64
}

func (DaysTimeDuration) Kind() Kind { return KindDaysTimeDuration }

func (d DaysTimeDuration) String() string {
	n := d.Nanos
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	const (
		nsPerSec = int64(1e9)
		nsPerMin = 60 * nsPerSec
		nsPerHr  = 60 * nsPerMin
		nsPerDay = 24 * nsPerHr
	)
	days := n / nsPerDay
	n -= days * nsPerDay
	hours := n / nsPerHr
	n -= hours * nsPerHr
	mins := n / nsPerMin
	n -= mins * nsPerMin
	secNanos := n
	secs := secNanos / nsPerSec
	fracNanos := int(secNanos % nsPerSec)

	body := "P"
	if days != 0 {
		body += fmt.Sprintf("%dD", days)
	}
	if hours != 0 || mins != 0 || secs != 0 || fracNanos != 0 {
		body += "T"
		if hours != 0 {
			body += fmt.Sprintf("%dH", hours)
		}
		if mins != 0 {
			body += fmt.Sprintf("%dM", mins)
		}
		if secs != 0 || fracNanos != 0 || (days == 0 && hours == 0 && mins == 0) {
			if fracNanos != 0 {
				body += fmt.Sprintf("%d%sS", secs, trimFrac(fracNanos))
			} else {
				body += fmt.Sprintf("%dS", secs)
			}
		}
	}
	if body == "P" {
		body = "P0D"
	}
	return `@"` + sign + body + `"`
}
