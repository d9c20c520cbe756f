package report

import (
	"fmt"
	"time"
)

// Reporting periods the dashboard offers.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Window resolves a reporting period to an inclusive [from, to] interval for
// the store's check-in query. Today spans the current calendar day; week and
// month reach back 7 and 30 days. An empty period means today.
func Window(period string, now time.Time) (from, to time.Time, err error) {
	to = endOfDay(now)
	switch period {
	case "", PeriodToday:
		return startOfDay(now), to, nil
	case PeriodWeek:
		return startOfDay(now.AddDate(0, 0, -7)), to, nil
	case PeriodMonth:
		return startOfDay(now.AddDate(0, 0, -30)), to, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("unknown report period %q", period)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
