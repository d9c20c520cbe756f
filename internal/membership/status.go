package membership

import (
	"fmt"
	"time"
)

// Code identifies a derived membership standing.
type Code string

const (
	StatusInactive Code = "inactive"
	StatusExpired  Code = "expired"
	StatusExpiring Code = "expiring"
	StatusActive   Code = "active"
)

// expiringWindowDays is the number of days left (inclusive) at which a
// membership is flagged as about to expire.
const expiringWindowDays = 7

// Status is the classification of a client's membership at a point in time.
// It is recomputed on every read and never persisted.
type Status struct {
	Code  Code   `json:"code"`
	Label string `json:"label"`
	Color string `json:"color"`
	// DaysLeft is the whole calendar days between "now" and the end date.
	// Negative once expired; zero for inactive memberships.
	DaysLeft int `json:"daysLeft"`
}

// Evaluate classifies a membership end date against the supplied reference
// time. A nil or zero end date means the client has no membership. The
// comparison uses whole calendar days; time-of-day on either side is ignored.
func Evaluate(endDate *time.Time, now time.Time) Status {
	if endDate == nil || endDate.IsZero() {
		return Status{Code: StatusInactive, Label: "Sin membresía", Color: "#999"}
	}

	daysLeft := daysBetween(*endDate, now)

	switch {
	case daysLeft < 0:
		return Status{Code: StatusExpired, Label: "Vencida", Color: "#f44336", DaysLeft: daysLeft}
	case daysLeft <= expiringWindowDays:
		return Status{
			Code:     StatusExpiring,
			Label:    fmt.Sprintf("%d días", daysLeft),
			Color:    "#ff9800",
			DaysLeft: daysLeft,
		}
	default:
		return Status{Code: StatusActive, Label: "Activa", Color: "#4caf50", DaysLeft: daysLeft}
	}
}

// daysBetween returns the signed number of calendar days from now to end.
// Both instants are truncated to their date boundary first, so an end date
// one calendar day ahead yields 1 regardless of time-of-day.
func daysBetween(end, now time.Time) int {
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(n).Hours() / 24)
}

// FormatDate renders a calendar date as DD/MM/YYYY, or "-" when absent.
// Display only; classification never goes through this.
func FormatDate(date *time.Time) string {
	if date == nil || date.IsZero() {
		return "-"
	}
	return date.Format("02/01/2006")
}
