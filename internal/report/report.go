package report

import (
	"sort"
	"time"

	"gym-admin-backend/internal/membership"
	"gym-admin-backend/internal/model"
)

// recentLimit caps the recent-activity list on dashboards and reports.
const recentLimit = 5

// Report is the aggregated view of a branch over a reporting window. The
// caller fetches clients and check-ins already filtered by branch and date
// range; aggregation itself is pure.
type Report struct {
	TotalCheckins  int             `json:"totalCheckins"`
	ActiveCount    int             `json:"activeCount"`
	ExpiringCount  int             `json:"expiringCount"`
	ExpiredCount   int             `json:"expiredCount"`
	RecentCheckins []model.Checkin `json:"recentCheckins"`
	// FetchFailed marks a report built after the store could not be read.
	// Counts are zero and the recent list empty, never a crash.
	FetchFailed bool `json:"fetchFailed"`
}

// Aggregate reduces a branch's clients and check-ins to summary counts and
// the five most recent check-ins. Inputs are never mutated. Clients without
// a membership end date count in none of the three status buckets.
func Aggregate(clients []model.Client, checkins []model.Checkin, now time.Time) Report {
	r := Report{
		TotalCheckins:  len(checkins),
		RecentCheckins: recent(checkins),
	}

	for _, client := range clients {
		switch membership.Evaluate(client.MembershipEnd, now).Code {
		case membership.StatusActive:
			r.ActiveCount++
		case membership.StatusExpiring:
			r.ExpiringCount++
		case membership.StatusExpired:
			r.ExpiredCount++
		}
	}

	return r
}

// Failed returns the zero report with the failure flag raised, for use when
// the upstream fetch did not succeed.
func Failed() Report {
	return Report{RecentCheckins: []model.Checkin{}}.withFetchFailed()
}

func (r Report) withFetchFailed() Report {
	r.FetchFailed = true
	return r
}

// recent returns up to recentLimit check-ins sorted by timestamp descending.
// The sort is stable, so ties keep their input order. Check-ins whose
// timestamp the store has not assigned yet sort after all timestamped ones.
func recent(checkins []model.Checkin) []model.Checkin {
	sorted := make([]model.Checkin, len(checkins))
	copy(sorted, checkins)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Timestamp, sorted[j].Timestamp
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	return sorted
}

// FormatTimestamp renders a check-in instant as DD/MM HH:mm for the
// recent-activity table, or "-" while the store has not stamped it.
func FormatTimestamp(ts *time.Time) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	return ts.Format("02/01 15:04")
}
