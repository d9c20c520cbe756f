// Package roster implements the in-memory client list operations the mobile
// screens need: branch filtering, name/phone search, and the active-first
// ordering shown before a search narrows the list.
package roster

import (
	"sort"
	"strings"
	"time"

	"gym-admin-backend/internal/membership"
	"gym-admin-backend/internal/model"
)

// FilterByBranch returns the clients registered at the given branch, in
// input order. The input slice is not mutated.
func FilterByBranch(clients []model.Client, branchID string) []model.Client {
	filtered := make([]model.Client, 0, len(clients))
	for _, c := range clients {
		if c.BranchID == branchID {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Search matches clients whose name contains the term (case-insensitive) or
// whose phone contains it verbatim. A blank or whitespace-only term returns
// the full input roster rather than nothing.
func Search(clients []model.Client, term string) []model.Client {
	term = strings.TrimSpace(term)
	if term == "" {
		out := make([]model.Client, len(clients))
		copy(out, clients)
		return out
	}

	lowered := strings.ToLower(term)
	matched := make([]model.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), lowered) {
			matched = append(matched, c)
			continue
		}
		// Phone is numeric-like, matched raw.
		if c.Phone != "" && strings.Contains(c.Phone, term) {
			matched = append(matched, c)
		}
	}
	return matched
}

// SortActiveFirst returns the clients with currently active memberships ahead
// of everyone else. Only that partition is guaranteed: within each half the
// input order is preserved. The input slice is not mutated.
func SortActiveFirst(clients []model.Client, now time.Time) []model.Client {
	sorted := make([]model.Client, len(clients))
	copy(sorted, clients)

	sort.SliceStable(sorted, func(i, j int) bool {
		a := membership.Evaluate(sorted[i].MembershipEnd, now).Code == membership.StatusActive
		b := membership.Evaluate(sorted[j].MembershipEnd, now).Code == membership.StatusActive
		return a && !b
	})
	return sorted
}
