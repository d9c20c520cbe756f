package membership

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownPlan is returned when a plan key is not sold under the policy
// being asked to resolve it.
var ErrUnknownPlan = errors.New("unknown membership plan")

// Plan is a named membership duration/price tier.
type Plan string

const (
	PlanDaily     Plan = "diaria"
	PlanWeekly    Plan = "semanal"
	PlanFortnight Plan = "quincenal"
	PlanMonthly   Plan = "mensual"
	PlanQuarterly Plan = "trimestral"
	PlanHalfYear  Plan = "semestral"
	PlanAnnual    Plan = "anual"
)

// TermPolicy selects how a plan's duration is added to a start date. The two
// policies are parallel deployment choices, not variants of one schedule:
// day-based branches sell short passes measured in calendar days, month-based
// branches sell long terms measured in calendar months.
type TermPolicy string

const (
	// TermPolicyDays adds a fixed number of calendar days per plan.
	TermPolicyDays TermPolicy = "days"
	// TermPolicyMonths adds calendar months per plan, preserving the
	// day-of-month and clamping at month-end overflow. A quarter is three
	// calendar months, never 90 days.
	TermPolicyMonths TermPolicy = "months"
)

var dayTerms = map[Plan]int{
	PlanDaily:     1,
	PlanWeekly:    7,
	PlanFortnight: 15,
	PlanMonthly:   30,
}

var monthTerms = map[Plan]int{
	PlanMonthly:   1,
	PlanQuarterly: 3,
	PlanHalfYear:  6,
	PlanAnnual:    12,
}

// Valid reports whether the policy is one of the two recognized values.
func (p TermPolicy) Valid() bool {
	return p == TermPolicyDays || p == TermPolicyMonths
}

// Plans returns the plan keys the policy can resolve, in sale order.
func (p TermPolicy) Plans() []Plan {
	switch p {
	case TermPolicyDays:
		return []Plan{PlanDaily, PlanWeekly, PlanFortnight, PlanMonthly}
	case TermPolicyMonths:
		return []Plan{PlanMonthly, PlanQuarterly, PlanHalfYear, PlanAnnual}
	}
	return nil
}

// EndDate resolves a plan's term under this policy and adds it to from.
// Unknown plan keys return ErrUnknownPlan.
func (p TermPolicy) EndDate(plan Plan, from time.Time) (time.Time, error) {
	switch p {
	case TermPolicyDays:
		days, ok := dayTerms[plan]
		if !ok {
			return time.Time{}, fmt.Errorf("%w: %q under day policy", ErrUnknownPlan, plan)
		}
		return from.AddDate(0, 0, days), nil
	case TermPolicyMonths:
		months, ok := monthTerms[plan]
		if !ok {
			return time.Time{}, fmt.Errorf("%w: %q under month policy", ErrUnknownPlan, plan)
		}
		return addMonthsClamped(from, months), nil
	}
	return time.Time{}, fmt.Errorf("unknown term policy %q", p)
}

// addMonthsClamped shifts t by the given number of calendar months. The
// day-of-month is preserved; when the target month is shorter, the result
// clamps to its last day. This deliberately avoids time.AddDate, which
// normalizes Jan 31 + 1 month into Mar 2/3.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := lastDayOfMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	hour, min, sec := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the following month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
