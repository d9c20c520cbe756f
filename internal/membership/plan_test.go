package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermPolicyDaysEndDate(t *testing.T) {
	from := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		plan Plan
		want time.Time
	}{
		{PlanDaily, time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)},
		{PlanWeekly, time.Date(2024, time.March, 22, 0, 0, 0, 0, time.UTC)},
		{PlanFortnight, time.Date(2024, time.March, 30, 0, 0, 0, 0, time.UTC)},
		{PlanMonthly, time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(string(tc.plan), func(t *testing.T) {
			got, err := TermPolicyDays.EndDate(tc.plan, from)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTermPolicyMonthsEndDate(t *testing.T) {
	from := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		plan Plan
		want time.Time
	}{
		{PlanMonthly, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)},
		{PlanQuarterly, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{PlanHalfYear, time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC)},
		{PlanAnnual, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(string(tc.plan), func(t *testing.T) {
			got, err := TermPolicyMonths.EndDate(tc.plan, from)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// A quarter is three calendar months, not ninety days. Feb makes the two
// diverge: Jan 15 + 3 months is Apr 15, while +90 days would land on Apr 14.
func TestQuarterIsCalendarMonthsNotNinetyDays(t *testing.T) {
	from := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	got, err := TermPolicyMonths.EndDate(PlanQuarterly, from)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), got)
	assert.NotEqual(t, from.AddDate(0, 0, 90), got)
}

func TestMonthEndClamping(t *testing.T) {
	testCases := []struct {
		name string
		from time.Time
		plan Plan
		want time.Time
	}{
		{
			name: "Jan 31 plus one month clamps to Feb 29 in a leap year",
			from: time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			plan: PlanMonthly,
			want: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Jan 31 plus one month clamps to Feb 28 otherwise",
			from: time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC),
			plan: PlanMonthly,
			want: time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "May 31 plus one month clamps to Jun 30",
			from: time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC),
			plan: PlanMonthly,
			want: time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Nov 30 plus a quarter crosses the year boundary intact",
			from: time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC),
			plan: PlanQuarterly,
			want: time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TermPolicyMonths.EndDate(tc.plan, tc.from)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Adding a month-based term and subtracting it again returns to the original
// day-of-month whenever that day exists in every month along the way.
func TestMonthArithmeticRoundTrip(t *testing.T) {
	from := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	for _, months := range []int{1, 3, 6, 12} {
		forward := addMonthsClamped(from, months)
		back := addMonthsClamped(forward, -months)
		assert.Equal(t, from, back, "round trip of %d months", months)
	}
}

func TestEndDateUnknownPlan(t *testing.T) {
	from := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	// Long plans are not sold under the day policy and vice versa.
	_, err := TermPolicyDays.EndDate(PlanQuarterly, from)
	assert.ErrorIs(t, err, ErrUnknownPlan)

	_, err = TermPolicyMonths.EndDate(PlanDaily, from)
	assert.ErrorIs(t, err, ErrUnknownPlan)

	_, err = TermPolicyDays.EndDate(Plan("vitalicia"), from)
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestTermPolicyPlans(t *testing.T) {
	assert.Equal(t, []Plan{PlanDaily, PlanWeekly, PlanFortnight, PlanMonthly}, TermPolicyDays.Plans())
	assert.Equal(t, []Plan{PlanMonthly, PlanQuarterly, PlanHalfYear, PlanAnnual}, TermPolicyMonths.Plans())
	assert.Nil(t, TermPolicy("weeks").Plans())

	assert.True(t, TermPolicyDays.Valid())
	assert.True(t, TermPolicyMonths.Valid())
	assert.False(t, TermPolicy("").Valid())
}
