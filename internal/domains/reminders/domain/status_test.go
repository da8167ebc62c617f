package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeriveStatus_Boundaries(t *testing.T) {
	now := time.Date(2024, time.March, 1, 18, 45, 0, 0, time.UTC)
	cases := []struct {
		dueDate string
		want    Status
	}{
		{dueDate: "2024-02-29", want: StatusOverdue},
		{dueDate: "2024-03-01", want: StatusUpcoming},
		{dueDate: "2024-03-08", want: StatusUpcoming},
		{dueDate: "2024-03-09", want: StatusFuture},
		{dueDate: "2023-01-01", want: StatusOverdue},
	}
	for _, tc := range cases {
		t.Run(tc.dueDate, func(t *testing.T) {
			r := mustReminder(t, tc.dueDate)
			require.Equal(t, tc.want, DeriveStatus(r, now))
		})
	}
}

func TestDeriveStatus_IgnoresTimeOfDay(t *testing.T) {
	r := mustReminder(t, "2024-03-01")
	early := time.Date(2024, time.March, 1, 0, 0, 1, 0, time.UTC)
	late := time.Date(2024, time.March, 1, 23, 59, 59, 0, time.UTC)
	require.Equal(t, StatusUpcoming, DeriveStatus(r, early))
	require.Equal(t, StatusUpcoming, DeriveStatus(r, late))
}

func TestDeriveStatus_UsesCalendarDateOfNowLocation(t *testing.T) {
	r := mustReminder(t, "2024-03-02")
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-03-01T20:00Z is already March 2nd in Tokyo.
	now := time.Date(2024, time.March, 2, 5, 0, 0, 0, tokyo)
	require.Equal(t, 0, DaysUntil(r.DueDate, now))
}

func TestDeriveStatus_CompletionDominates(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	for _, due := range []string{"1999-12-31", "2024-03-01", "2099-01-01"} {
		r := mustReminder(t, due)
		r.MarkCompleted(true)
		require.Equal(t, StatusCompleted, DeriveStatus(r, now), due)
	}
}

func TestDeriveStatus_IsIdempotent(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	r := mustReminder(t, "2024-03-05")
	before := *r
	first := DeriveStatus(r, now)
	second := DeriveStatus(r, now)
	require.Equal(t, first, second)
	require.Equal(t, before, *r)
}

func TestFilter_AgreesWithStatus(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	dates := []string{"2024-02-01", "2024-03-01", "2024-03-04", "2024-03-08", "2024-03-09", "2025-01-01"}
	var reminders []*Reminder
	for i, due := range dates {
		r := mustReminder(t, due)
		if i%2 == 0 {
			r.MarkCompleted(true)
		}
		reminders = append(reminders, r)
	}
	for _, f := range []Filter{FilterUpcoming, FilterOverdue, FilterFuture, FilterCompleted} {
		for _, r := range reminders {
			require.Equal(t, DeriveStatus(r, now) == Status(f), f.Matches(r, now), "%s %s", f, r.DueDateString())
		}
	}
	for _, r := range reminders {
		require.True(t, FilterAll.Matches(r, now))
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	require.Equal(t, FilterAll, f)

	f, err = ParseFilter("overdue")
	require.NoError(t, err)
	require.Equal(t, FilterOverdue, f)

	_, err = ParseFilter("soon")
	require.ErrorIs(t, err, ErrInvalidFilter)
}
