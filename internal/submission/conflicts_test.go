package submission_test

import (
	"testing"

	"leave-tracker/internal/leave"
	"leave-tracker/internal/store"
	"leave-tracker/internal/submission"

	"github.com/stretchr/testify/assert"
)

func owned(l leave.Leave, user int64, name, status string) leave.Leave {
	l.UserID = store.IntID(user)
	l.EmployeeName = name
	l.Status = status
	return l
}

func TestDetectConflicts(t *testing.T) {
	leaves := []leave.Leave{
		owned(record(1, 0, 0, "2025-06-10", "2025-06-11"), 2, "Savindi", leave.StatusApproved),
		owned(record(2, 0, 0, "2025-06-10"), 3, "Senaka", leave.StatusPending),
		owned(record(3, 0, 0, "2025-06-10"), 4, "Apsara", leave.StatusRejected),
		owned(record(4, 0, 0, "2025-06-10"), 1, "Anudi", leave.StatusApproved),
		owned(record(5, 0, 0, "2025-06-11"), 2, "Savindi", leave.StatusPending),
	}

	t.Run("excludes self and rejected", func(t *testing.T) {
		got := submission.DetectConflicts(submission.Candidate{
			UserID: store.IntID(1),
			Dates:  []string{"2025-06-10", "2025-06-11", "2025-06-12"},
		}, leaves)

		assert.Equal(t, map[string][]string{
			"2025-06-10": {"Savindi", "Senaka"},
			"2025-06-11": {"Savindi"},
		}, got)
		assert.Equal(t, []string{"2025-06-10", "2025-06-11"}, submission.ConflictDates(got))
	})

	t.Run("no conflicts", func(t *testing.T) {
		got := submission.DetectConflicts(submission.Candidate{
			UserID: store.IntID(1),
			Dates:  []string{"2025-07-01"},
		}, leaves)
		assert.Empty(t, got)
		assert.Empty(t, submission.ConflictDates(got))
	})
}

func TestDetectConflicts_SelfMatchIgnoresHexCase(t *testing.T) {
	own := record(1, 0, 0, "2025-02-01")
	own.UserID = store.ParseID("65f1a2b3c4d5e6f7a8b9c03b")
	own.EmployeeName = "Anudi"
	own.Status = leave.StatusApproved

	got := submission.DetectConflicts(submission.Candidate{
		UserID: store.ParseID("65F1A2B3C4D5E6F7A8B9C03B"),
		Dates:  []string{"2025-02-01"},
	}, []leave.Leave{own})

	assert.Empty(t, got)
}

func TestDetectConflicts_HalfDays(t *testing.T) {
	leaves := []leave.Leave{
		owned(halfDay(record(1, 0, 0, "2025-06-10"), leave.PeriodMorning), 2, "Savindi", leave.StatusApproved),
	}

	cases := []struct {
		name      string
		candidate submission.Candidate
		want      bool
	}{
		{
			name:      "same period collides",
			candidate: submission.Candidate{UserID: store.IntID(1), Dates: []string{"2025-06-10"}, LeaveDuration: leave.DurationHalfDay, HalfDayPeriod: strPtr(leave.PeriodMorning)},
			want:      true,
		},
		{
			name:      "other period is free",
			candidate: submission.Candidate{UserID: store.IntID(1), Dates: []string{"2025-06-10"}, LeaveDuration: leave.DurationHalfDay, HalfDayPeriod: strPtr(leave.PeriodEvening)},
			want:      false,
		},
		{
			name:      "full day collides with any half day",
			candidate: submission.Candidate{UserID: store.IntID(1), Dates: []string{"2025-06-10"}, LeaveDuration: leave.DurationFullDay},
			want:      true,
		},
		{
			name:      "half day without period collides",
			candidate: submission.Candidate{UserID: store.IntID(1), Dates: []string{"2025-06-10"}, LeaveDuration: leave.DurationHalfDay},
			want:      true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := submission.DetectConflicts(tc.candidate, leaves)
			_, hit := got["2025-06-10"]
			assert.Equal(t, tc.want, hit)
		})
	}
}
