package submission

import (
	"sort"

	"leave-tracker/internal/leave"
	"leave-tracker/internal/store"
)

// Candidate is a leave that has not been submitted yet.
type Candidate struct {
	UserID        store.ID
	Dates         []string
	LeaveDuration string
	HalfDayPeriod *string
}

func (c Candidate) halfDay() bool {
	return c.LeaveDuration == leave.DurationHalfDay
}

// blocksSlot reports whether a pending or approved leave occupies the part of
// the day the candidate asks for. Full days collide with everything; two half
// days only collide on the same period. A half-day record without a period is
// treated as covering the whole day.
func blocksSlot(c Candidate, l leave.Leave) bool {
	if l.Status != leave.StatusPending && l.Status != leave.StatusApproved {
		return false
	}
	if !c.halfDay() || !l.IsHalfDay() {
		return true
	}
	if c.HalfDayPeriod == nil || l.HalfDayPeriod == nil {
		return true
	}
	return *c.HalfDayPeriod == *l.HalfDayPeriod
}

// DetectConflicts maps each candidate date to the distinct names of other
// employees already on leave that day, in first-seen order. Dates without a
// conflict are absent. The result is advisory and never blocks submission.
func DetectConflicts(c Candidate, leaves []leave.Leave) map[string][]string {
	wanted := make(map[string]struct{}, len(c.Dates))
	for _, d := range c.Dates {
		wanted[d] = struct{}{}
	}

	out := map[string][]string{}
	seen := map[string]map[string]struct{}{}
	for _, l := range leaves {
		if !c.UserID.IsZero() && l.UserID.Equal(c.UserID) {
			continue
		}
		if !blocksSlot(c, l) {
			continue
		}
		for _, d := range l.Dates {
			if _, ok := wanted[d]; !ok {
				continue
			}
			if seen[d] == nil {
				seen[d] = map[string]struct{}{}
			}
			if _, dup := seen[d][l.EmployeeName]; dup {
				continue
			}
			seen[d][l.EmployeeName] = struct{}{}
			out[d] = append(out[d], l.EmployeeName)
		}
	}
	return out
}

// ConflictDates returns the conflicting dates in ascending order.
func ConflictDates(conflicts map[string][]string) []string {
	dates := make([]string, 0, len(conflicts))
	for d := range conflicts {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
