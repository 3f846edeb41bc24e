// Package submission reconstructs multi-record submissions from individual
// leave records and checks candidate dates against colleagues' leave.
//
// Everything here is pure: callers pass in the records and get derived views
// back. Nothing is persisted.
package submission

import (
	"sort"
	"time"

	"leave-tracker/internal/leave"
	"leave-tracker/internal/store"
)

// GroupWindow is the maximum applied_at distance between a seed record and
// the records folded into its submission.
const GroupWindow = 10 * time.Second

const (
	LabelFullDay = ""
	LabelMorning = "8am-12pm"
	LabelEvening = "12pm-4pm"
)

type TaggedDate struct {
	Date    string   `json:"date"`
	Label   string   `json:"label"`
	LeaveID store.ID `json:"leave_id"`
}

// Submission is one form submission as the employee saw it.
type Submission struct {
	ID              store.ID     `json:"id"`
	UserID          store.ID     `json:"user_id"`
	EmployeeName    string       `json:"employee_name"`
	LeaveType       string       `json:"leave_type"`
	Status          string       `json:"status"`
	Reason          string       `json:"reason"`
	CoveringOfficer *string      `json:"covering_officer"`
	AppliedAt       time.Time    `json:"applied_at"`
	Dates           []TaggedDate `json:"dates"`
	LeaveIDs        []store.ID   `json:"leave_ids"`
	// MixedStatus is set when member records no longer share one status.
	MixedStatus bool `json:"mixed_status"`
}

func PeriodLabel(l leave.Leave) string {
	if !l.IsHalfDay() || l.HalfDayPeriod == nil {
		return LabelFullDay
	}
	switch *l.HalfDayPeriod {
	case leave.PeriodMorning:
		return LabelMorning
	case leave.PeriodEvening:
		return LabelEvening
	}
	return LabelFullDay
}

func withinWindow(a, b time.Time) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d < GroupWindow
}

func sameOwner(a, b leave.Leave) bool {
	if !a.UserID.IsZero() && a.UserID.Equal(b.UserID) {
		return true
	}
	return a.EmployeeName != "" && a.EmployeeName == b.EmployeeName
}

// sameUser ignores employee names; two departed owners both read "Unknown".
func sameUser(a, b leave.Leave) bool {
	return !a.UserID.IsZero() && a.UserID.Equal(b.UserID)
}

// Group folds records into submissions by comparing each candidate against
// its seed only. Records are swept in input order; a record joins the first
// unprocessed seed that has the same owner and an applied_at less than
// GroupWindow away. The relation is not transitive: records 0s, 5s and 20s
// form two submissions even though each neighbour is close to the next.
func Group(records []leave.Leave) []Submission {
	processed := make([]bool, len(records))
	out := make([]Submission, 0, len(records))

	for i, seed := range records {
		if processed[i] {
			continue
		}
		processed[i] = true
		members := []leave.Leave{seed}

		for j, rec := range records {
			if processed[j] {
				continue
			}
			if sameOwner(seed, rec) && withinWindow(seed.AppliedAt, rec.AppliedAt) {
				processed[j] = true
				members = append(members, rec)
			}
		}
		out = append(out, build(members))
	}
	return out
}

// GroupTransitive clusters records into connected components of the
// "same user_id and within GroupWindow" relation. Submissions are ordered by
// their earliest member in input order, which also supplies the
// representative fields.
func GroupTransitive(records []leave.Leave) []Submission {
	parent := make([]int, len(records))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}

	for i := range records {
		for j := i + 1; j < len(records); j++ {
			if sameUser(records[i], records[j]) && withinWindow(records[i].AppliedAt, records[j].AppliedAt) {
				union(i, j)
			}
		}
	}

	order := []int{}
	components := map[int][]leave.Leave{}
	for i, rec := range records {
		root := find(i)
		if _, ok := components[root]; !ok {
			order = append(order, root)
		}
		components[root] = append(components[root], rec)
	}

	out := make([]Submission, 0, len(order))
	for _, root := range order {
		out = append(out, build(components[root]))
	}
	return out
}

// build takes representative fields from the first member.
func build(members []leave.Leave) Submission {
	seed := members[0]
	s := Submission{
		ID:              seed.ID,
		UserID:          seed.UserID,
		EmployeeName:    seed.EmployeeName,
		LeaveType:       seed.LeaveType,
		Status:          seed.Status,
		Reason:          seed.Reason,
		CoveringOfficer: seed.CoveringOfficer,
		AppliedAt:       seed.AppliedAt,
		Dates:           []TaggedDate{},
		LeaveIDs:        make([]store.ID, 0, len(members)),
	}
	for _, m := range members {
		s.LeaveIDs = append(s.LeaveIDs, m.ID)
		if m.Status != seed.Status {
			s.MixedStatus = true
		}
		label := PeriodLabel(m)
		for _, d := range m.Dates {
			s.Dates = append(s.Dates, TaggedDate{Date: d, Label: label, LeaveID: m.ID})
		}
	}
	sort.SliceStable(s.Dates, func(i, j int) bool {
		return s.Dates[i].Date < s.Dates[j].Date
	})
	return s
}
