package leave

import (
	"time"

	"leave-tracker/internal/store"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	TypeCasual  = "casual"
	TypeMedical = "medical"
	TypeHalfDay = "halfday"
	TypeShort   = "short"

	DurationFullDay = "full_day"
	DurationHalfDay = "half_day"

	PeriodMorning = "morning"
	PeriodEvening = "evening"

	UnknownEmployee = "Unknown"
	EphemeralNote   = "In-memory data is ephemeral and will reset on function restart"
)

// Leave is a stored leave joined with its owner's name.
type Leave struct {
	ID              store.ID  `json:"id"`
	UserID          store.ID  `json:"user_id"`
	EmployeeName    string    `json:"employee_name"`
	LeaveType       string    `json:"leave_type"`
	LeaveDuration   string    `json:"leave_duration"`
	HalfDayPeriod   *string   `json:"half_day_period"`
	Dates           []string  `json:"dates"`
	Reason          string    `json:"reason"`
	CoveringOfficer *string   `json:"covering_officer"`
	Status          string    `json:"status"`
	AppliedAt       time.Time `json:"applied_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsHalfDay reports whether the leave covers only one half of each date.
func (l Leave) IsHalfDay() bool {
	return l.LeaveDuration == DurationHalfDay
}

type Employee struct {
	ID        store.ID  `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type EmployeeOption struct {
	ID             store.ID `json:"id"`
	Name           string   `json:"name"`
	PaysheetNumber *string  `json:"paysheet_number"`
}

// NewLeave is the coerced input of CreateLeave.
type NewLeave struct {
	UserID          store.ID
	LeaveType       string
	LeaveDuration   string
	HalfDayPeriod   *string
	Dates           []string
	Reason          string
	CoveringOfficer *string
}

type LeaveTypeBreakdown struct {
	Casual  int `json:"casual"`
	Medical int `json:"medical"`
	HalfDay int `json:"halfday"`
	Short   int `json:"short"`
}

type Stats struct {
	TotalEmployees     int                `json:"totalEmployees"`
	TotalLeaves        int                `json:"totalLeaves"`
	PendingLeaves      int                `json:"pendingLeaves"`
	ApprovedLeaves     int                `json:"approvedLeaves"`
	RejectedLeaves     int                `json:"rejectedLeaves"`
	LeaveTypeBreakdown LeaveTypeBreakdown `json:"leaveTypeBreakdown"`
}

type EmployeeStats struct {
	ID             store.ID `json:"id"`
	Name           string   `json:"name"`
	TotalLeaves    int      `json:"total_leaves"`
	ApprovedLeaves int      `json:"approved_leaves"`
	PendingLeaves  int      `json:"pending_leaves"`
	CasualLeaves   int      `json:"casual_leaves"`
	MedicalLeaves  int      `json:"medical_leaves"`
	HalfDayLeaves  int      `json:"halfday_leaves"`
	ShortLeaves    int      `json:"short_leaves"`
}

type ClearResult struct {
	DeletedCount int64
	Note         string
}
