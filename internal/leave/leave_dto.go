package leave

import (
	"bytes"
	"encoding/json"
)

// FlexibleID accepts an identifier sent either as a JSON string or a number.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

type CreateLeaveRequest struct {
	UserID          FlexibleID `json:"user_id" binding:"required"`
	LeaveType       string     `json:"leave_type" binding:"omitempty,oneof=casual medical halfday short"`
	LeaveDuration   string     `json:"leave_duration" binding:"omitempty,oneof=full_day half_day"`
	HalfDayPeriod   *string    `json:"half_day_period" binding:"omitempty,oneof=morning evening"`
	Dates           []string   `json:"dates" binding:"required,min=1,dive,datetime=2006-01-02"`
	Reason          string     `json:"reason"`
	CoveringOfficer string     `json:"covering_officer" binding:"required"`
}

type UpdateStatusRequest struct {
	ID     FlexibleID `json:"id"`
	Status string     `json:"status"`
}

type DeleteLeaveRequest struct {
	ID FlexibleID `json:"id"`
}

type BatchStatusRequest struct {
	IDs    []FlexibleID `json:"ids"`
	Status string       `json:"status"`
}

type CreateLeaveResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Leave   Leave  `json:"leave"`
}

const (
	BatchUpdated  = "updated"
	BatchNotFound = "not_found"
	BatchError    = "error"
)

type BatchItemResult struct {
	ID     string `json:"id"`
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

type BatchResult struct {
	Status  string            `json:"status"`
	Results []BatchItemResult `json:"results"`
}

// AllUpdated is false when any id was missing or failed.
func (b BatchResult) AllUpdated() bool {
	for _, r := range b.Results {
		if r.Result != BatchUpdated {
			return false
		}
	}
	return true
}
