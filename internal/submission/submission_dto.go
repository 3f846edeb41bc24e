package submission

import "leave-tracker/internal/leave"

const (
	ClusteringSeed       = "seed"
	ClusteringTransitive = "transitive"
)

type ListQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	UserID     string `form:"user_id"`
	Clustering string `form:"clustering" binding:"omitempty,oneof=seed transitive"`
}

type ConflictRequest struct {
	UserID        leave.FlexibleID `json:"user_id"`
	Dates         []string         `json:"dates" binding:"required,min=1,dive,datetime=2006-01-02"`
	LeaveDuration string           `json:"leave_duration" binding:"omitempty,oneof=full_day half_day"`
	HalfDayPeriod *string          `json:"half_day_period" binding:"omitempty,oneof=morning evening"`
}

type ConflictResponse struct {
	HasConflicts bool                `json:"has_conflicts"`
	Dates        []string            `json:"dates"`
	Conflicts    map[string][]string `json:"conflicts"`
}

type StatusRequest struct {
	IDs    []leave.FlexibleID `json:"ids" binding:"required,min=1"`
	Status string             `json:"status"`
}
