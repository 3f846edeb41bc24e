package employee

import (
	"context"

	"leave-tracker/internal/leave"
	"leave-tracker/internal/store"
)

// Repository is implemented by leave.Repository.
//
//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	StorageMode(ctx context.Context) store.Mode
	GetEmployeeOptions(ctx context.Context) ([]leave.EmployeeOption, error)
}
