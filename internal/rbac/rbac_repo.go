package rbac

import "leave-tracker/internal/store"

const (
	ResourceOwnLeaves = "own_leaves"
	ResourceProfile   = "profile"

	ActionRead = "read"
)

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

// RoleInheritanceRow grants Role every permission of Inherits.
type RoleInheritanceRow struct {
	Role     string
	Inherits string
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions() ([]RolePermissionRow, error)
	GetRoleInheritance() ([]RoleInheritanceRow, error)
}

type staticRepository struct{}

// NewStaticRepository serves the fixed policy of the application. Roles are
// stored on the user record, so there is nothing to read from the database.
func NewStaticRepository() Repository {
	return staticRepository{}
}

func (staticRepository) GetRolePermissions() ([]RolePermissionRow, error) {
	return []RolePermissionRow{
		{Role: store.RoleEmployee, Resource: ResourceOwnLeaves, Action: ActionRead},
		{Role: store.RoleEmployee, Resource: ResourceProfile, Action: ActionRead},
	}, nil
}

func (staticRepository) GetRoleInheritance() ([]RoleInheritanceRow, error) {
	return []RoleInheritanceRow{
		{Role: store.RoleAdmin, Inherits: store.RoleEmployee},
	}, nil
}
