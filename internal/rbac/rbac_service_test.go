package rbac

import (
	"errors"
	"testing"

	"leave-tracker/internal/rbac/infra"
	"leave-tracker/internal/store"

	"github.com/casbin/casbin/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	perms []RolePermissionRow
	links []RoleInheritanceRow
	err   error
}

func (m *mockRepo) GetRolePermissions() ([]RolePermissionRow, error) {
	return m.perms, m.err
}

func (m *mockRepo) GetRoleInheritance() ([]RoleInheritanceRow, error) {
	return m.links, m.err
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	e, err := infra.NewEnforcer()
	require.NoError(t, err)
	return e
}

func TestRBACService_StaticPolicy(t *testing.T) {
	svc := NewService(NewStaticRepository(), newTestEnforcer(t))
	require.NoError(t, svc.LoadPolicy())

	cases := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{store.RoleEmployee, ResourceOwnLeaves, ActionRead, true},
		{store.RoleEmployee, ResourceProfile, ActionRead, true},
		{store.RoleAdmin, ResourceOwnLeaves, ActionRead, true},
		{store.RoleEmployee, ResourceOwnLeaves, "delete", false},
		{"guest", ResourceProfile, ActionRead, false},
		{"", ResourceProfile, ActionRead, false},
	}

	for _, tc := range cases {
		allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, allowed, "%s %s %s", tc.role, tc.resource, tc.action)
	}
}

func TestRBACService_LoadPolicyReplaces(t *testing.T) {
	repo := &mockRepo{perms: []RolePermissionRow{{Role: "auditor", Resource: "stats", Action: ActionRead}}}
	svc := NewService(repo, newTestEnforcer(t))
	require.NoError(t, svc.LoadPolicy())

	allowed, err := svc.Enforce("auditor", "stats", ActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	repo.perms = nil
	require.NoError(t, svc.LoadPolicy())

	allowed, err = svc.Enforce("auditor", "stats", ActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRBACService_LoadPolicyError(t *testing.T) {
	svc := NewService(&mockRepo{err: errors.New("policy unavailable")}, newTestEnforcer(t))
	assert.EqualError(t, svc.LoadPolicy(), "policy unavailable")
}
