package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StevenKehrli/Trelnex-sub007/internal/query"
)

func TestCreateRoleAssignment(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateResource(ctx, "api://svc")
	require.NoError(t, err)
	_, err = engine.CreateRole(ctx, "api://svc", "reader")
	require.NoError(t, err)

	_, err = engine.CreateRoleAssignment(ctx, "api://other", "reader", "alice")
	assert.ErrorIs(t, err, query.ErrResourceNotFound)

	_, err = engine.CreateRoleAssignment(ctx, "api://svc", "writer", "alice")
	assert.ErrorIs(t, err, query.ErrRoleNotFound)

	assignment, err := engine.CreateRoleAssignment(ctx, "api://svc", "READER", "alice")
	require.NoError(t, err)
	assert.Equal(t, "reader", assignment.RoleName)
	assert.Equal(t, "alice", assignment.PrincipalID)

	principals, err := engine.GetPrincipalsForRole(ctx, "api://svc", "reader")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, principals)
}

func TestDeleteRoleAssignment(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateResource(ctx, "api://svc")
	require.NoError(t, err)
	_, err = engine.CreateScope(ctx, "api://svc", "prod")
	require.NoError(t, err)
	_, err = engine.CreateRole(ctx, "api://svc", "reader")
	require.NoError(t, err)
	_, err = engine.CreateScopeAssignment(ctx, "api://svc", "prod", "alice")
	require.NoError(t, err)
	_, err = engine.CreateRoleAssignment(ctx, "api://svc", "reader", "alice")
	require.NoError(t, err)

	before := store.Len()

	require.NoError(t, engine.DeleteRoleAssignment(ctx, "api://svc", "reader", "alice"))

	assert.Equal(t, before-2, store.Len())

	access, err := engine.GetPrincipalAccess(ctx, "alice", "api://svc")
	require.NoError(t, err)
	assert.Equal(t, []string{"prod"}, access.ScopeNames, "scope assignments are untouched")
	assert.Empty(t, access.RoleNames)

	require.NoError(t, engine.DeleteRoleAssignment(ctx, "api://svc", "reader", "alice"), "delete is idempotent")
}

func TestRoleAssignmentsAcrossResources(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	for _, resource := range []string{"api://svc", "api://billing"} {
		_, err := engine.CreateResource(ctx, resource)
		require.NoError(t, err)
		_, err = engine.CreateScope(ctx, resource, "prod")
		require.NoError(t, err)
		_, err = engine.CreateRole(ctx, resource, "reader")
		require.NoError(t, err)
		_, err = engine.CreateScopeAssignment(ctx, resource, "prod", "alice")
		require.NoError(t, err)
	}

	_, err := engine.CreateRoleAssignment(ctx, "api://svc", "reader", "alice")
	require.NoError(t, err)

	// The grant on one resource must not leak into another.
	access, err := engine.GetPrincipalAccess(ctx, "alice", "api://billing")
	require.NoError(t, err)
	assert.Empty(t, access.RoleNames)

	access, err = engine.GetPrincipalAccess(ctx, "alice", "api://svc")
	require.NoError(t, err)
	assert.Equal(t, []string{"reader"}, access.RoleNames)
}
