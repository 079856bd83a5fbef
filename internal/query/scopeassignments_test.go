package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StevenKehrli/Trelnex-sub007/internal/query"
)

func TestCreateScopeAssignment(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateResource(ctx, "api://svc")
	require.NoError(t, err)
	_, err = engine.CreateScope(ctx, "api://svc", "prod")
	require.NoError(t, err)

	_, err = engine.CreateScopeAssignment(ctx, "api://other", "prod", "alice")
	assert.ErrorIs(t, err, query.ErrResourceNotFound)

	_, err = engine.CreateScopeAssignment(ctx, "api://svc", "dev", "alice")
	assert.ErrorIs(t, err, query.ErrScopeNotFound)

	_, err = engine.CreateScopeAssignment(ctx, "api://svc", "prod", "  ")
	assert.ErrorIs(t, err, query.ErrInvalidPrincipalID)

	assignment, err := engine.CreateScopeAssignment(ctx, "api://svc", "prod", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "api://svc", assignment.ResourceName)
	assert.Equal(t, "prod", assignment.ScopeName)
	assert.Equal(t, "Alice", assignment.PrincipalID, "principal ids keep their case")

	// Granting the same assignment again overwrites in place.
	_, err = engine.CreateScopeAssignment(ctx, "api://svc", "prod", "Alice")
	require.NoError(t, err)

	principals, err := engine.GetPrincipalsForScope(ctx, "api://svc", "prod")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, principals)
}

func TestScopeAssignmentDualIndex(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateResource(ctx, "api://svc")
	require.NoError(t, err)
	_, err = engine.CreateScope(ctx, "api://svc", "prod")
	require.NoError(t, err)

	for _, principal := range []string{"carol", "alice", "bob"} {
		_, err := engine.CreateScopeAssignment(ctx, "api://svc", "prod", principal)
		require.NoError(t, err)
	}

	// The mirror index answers scope to principals.
	principals, err := engine.GetPrincipalsForScope(ctx, "api://svc", "prod")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, principals)

	// The forward index answers principal to scopes.
	for _, principal := range principals {
		access, err := engine.GetPrincipalAccess(ctx, principal, "api://svc")
		require.NoError(t, err)
		assert.Equal(t, []string{"prod"}, access.ScopeNames)
	}
}

func TestDeleteScopeAssignment(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateResource(ctx, "api://svc")
	require.NoError(t, err)
	_, err = engine.CreateScope(ctx, "api://svc", "prod")
	require.NoError(t, err)
	_, err = engine.CreateScopeAssignment(ctx, "api://svc", "prod", "alice")
	require.NoError(t, err)

	before := store.Len()

	require.NoError(t, engine.DeleteScopeAssignment(ctx, "api://svc", "prod", "alice"))

	assert.Equal(t, before-2, store.Len(), "both index rows go in one delete")

	principals, err := engine.GetPrincipalsForScope(ctx, "api://svc", "prod")
	require.NoError(t, err)
	assert.Empty(t, principals)

	access, err := engine.GetPrincipalAccess(ctx, "alice", "api://svc")
	require.NoError(t, err)
	assert.Empty(t, access.ScopeNames)

	require.NoError(t, engine.DeleteScopeAssignment(ctx, "api://svc", "prod", "alice"), "delete is idempotent")
}

func TestScopeAssignmentsIsolatedPerScope(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateResource(ctx, "api://svc")
	require.NoError(t, err)
	_, err = engine.CreateScope(ctx, "api://svc", "prod")
	require.NoError(t, err)
	_, err = engine.CreateScope(ctx, "api://svc", "prod-eu")
	require.NoError(t, err)

	_, err = engine.CreateScopeAssignment(ctx, "api://svc", "prod-eu", "alice")
	require.NoError(t, err)

	// "prod" must not match assignments of the longer "prod-eu" name.
	principals, err := engine.GetPrincipalsForScope(ctx, "api://svc", "prod")
	require.NoError(t, err)
	assert.Empty(t, principals)
}
