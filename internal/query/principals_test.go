package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StevenKehrli/Trelnex-sub007/internal/query"
)

func TestDeletePrincipal(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	// Grants on two resources, for two principals.
	for _, resource := range []string{"api://svc", "api://billing"} {
		_, err := engine.CreateResource(ctx, resource)
		require.NoError(t, err)
		_, err = engine.CreateScope(ctx, resource, "prod")
		require.NoError(t, err)
		_, err = engine.CreateRole(ctx, resource, "reader")
		require.NoError(t, err)

		for _, principal := range []string{"alice", "bob"} {
			_, err = engine.CreateScopeAssignment(ctx, resource, "prod", principal)
			require.NoError(t, err)
			_, err = engine.CreateRoleAssignment(ctx, resource, "reader", principal)
			require.NoError(t, err)
		}
	}

	require.NoError(t, engine.DeletePrincipal(ctx, "alice"))

	// Every grant of the principal is gone, on every resource.
	for _, resource := range []string{"api://svc", "api://billing"} {
		access, err := engine.GetPrincipalAccess(ctx, "alice", resource)
		require.NoError(t, err)
		assert.Empty(t, access.ScopeNames)
		assert.Empty(t, access.RoleNames)

		principals, err := engine.GetPrincipalsForScope(ctx, resource, "prod")
		require.NoError(t, err)
		assert.Equal(t, []string{"bob"}, principals, "other principals keep their grants")

		principals, err = engine.GetPrincipalsForRole(ctx, resource, "reader")
		require.NoError(t, err)
		assert.Equal(t, []string{"bob"}, principals)
	}

	require.NoError(t, engine.DeletePrincipal(ctx, "alice"), "delete is idempotent")

	err := engine.DeletePrincipal(ctx, " ")
	assert.ErrorIs(t, err, query.ErrInvalidPrincipalID)
}
