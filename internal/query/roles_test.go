package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StevenKehrli/Trelnex-sub007/internal/query"
	"github.com/StevenKehrli/Trelnex-sub007/internal/testingx"
	"github.com/StevenKehrli/Trelnex-sub007/internal/types"
)

type roleInput struct {
	resourceName string
	roleName     string
}

func TestCreateRole(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateResource(ctx, "api://svc")
	require.NoError(t, err)

	testCases := []testingx.TestCase[roleInput, types.Role]{
		{
			Name:  "ResourceNotFound",
			Input: roleInput{"api://other", "reader"},
			CheckFn: func(_ context.Context, t *testing.T, res testingx.TestResult[types.Role]) {
				assert.ErrorIs(t, res.Err, query.ErrResourceNotFound)
			},
		},
		{
			Name:  "Created",
			Input: roleInput{"api://svc", "reader"},
			CheckFn: func(_ context.Context, t *testing.T, res testingx.TestResult[types.Role]) {
				require.NoError(t, res.Err)
				assert.Equal(t, "api://svc", res.Success.ResourceName)
				assert.Equal(t, "reader", res.Success.Name)
			},
		},
		{
			Name:  "AlreadyExists",
			Input: roleInput{"api://svc", " Reader "},
			CheckFn: func(_ context.Context, t *testing.T, res testingx.TestResult[types.Role]) {
				assert.ErrorIs(t, res.Err, query.ErrRoleAlreadyExists)
			},
		},
		{
			Name:  "InvalidName",
			Input: roleInput{"api://svc", ""},
			CheckFn: func(_ context.Context, t *testing.T, res testingx.TestResult[types.Role]) {
				assert.ErrorIs(t, res.Err, query.ErrInvalidRoleName)
			},
		},
	}

	testFn := func(ctx context.Context, input roleInput) testingx.TestResult[types.Role] {
		role, err := engine.CreateRole(ctx, input.resourceName, input.roleName)

		return testingx.TestResult[types.Role]{Success: role, Err: err}
	}

	testingx.RunTests(ctx, t, testCases, testFn)
}

func TestGetRole(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateResource(ctx, "api://svc")
	require.NoError(t, err)
	_, err = engine.CreateRole(ctx, "api://svc", "reader")
	require.NoError(t, err)

	role, err := engine.GetRole(ctx, "api://svc", "reader")
	require.NoError(t, err)
	assert.Equal(t, "reader", role.Name)

	_, err = engine.GetRole(ctx, "api://svc", "writer")
	assert.ErrorIs(t, err, query.ErrRoleNotFound)
}

func TestDeleteRoleCascade(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	principal := "user@example.com"

	_, err := engine.CreateResource(ctx, "api://svc")
	require.NoError(t, err)
	_, err = engine.CreateScope(ctx, "api://svc", "prod")
	require.NoError(t, err)
	_, err = engine.CreateRole(ctx, "api://svc", "reader")
	require.NoError(t, err)
	_, err = engine.CreateRole(ctx, "api://svc", "writer")
	require.NoError(t, err)
	_, err = engine.CreateScopeAssignment(ctx, "api://svc", "prod", principal)
	require.NoError(t, err)
	_, err = engine.CreateRoleAssignment(ctx, "api://svc", "reader", principal)
	require.NoError(t, err)
	_, err = engine.CreateRoleAssignment(ctx, "api://svc", "writer", principal)
	require.NoError(t, err)

	require.NoError(t, engine.DeleteRole(ctx, "api://svc", "reader"))

	_, err = engine.GetRole(ctx, "api://svc", "reader")
	assert.ErrorIs(t, err, query.ErrRoleNotFound)

	principals, err := engine.GetPrincipalsForRole(ctx, "api://svc", "reader")
	require.NoError(t, err)
	assert.Empty(t, principals)

	access, err := engine.GetPrincipalAccess(ctx, principal, "api://svc")
	require.NoError(t, err)
	assert.Equal(t, []string{"writer"}, access.RoleNames, "sibling role assignments survive")

	require.NoError(t, engine.DeleteRole(ctx, "api://svc", "reader"), "delete is idempotent")
}
