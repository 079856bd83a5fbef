package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StevenKehrli/Trelnex-sub007/internal/validation"
)

func TestResourceNames(t *testing.T) {
	v := validation.ResourceNames()

	normalized, err := v.Validate("api://svc")
	require.NoError(t, err)
	assert.Equal(t, "api://svc", normalized)

	normalized, err = v.Validate("  API://SVC  ")
	require.NoError(t, err, "names normalize by trimming and lowercasing")
	assert.Equal(t, "api://svc", normalized)

	_, err = v.Validate("")
	assert.ErrorIs(t, err, validation.ErrEmptyName)

	_, err = v.Validate("   ")
	assert.ErrorIs(t, err, validation.ErrEmptyName)

	_, err = v.Validate("api#svc")
	assert.ErrorIs(t, err, validation.ErrInvalidCharacters, "the key separator is never a valid name character")

	_, err = v.Validate("api svc")
	assert.ErrorIs(t, err, validation.ErrInvalidCharacters)

	_, err = v.Validate(strings.Repeat("a", 256))
	assert.ErrorIs(t, err, validation.ErrNameTooLong)

	assert.False(t, v.IsDefault("api://svc"), "resources have no default name")
}

func TestScopeNames(t *testing.T) {
	v := validation.ScopeNames()

	normalized, err := v.Validate("Prod")
	require.NoError(t, err)
	assert.Equal(t, "prod", normalized)

	_, err = v.Validate(".hidden")
	assert.ErrorIs(t, err, validation.ErrInvalidCharacters, "user scope names cannot start with a dot")

	normalized, err = v.Validate(validation.DefaultScopeName)
	require.NoError(t, err, "the reserved default scope name is accepted")
	assert.Equal(t, validation.DefaultScopeName, normalized)
	assert.True(t, v.IsDefault(normalized))
	assert.False(t, v.IsDefault("prod"))
}

func TestRoleNames(t *testing.T) {
	v := validation.RoleNames()

	normalized, err := v.Validate("Reader")
	require.NoError(t, err)
	assert.Equal(t, "reader", normalized)

	_, err = v.Validate("rbac.create#")
	assert.ErrorIs(t, err, validation.ErrInvalidCharacters)

	assert.False(t, v.IsDefault(validation.DefaultScopeName), "roles have no default name")
}

func TestPrincipalIDs(t *testing.T) {
	v := validation.PrincipalIDs()

	normalized, err := v.Validate("arn:aws:iam::1:user/Alice")
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:iam::1:user/Alice", normalized, "principal case is preserved")

	_, err = v.Validate("")
	assert.ErrorIs(t, err, validation.ErrEmptyName)

	_, err = v.Validate("arn:aws#bad")
	assert.ErrorIs(t, err, validation.ErrInvalidCharacters)
}
