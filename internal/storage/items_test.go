package storage_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
)

func TestDefinitionKeys(t *testing.T) {
	resourceKey := storage.ResourceKey("api://svc")
	assert.Equal(t, "RESOURCE#api://svc", resourceKey.PartitionKey)
	assert.Equal(t, "RESOURCE", resourceKey.SortKey)

	scopeKey := storage.ScopeKey("api://svc", "prod")
	assert.Equal(t, "RESOURCE#api://svc", scopeKey.PartitionKey)
	assert.Equal(t, "SCOPE#prod", scopeKey.SortKey)

	roleKey := storage.RoleKey("api://svc", "reader")
	assert.Equal(t, "RESOURCE#api://svc", roleKey.PartitionKey)
	assert.Equal(t, "ROLE#reader", roleKey.SortKey)
}

func TestAssignmentItems(t *testing.T) {
	forward, mirror := storage.ScopeAssignmentItems("api://svc", "prod", "arn:aws:iam::1:user/u")

	assert.Equal(t, "PRINCIPAL#arn:aws:iam::1:user/u", forward.PartitionKey)
	assert.Equal(t, "SCOPEASSIGNMENT#api://svc#prod", forward.SortKey)
	assert.Equal(t, "RESOURCE#api://svc", mirror.PartitionKey)
	assert.Equal(t, "SCOPEASSIGNMENT#prod#arn:aws:iam::1:user/u", mirror.SortKey)

	assert.Equal(t, forward.Attributes, mirror.Attributes, "both index rows carry identical payloads")

	resource, err := forward.ResourceName()
	require.NoError(t, err)
	assert.Equal(t, "api://svc", resource)

	scope, err := forward.ScopeName()
	require.NoError(t, err)
	assert.Equal(t, "prod", scope)

	principal, err := forward.PrincipalID()
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:iam::1:user/u", principal)

	roleForward, roleMirror := storage.RoleAssignmentItems("api://svc", "reader", "arn:aws:iam::1:user/u")
	assert.Equal(t, "ROLEASSIGNMENT#api://svc#reader", roleForward.SortKey)
	assert.Equal(t, "ROLEASSIGNMENT#reader#arn:aws:iam::1:user/u", roleMirror.SortKey)
}

func TestAssignmentKeysFromEitherIndex(t *testing.T) {
	forward, mirror := storage.ScopeAssignmentItems("api://svc", "prod", "arn:aws:iam::1:user/u")

	forwardKey, mirrorKey, err := storage.ScopeAssignmentKeys(forward)
	require.NoError(t, err)
	assert.Equal(t, forward.Key(), forwardKey)
	assert.Equal(t, mirror.Key(), mirrorKey)

	forwardKey, mirrorKey, err = storage.ScopeAssignmentKeys(mirror)
	require.NoError(t, err, "mirror rows carry enough attributes to rebuild both keys")
	assert.Equal(t, forward.Key(), forwardKey)
	assert.Equal(t, mirror.Key(), mirrorKey)
}

func TestAssignmentKeysMalformed(t *testing.T) {
	item := storage.Item{
		PartitionKey: "RESOURCE#api://svc",
		SortKey:      "SCOPEASSIGNMENT#prod#arn:aws:iam::1:user/u",
		Attributes:   map[string]string{"_resourceName": "api://svc"},
	}

	_, _, err := storage.ScopeAssignmentKeys(item)
	assert.ErrorIs(t, err, storage.ErrMalformedItem)

	_, _, err = storage.RoleAssignmentKeys(item)
	assert.ErrorIs(t, err, storage.ErrMalformedItem)
}

// Prefix queries are only unambiguous if no marker-plus-separator is a
// prefix of another sort key kind. Enumerate the sort key shapes and check
// the prefixes used by the engine against each.
func TestPrefixDisambiguation(t *testing.T) {
	sortKeys := []string{
		storage.ResourceKey("r").SortKey,
		storage.ScopeKey("r", "s").SortKey,
		storage.RoleKey("r", "ro").SortKey,
		storage.ScopeAssignmentMirrorKey("r", "s", "p").SortKey,
		storage.RoleAssignmentMirrorKey("r", "ro", "p").SortKey,
	}

	matches := func(prefix string) int {
		var n int

		for _, sk := range sortKeys {
			if strings.HasPrefix(sk, prefix) {
				n++
			}
		}

		return n
	}

	assert.Equal(t, 1, matches(storage.ScopePrefix()), "SCOPE# must not match scope assignments")
	assert.Equal(t, 1, matches(storage.RolePrefix()), "ROLE# must not match role assignments")
	assert.Equal(t, 1, matches(storage.ScopeAssignmentPrefix()))
	assert.Equal(t, 1, matches(storage.RoleAssignmentPrefix()))
	assert.Equal(t, 1, matches(storage.ScopeAssignmentPrefix("s")))
	assert.Equal(t, 1, matches(storage.RoleAssignmentPrefix("ro")))
}

func TestAssignmentPrefixNarrowing(t *testing.T) {
	assert.Equal(t, "SCOPEASSIGNMENT#", storage.ScopeAssignmentPrefix())
	assert.Equal(t, "SCOPEASSIGNMENT#api://svc#", storage.ScopeAssignmentPrefix("api://svc"))
	assert.Equal(t, "ROLEASSIGNMENT#reader#", storage.RoleAssignmentPrefix("reader"))
}
