package query

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
	"github.com/StevenKehrli/Trelnex-sub007/internal/types"
)

// CreateScopeAssignment grants a principal a scope of a resource. The
// resource and scope are verified concurrently before both index rows are
// written as one batch. There is no transaction tying the verify to the
// write; an assignment orphaned by a concurrent definition delete is swept
// by the next cascade.
func (e *engine) CreateScopeAssignment(ctx context.Context, resourceName, scopeName, principalID string) (types.ScopeAssignment, error) {
	ctx, span := e.tracer.Start(ctx, "engine.CreateScopeAssignment", trace.WithAttributes(
		attribute.String("resource", resourceName),
		attribute.String("scope", scopeName),
		attribute.String("principal", principalID),
	))
	defer span.End()

	resource, scope, err := e.validScope(resourceName, scopeName)
	if err != nil {
		return types.ScopeAssignment{}, spanFail(span, err)
	}

	principal, err := e.validPrincipal(principalID)
	if err != nil {
		return types.ScopeAssignment{}, spanFail(span, err)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		exists, err := e.resourceExists(groupCtx, resource)
		if err != nil {
			return err
		}

		if !exists {
			return fmt.Errorf("%w: %s", ErrResourceNotFound, resource)
		}

		return nil
	})

	group.Go(func() error {
		item, err := e.store.GetItem(groupCtx, storage.ScopeKey(resource, scope))
		if err != nil {
			return err
		}

		if item == nil {
			return fmt.Errorf("%w: %s/%s", ErrScopeNotFound, resource, scope)
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		return types.ScopeAssignment{}, spanFail(span, err)
	}

	forward, mirror := storage.ScopeAssignmentItems(resource, scope, principal)

	if err := e.store.PutItems(ctx, []storage.Item{forward, mirror}); err != nil {
		return types.ScopeAssignment{}, spanFail(span, err)
	}

	return types.ScopeAssignment{
		ResourceName: resource,
		ScopeName:    scope,
		PrincipalID:  principal,
	}, nil
}

// DeleteScopeAssignment removes both index rows of the assignment in one
// batch. Absence is not an error.
func (e *engine) DeleteScopeAssignment(ctx context.Context, resourceName, scopeName, principalID string) error {
	ctx, span := e.tracer.Start(ctx, "engine.DeleteScopeAssignment", trace.WithAttributes(
		attribute.String("resource", resourceName),
		attribute.String("scope", scopeName),
		attribute.String("principal", principalID),
	))
	defer span.End()

	resource, scope, err := e.validScope(resourceName, scopeName)
	if err != nil {
		return spanFail(span, err)
	}

	principal, err := e.validPrincipal(principalID)
	if err != nil {
		return spanFail(span, err)
	}

	err = e.store.DeleteItems(ctx, []storage.Key{
		storage.ScopeAssignmentForwardKey(resource, scope, principal),
		storage.ScopeAssignmentMirrorKey(resource, scope, principal),
	})
	if err != nil {
		return spanFail(span, err)
	}

	return nil
}

// GetPrincipalsForScope returns the sorted principals holding the scope,
// answered by one prefix query on the resource partition.
func (e *engine) GetPrincipalsForScope(ctx context.Context, resourceName, scopeName string) ([]string, error) {
	ctx, span := e.tracer.Start(ctx, "engine.GetPrincipalsForScope", trace.WithAttributes(
		attribute.String("resource", resourceName),
		attribute.String("scope", scopeName),
	))
	defer span.End()

	resource, scope, err := e.validScope(resourceName, scopeName)
	if err != nil {
		return nil, spanFail(span, err)
	}

	items, err := e.store.Query(ctx, storage.Query{
		PartitionKey:  storage.ResourcePartition(resource),
		SortKeyPrefix: storage.ScopeAssignmentPrefix(scope),
	})
	if err != nil {
		return nil, spanFail(span, err)
	}

	principals := make([]string, 0, len(items))

	for _, item := range items {
		principal, err := item.PrincipalID()
		if err != nil {
			return nil, spanFail(span, err)
		}

		principals = append(principals, principal)
	}

	sort.Strings(principals)

	return principals, nil
}

// scopesForPrincipal returns the sorted scopes the principal holds on the
// resource, answered by one prefix query on the principal partition.
func (e *engine) scopesForPrincipal(ctx context.Context, principal, resource string) ([]string, error) {
	items, err := e.store.Query(ctx, storage.Query{
		PartitionKey:  storage.PrincipalPartition(principal),
		SortKeyPrefix: storage.ScopeAssignmentPrefix(resource),
	})
	if err != nil {
		return nil, err
	}

	scopes := make([]string, 0, len(items))

	for _, item := range items {
		scope, err := item.ScopeName()
		if err != nil {
			return nil, err
		}

		scopes = append(scopes, scope)
	}

	sort.Strings(scopes)

	return scopes, nil
}

// deleteScopeAssignmentsByPrincipal sweeps every scope assignment held by
// the principal, across all resources.
func (e *engine) deleteScopeAssignmentsByPrincipal(ctx context.Context, principal string) error {
	return e.sweepScopeAssignments(ctx, storage.Query{
		PartitionKey:  storage.PrincipalPartition(principal),
		SortKeyPrefix: storage.ScopeAssignmentPrefix(),
	})
}

// deleteScopeAssignmentsByResource sweeps every scope assignment on the
// resource, across all scopes and principals.
func (e *engine) deleteScopeAssignmentsByResource(ctx context.Context, resource string) error {
	return e.sweepScopeAssignments(ctx, storage.Query{
		PartitionKey:  storage.ResourcePartition(resource),
		SortKeyPrefix: storage.ScopeAssignmentPrefix(),
	})
}

// deleteScopeAssignmentsByScope sweeps every scope assignment referencing
// one scope of the resource.
func (e *engine) deleteScopeAssignmentsByScope(ctx context.Context, resource, scope string) error {
	return e.sweepScopeAssignments(ctx, storage.Query{
		PartitionKey:  storage.ResourcePartition(resource),
		SortKeyPrefix: storage.ScopeAssignmentPrefix(scope),
	})
}

// sweepScopeAssignments discovers assignments via the index aligned with the
// cascade pivot, fabricates the matching mirror keys from each row's
// attributes, and deletes the union in one batch. Half-linked assignments
// converge here: deleting an absent mirror row is a no-op.
func (e *engine) sweepScopeAssignments(ctx context.Context, query storage.Query) error {
	items, err := e.store.Query(ctx, query)
	if err != nil {
		return err
	}

	keys := make([]storage.Key, 0, 2*len(items))

	for _, item := range items {
		forward, mirror, err := storage.ScopeAssignmentKeys(item)
		if err != nil {
			return err
		}

		keys = append(keys, forward, mirror)
	}

	return e.store.DeleteItems(ctx, keys)
}

// validPrincipal validates and normalizes a principal id.
func (e *engine) validPrincipal(principalID string) (string, error) {
	principal, err := e.principalIDs.Validate(principalID)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidPrincipalID, principalID, err)
	}

	return principal, nil
}
