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

// CreateRoleAssignment grants a principal a role of a resource. The resource
// and role are verified concurrently before both index rows are written as
// one batch.
func (e *engine) CreateRoleAssignment(ctx context.Context, resourceName, roleName, principalID string) (types.RoleAssignment, error) {
	ctx, span := e.tracer.Start(ctx, "engine.CreateRoleAssignment", trace.WithAttributes(
		attribute.String("resource", resourceName),
		attribute.String("role", roleName),
		attribute.String("principal", principalID),
	))
	defer span.End()

	resource, role, err := e.validRole(resourceName, roleName)
	if err != nil {
		return types.RoleAssignment{}, spanFail(span, err)
	}

	principal, err := e.validPrincipal(principalID)
	if err != nil {
		return types.RoleAssignment{}, spanFail(span, err)
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
		item, err := e.store.GetItem(groupCtx, storage.RoleKey(resource, role))
		if err != nil {
			return err
		}

		if item == nil {
			return fmt.Errorf("%w: %s/%s", ErrRoleNotFound, resource, role)
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		return types.RoleAssignment{}, spanFail(span, err)
	}

	forward, mirror := storage.RoleAssignmentItems(resource, role, principal)

	if err := e.store.PutItems(ctx, []storage.Item{forward, mirror}); err != nil {
		return types.RoleAssignment{}, spanFail(span, err)
	}

	return types.RoleAssignment{
		ResourceName: resource,
		RoleName:     role,
		PrincipalID:  principal,
	}, nil
}

// DeleteRoleAssignment removes both index rows of the assignment in one
// batch. Absence is not an error.
func (e *engine) DeleteRoleAssignment(ctx context.Context, resourceName, roleName, principalID string) error {
	ctx, span := e.tracer.Start(ctx, "engine.DeleteRoleAssignment", trace.WithAttributes(
		attribute.String("resource", resourceName),
		attribute.String("role", roleName),
		attribute.String("principal", principalID),
	))
	defer span.End()

	resource, role, err := e.validRole(resourceName, roleName)
	if err != nil {
		return spanFail(span, err)
	}

	principal, err := e.validPrincipal(principalID)
	if err != nil {
		return spanFail(span, err)
	}

	err = e.store.DeleteItems(ctx, []storage.Key{
		storage.RoleAssignmentForwardKey(resource, role, principal),
		storage.RoleAssignmentMirrorKey(resource, role, principal),
	})
	if err != nil {
		return spanFail(span, err)
	}

	return nil
}

// GetPrincipalsForRole returns the sorted principals holding the role,
// answered by one prefix query on the resource partition.
func (e *engine) GetPrincipalsForRole(ctx context.Context, resourceName, roleName string) ([]string, error) {
	ctx, span := e.tracer.Start(ctx, "engine.GetPrincipalsForRole", trace.WithAttributes(
		attribute.String("resource", resourceName),
		attribute.String("role", roleName),
	))
	defer span.End()

	resource, role, err := e.validRole(resourceName, roleName)
	if err != nil {
		return nil, spanFail(span, err)
	}

	items, err := e.store.Query(ctx, storage.Query{
		PartitionKey:  storage.ResourcePartition(resource),
		SortKeyPrefix: storage.RoleAssignmentPrefix(role),
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

// rolesForPrincipal returns the sorted roles the principal holds on the
// resource, answered by one prefix query on the principal partition.
func (e *engine) rolesForPrincipal(ctx context.Context, principal, resource string) ([]string, error) {
	items, err := e.store.Query(ctx, storage.Query{
		PartitionKey:  storage.PrincipalPartition(principal),
		SortKeyPrefix: storage.RoleAssignmentPrefix(resource),
	})
	if err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(items))

	for _, item := range items {
		role, err := item.RoleName()
		if err != nil {
			return nil, err
		}

		roles = append(roles, role)
	}

	sort.Strings(roles)

	return roles, nil
}

// deleteRoleAssignmentsByPrincipal sweeps every role assignment held by the
// principal, across all resources.
func (e *engine) deleteRoleAssignmentsByPrincipal(ctx context.Context, principal string) error {
	return e.sweepRoleAssignments(ctx, storage.Query{
		PartitionKey:  storage.PrincipalPartition(principal),
		SortKeyPrefix: storage.RoleAssignmentPrefix(),
	})
}

// deleteRoleAssignmentsByResource sweeps every role assignment on the
// resource, across all roles and principals.
func (e *engine) deleteRoleAssignmentsByResource(ctx context.Context, resource string) error {
	return e.sweepRoleAssignments(ctx, storage.Query{
		PartitionKey:  storage.ResourcePartition(resource),
		SortKeyPrefix: storage.RoleAssignmentPrefix(),
	})
}

// deleteRoleAssignmentsByRole sweeps every role assignment referencing one
// role of the resource.
func (e *engine) deleteRoleAssignmentsByRole(ctx context.Context, resource, role string) error {
	return e.sweepRoleAssignments(ctx, storage.Query{
		PartitionKey:  storage.ResourcePartition(resource),
		SortKeyPrefix: storage.RoleAssignmentPrefix(role),
	})
}

// sweepRoleAssignments discovers assignments via the index aligned with the
// cascade pivot, fabricates the matching mirror keys from each row's
// attributes, and deletes the union in one batch.
func (e *engine) sweepRoleAssignments(ctx context.Context, query storage.Query) error {
	items, err := e.store.Query(ctx, query)
	if err != nil {
		return err
	}

	keys := make([]storage.Key, 0, 2*len(items))

	for _, item := range items {
		forward, mirror, err := storage.RoleAssignmentKeys(item)
		if err != nil {
			return err
		}

		keys = append(keys, forward, mirror)
	}

	return e.store.DeleteItems(ctx, keys)
}
