package query

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
	"github.com/StevenKehrli/Trelnex-sub007/internal/types"
)

// CreateResource registers a new resource. The write is conditional on the
// definition row not existing; a collision returns ErrResourceAlreadyExists.
func (e *engine) CreateResource(ctx context.Context, resourceName string) (types.Resource, error) {
	ctx, span := e.tracer.Start(ctx, "engine.CreateResource", trace.WithAttributes(
		attribute.String("resource", resourceName),
	))
	defer span.End()

	resource, err := e.resourceNames.Validate(resourceName)
	if err != nil {
		return types.Resource{}, spanFail(span, fmt.Errorf("%w: %q: %w", ErrInvalidResourceName, resourceName, err))
	}

	if err := e.store.CreateItem(ctx, storage.ResourceItem(resource)); err != nil {
		if isAlreadyExists(err) {
			return types.Resource{}, spanFail(span, fmt.Errorf("%w: %s", ErrResourceAlreadyExists, resource))
		}

		return types.Resource{}, spanFail(span, err)
	}

	return types.Resource{
		Name:       resource,
		ScopeNames: []string{},
		RoleNames:  []string{},
	}, nil
}

// GetResource returns the resource with its sorted scope and role name
// lists. The two definition list queries run concurrently.
func (e *engine) GetResource(ctx context.Context, resourceName string) (types.Resource, error) {
	ctx, span := e.tracer.Start(ctx, "engine.GetResource", trace.WithAttributes(
		attribute.String("resource", resourceName),
	))
	defer span.End()

	resource, err := e.resourceNames.Validate(resourceName)
	if err != nil {
		return types.Resource{}, spanFail(span, fmt.Errorf("%w: %q: %w", ErrInvalidResourceName, resourceName, err))
	}

	exists, err := e.resourceExists(ctx, resource)
	if err != nil {
		return types.Resource{}, spanFail(span, err)
	}

	if !exists {
		return types.Resource{}, spanFail(span, fmt.Errorf("%w: %s", ErrResourceNotFound, resource))
	}

	var scopeNames, roleNames []string

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		scopeNames, err = e.listScopes(groupCtx, resource)

		return err
	})

	group.Go(func() error {
		var err error
		roleNames, err = e.listRoles(groupCtx, resource)

		return err
	})

	if err := group.Wait(); err != nil {
		return types.Resource{}, spanFail(span, err)
	}

	return types.Resource{
		Name:       resource,
		ScopeNames: scopeNames,
		RoleNames:  roleNames,
	}, nil
}

// DeleteResource removes the resource and cascades over everything under it.
// The definition row is deleted first so that no new scopes, roles, or
// assignments can be created against the resource while the cascade runs.
// The sweeps run in parallel; failures are reported, never rolled back, and
// the operation is idempotent and re-runnable.
func (e *engine) DeleteResource(ctx context.Context, resourceName string) error {
	ctx, span := e.tracer.Start(ctx, "engine.DeleteResource", trace.WithAttributes(
		attribute.String("resource", resourceName),
	))
	defer span.End()

	resource, err := e.resourceNames.Validate(resourceName)
	if err != nil {
		return spanFail(span, fmt.Errorf("%w: %q: %w", ErrInvalidResourceName, resourceName, err))
	}

	if err := e.store.DeleteItems(ctx, []storage.Key{storage.ResourceKey(resource)}); err != nil {
		return spanFail(span, err)
	}

	sweeps := []func(context.Context, string) error{
		e.deleteScopeDefinitions,
		e.deleteRoleDefinitions,
		e.deleteScopeAssignmentsByResource,
		e.deleteRoleAssignmentsByResource,
	}

	errs := make([]error, len(sweeps))

	var wg sync.WaitGroup

	for i, sweep := range sweeps {
		wg.Add(1)

		go func() {
			defer wg.Done()

			errs[i] = sweep(ctx, resource)
		}()
	}

	wg.Wait()

	if err := multierr.Combine(errs...); err != nil {
		e.logger.Errorw("resource cascade incomplete; reissue the delete", "resource", resource, "error", err)

		return spanFail(span, err)
	}

	return nil
}

// listScopes returns the sorted scope names defined on the resource.
func (e *engine) listScopes(ctx context.Context, resource string) ([]string, error) {
	items, err := e.store.Query(ctx, storage.Query{
		PartitionKey:  storage.ResourcePartition(resource),
		SortKeyPrefix: storage.ScopePrefix(),
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(items))

	for _, item := range items {
		name, err := item.ScopeName()
		if err != nil {
			return nil, err
		}

		names = append(names, name)
	}

	sort.Strings(names)

	return names, nil
}

// listRoles returns the sorted role names defined on the resource.
func (e *engine) listRoles(ctx context.Context, resource string) ([]string, error) {
	items, err := e.store.Query(ctx, storage.Query{
		PartitionKey:  storage.ResourcePartition(resource),
		SortKeyPrefix: storage.RolePrefix(),
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(items))

	for _, item := range items {
		name, err := item.RoleName()
		if err != nil {
			return nil, err
		}

		names = append(names, name)
	}

	sort.Strings(names)

	return names, nil
}

// deleteScopeDefinitions removes every scope definition row of the resource.
func (e *engine) deleteScopeDefinitions(ctx context.Context, resource string) error {
	names, err := e.listScopes(ctx, resource)
	if err != nil {
		return err
	}

	keys := make([]storage.Key, 0, len(names))
	for _, name := range names {
		keys = append(keys, storage.ScopeKey(resource, name))
	}

	return e.store.DeleteItems(ctx, keys)
}

// deleteRoleDefinitions removes every role definition row of the resource.
func (e *engine) deleteRoleDefinitions(ctx context.Context, resource string) error {
	names, err := e.listRoles(ctx, resource)
	if err != nil {
		return err
	}

	keys := make([]storage.Key, 0, len(names))
	for _, name := range names {
		keys = append(keys, storage.RoleKey(resource, name))
	}

	return e.store.DeleteItems(ctx, keys)
}
