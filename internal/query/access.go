package query

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
	"github.com/StevenKehrli/Trelnex-sub007/internal/types"
)

// GetPrincipalAccess computes the principal's full membership on the
// resource: every scope assigned to it plus the effective role names.
func (e *engine) GetPrincipalAccess(ctx context.Context, principalID, resourceName string) (types.PrincipalAccess, error) {
	ctx, span := e.tracer.Start(ctx, "engine.GetPrincipalAccess", trace.WithAttributes(
		attribute.String("principal", principalID),
		attribute.String("resource", resourceName),
	))
	defer span.End()

	access, err := e.principalAccess(ctx, principalID, resourceName, "")
	if err != nil {
		return types.PrincipalAccess{}, spanFail(span, err)
	}

	return access, nil
}

// GetPrincipalScopedAccess computes the principal's membership on the
// resource narrowed to one scope. The reserved default scope name is
// equivalent to the unscoped variant; any other scope must exist.
func (e *engine) GetPrincipalScopedAccess(ctx context.Context, principalID, resourceName, scopeName string) (types.PrincipalAccess, error) {
	ctx, span := e.tracer.Start(ctx, "engine.GetPrincipalScopedAccess", trace.WithAttributes(
		attribute.String("principal", principalID),
		attribute.String("resource", resourceName),
		attribute.String("scope", scopeName),
	))
	defer span.End()

	scope, err := e.scopeNames.Validate(scopeName)
	if err != nil {
		return types.PrincipalAccess{}, spanFail(span, fmt.Errorf("%w: %q: %w", ErrInvalidScopeName, scopeName, err))
	}

	// The default scope gates nothing; treat it as the unscoped call.
	if e.scopeNames.IsDefault(scope) {
		scope = ""
	}

	access, err := e.principalAccess(ctx, principalID, resourceName, scope)
	if err != nil {
		return types.PrincipalAccess{}, spanFail(span, err)
	}

	return access, nil
}

// principalAccess joins the principal's scope and role assignments on the
// resource. The two index lookups run concurrently; the first failure
// cancels the other. An empty (filtered) scope list forces the role list
// empty: a principal with no live scope assignments has no effective roles.
func (e *engine) principalAccess(ctx context.Context, principalID, resourceName, scopeFilter string) (types.PrincipalAccess, error) {
	principal, err := e.validPrincipal(principalID)
	if err != nil {
		return types.PrincipalAccess{}, err
	}

	resource, err := e.resourceNames.Validate(resourceName)
	if err != nil {
		return types.PrincipalAccess{}, fmt.Errorf("%w: %q: %w", ErrInvalidResourceName, resourceName, err)
	}

	exists, err := e.resourceExists(ctx, resource)
	if err != nil {
		return types.PrincipalAccess{}, err
	}

	if !exists {
		return types.PrincipalAccess{}, fmt.Errorf("%w: %s", ErrResourceNotFound, resource)
	}

	if scopeFilter != "" {
		item, err := e.store.GetItem(ctx, storage.ScopeKey(resource, scopeFilter))
		if err != nil {
			return types.PrincipalAccess{}, err
		}

		if item == nil {
			return types.PrincipalAccess{}, fmt.Errorf("%w: %s/%s", ErrScopeNotFound, resource, scopeFilter)
		}
	}

	var scopeNames, roleNames []string

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		scopeNames, err = e.scopesForPrincipal(groupCtx, principal, resource)

		return err
	})

	group.Go(func() error {
		var err error
		roleNames, err = e.rolesForPrincipal(groupCtx, principal, resource)

		return err
	})

	if err := group.Wait(); err != nil {
		return types.PrincipalAccess{}, err
	}

	if scopeFilter != "" {
		scopeNames = filterName(scopeNames, scopeFilter)
	}

	if len(scopeNames) == 0 {
		scopeNames = []string{}
		roleNames = []string{}
	}

	return types.PrincipalAccess{
		PrincipalID:  principal,
		ResourceName: resource,
		ScopeNames:   scopeNames,
		RoleNames:    roleNames,
	}, nil
}

// filterName narrows names to the single matching entry, yielding a zero or
// one element list.
func filterName(names []string, match string) []string {
	for _, name := range names {
		if name == match {
			return []string{name}
		}
	}

	return []string{}
}
