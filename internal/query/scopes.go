package query

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
	"github.com/StevenKehrli/Trelnex-sub007/internal/types"
)

// CreateScope registers a new scope under an existing resource. A missing
// resource is ErrResourceNotFound, never ErrScopeAlreadyExists.
func (e *engine) CreateScope(ctx context.Context, resourceName, scopeName string) (types.Scope, error) {
	ctx, span := e.tracer.Start(ctx, "engine.CreateScope", trace.WithAttributes(
		attribute.String("resource", resourceName),
		attribute.String("scope", scopeName),
	))
	defer span.End()

	resource, scope, err := e.validScope(resourceName, scopeName)
	if err != nil {
		return types.Scope{}, spanFail(span, err)
	}

	exists, err := e.resourceExists(ctx, resource)
	if err != nil {
		return types.Scope{}, spanFail(span, err)
	}

	if !exists {
		return types.Scope{}, spanFail(span, fmt.Errorf("%w: %s", ErrResourceNotFound, resource))
	}

	if err := e.store.CreateItem(ctx, storage.ScopeItem(resource, scope)); err != nil {
		if isAlreadyExists(err) {
			return types.Scope{}, spanFail(span, fmt.Errorf("%w: %s/%s", ErrScopeAlreadyExists, resource, scope))
		}

		return types.Scope{}, spanFail(span, err)
	}

	return types.Scope{ResourceName: resource, Name: scope}, nil
}

// GetScope returns the scope definition, or ErrScopeNotFound when absent.
func (e *engine) GetScope(ctx context.Context, resourceName, scopeName string) (types.Scope, error) {
	ctx, span := e.tracer.Start(ctx, "engine.GetScope", trace.WithAttributes(
		attribute.String("resource", resourceName),
		attribute.String("scope", scopeName),
	))
	defer span.End()

	resource, scope, err := e.validScope(resourceName, scopeName)
	if err != nil {
		return types.Scope{}, spanFail(span, err)
	}

	item, err := e.store.GetItem(ctx, storage.ScopeKey(resource, scope))
	if err != nil {
		return types.Scope{}, spanFail(span, err)
	}

	if item == nil {
		return types.Scope{}, spanFail(span, fmt.Errorf("%w: %s/%s", ErrScopeNotFound, resource, scope))
	}

	return types.Scope{ResourceName: resource, Name: scope}, nil
}

// DeleteScope removes the scope definition, then sweeps every scope
// assignment referencing it. Deleting an absent scope is not an error.
func (e *engine) DeleteScope(ctx context.Context, resourceName, scopeName string) error {
	ctx, span := e.tracer.Start(ctx, "engine.DeleteScope", trace.WithAttributes(
		attribute.String("resource", resourceName),
		attribute.String("scope", scopeName),
	))
	defer span.End()

	resource, scope, err := e.validScope(resourceName, scopeName)
	if err != nil {
		return spanFail(span, err)
	}

	if err := e.store.DeleteItems(ctx, []storage.Key{storage.ScopeKey(resource, scope)}); err != nil {
		return spanFail(span, err)
	}

	if err := e.deleteScopeAssignmentsByScope(ctx, resource, scope); err != nil {
		return spanFail(span, err)
	}

	return nil
}

// validScope validates and normalizes a (resource, scope) name pair. The
// reserved default scope name is rejected here: it is virtual and never
// stored or assigned.
func (e *engine) validScope(resourceName, scopeName string) (resource, scope string, err error) {
	resource, err = e.resourceNames.Validate(resourceName)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %w", ErrInvalidResourceName, resourceName, err)
	}

	scope, err = e.scopeNames.Validate(scopeName)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %w", ErrInvalidScopeName, scopeName, err)
	}

	if e.scopeNames.IsDefault(scope) {
		return "", "", fmt.Errorf("%w: %q is reserved", ErrInvalidScopeName, scope)
	}

	return resource, scope, nil
}
