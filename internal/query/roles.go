package query

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
	"github.com/StevenKehrli/Trelnex-sub007/internal/types"
)

// CreateRole registers a new role under an existing resource. A missing
// resource is ErrResourceNotFound, never ErrRoleAlreadyExists.
func (e *engine) CreateRole(ctx context.Context, resourceName, roleName string) (types.Role, error) {
	ctx, span := e.tracer.Start(ctx, "engine.CreateRole", trace.WithAttributes(
		attribute.String("resource", resourceName),
		attribute.String("role", roleName),
	))
	defer span.End()

	resource, role, err := e.validRole(resourceName, roleName)
	if err != nil {
		return types.Role{}, spanFail(span, err)
	}

	exists, err := e.resourceExists(ctx, resource)
	if err != nil {
		return types.Role{}, spanFail(span, err)
	}

	if !exists {
		return types.Role{}, spanFail(span, fmt.Errorf("%w: %s", ErrResourceNotFound, resource))
	}

	if err := e.store.CreateItem(ctx, storage.RoleItem(resource, role)); err != nil {
		if isAlreadyExists(err) {
			return types.Role{}, spanFail(span, fmt.Errorf("%w: %s/%s", ErrRoleAlreadyExists, resource, role))
		}

		return types.Role{}, spanFail(span, err)
	}

	return types.Role{ResourceName: resource, Name: role}, nil
}

// GetRole returns the role definition, or ErrRoleNotFound when absent.
func (e *engine) GetRole(ctx context.Context, resourceName, roleName string) (types.Role, error) {
	ctx, span := e.tracer.Start(ctx, "engine.GetRole", trace.WithAttributes(
		attribute.String("resource", resourceName),
		attribute.String("role", roleName),
	))
	defer span.End()

	resource, role, err := e.validRole(resourceName, roleName)
	if err != nil {
		return types.Role{}, spanFail(span, err)
	}

	item, err := e.store.GetItem(ctx, storage.RoleKey(resource, role))
	if err != nil {
		return types.Role{}, spanFail(span, err)
	}

	if item == nil {
		return types.Role{}, spanFail(span, fmt.Errorf("%w: %s/%s", ErrRoleNotFound, resource, role))
	}

	return types.Role{ResourceName: resource, Name: role}, nil
}

// DeleteRole removes the role definition, then sweeps every role assignment
// referencing it. Deleting an absent role is not an error.
func (e *engine) DeleteRole(ctx context.Context, resourceName, roleName string) error {
	ctx, span := e.tracer.Start(ctx, "engine.DeleteRole", trace.WithAttributes(
		attribute.String("resource", resourceName),
		attribute.String("role", roleName),
	))
	defer span.End()

	resource, role, err := e.validRole(resourceName, roleName)
	if err != nil {
		return spanFail(span, err)
	}

	if err := e.store.DeleteItems(ctx, []storage.Key{storage.RoleKey(resource, role)}); err != nil {
		return spanFail(span, err)
	}

	if err := e.deleteRoleAssignmentsByRole(ctx, resource, role); err != nil {
		return spanFail(span, err)
	}

	return nil
}

// validRole validates and normalizes a (resource, role) name pair.
func (e *engine) validRole(resourceName, roleName string) (resource, role string, err error) {
	resource, err = e.resourceNames.Validate(resourceName)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %w", ErrInvalidResourceName, resourceName, err)
	}

	role, err = e.roleNames.Validate(roleName)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %w", ErrInvalidRoleName, roleName, err)
	}

	return resource, role, nil
}
