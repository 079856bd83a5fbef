// Package query implements the RBAC repository engine: administrative CRUD
// over resources, scopes and roles, dual-indexed principal assignments, and
// computed principal access, all over one wide key-value table.
package query

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
	"github.com/StevenKehrli/Trelnex-sub007/internal/types"
	"github.com/StevenKehrli/Trelnex-sub007/internal/validation"
)

// Engine represents a client for making RBAC queries and mutations.
type Engine interface {
	CreateResource(ctx context.Context, resourceName string) (types.Resource, error)
	GetResource(ctx context.Context, resourceName string) (types.Resource, error)
	DeleteResource(ctx context.Context, resourceName string) error

	CreateScope(ctx context.Context, resourceName, scopeName string) (types.Scope, error)
	GetScope(ctx context.Context, resourceName, scopeName string) (types.Scope, error)
	DeleteScope(ctx context.Context, resourceName, scopeName string) error

	CreateRole(ctx context.Context, resourceName, roleName string) (types.Role, error)
	GetRole(ctx context.Context, resourceName, roleName string) (types.Role, error)
	DeleteRole(ctx context.Context, resourceName, roleName string) error

	CreateScopeAssignment(ctx context.Context, resourceName, scopeName, principalID string) (types.ScopeAssignment, error)
	DeleteScopeAssignment(ctx context.Context, resourceName, scopeName, principalID string) error
	GetPrincipalsForScope(ctx context.Context, resourceName, scopeName string) ([]string, error)

	CreateRoleAssignment(ctx context.Context, resourceName, roleName, principalID string) (types.RoleAssignment, error)
	DeleteRoleAssignment(ctx context.Context, resourceName, roleName, principalID string) error
	GetPrincipalsForRole(ctx context.Context, resourceName, roleName string) ([]string, error)

	DeletePrincipal(ctx context.Context, principalID string) error
	GetPrincipalAccess(ctx context.Context, principalID, resourceName string) (types.PrincipalAccess, error)
	GetPrincipalScopedAccess(ctx context.Context, principalID, resourceName, scopeName string) (types.PrincipalAccess, error)
}

type engine struct {
	logger *zap.SugaredLogger
	tracer trace.Tracer
	store  storage.Table

	resourceNames validation.NameValidator
	scopeNames    validation.NameValidator
	roleNames     validation.NameValidator
	principalIDs  validation.NameValidator
}

// NewEngine returns a new engine over the provided table.
func NewEngine(store storage.Table, options ...Option) Engine {
	e := &engine{
		logger: zap.NewNop().Sugar(),
		tracer: otel.Tracer("github.com/StevenKehrli/Trelnex-sub007/internal/query"),
		store:  store,

		resourceNames: validation.ResourceNames(),
		scopeNames:    validation.ScopeNames(),
		roleNames:     validation.RoleNames(),
		principalIDs:  validation.PrincipalIDs(),
	}

	for _, fn := range options {
		fn(e)
	}

	return e
}

// Option is a functional option for the engine.
type Option func(*engine)

// WithLogger sets the logger for the engine.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *engine) {
		e.logger = logger.Named("query")
	}
}

// WithResourceNameValidator overrides the resource name validator.
func WithResourceNameValidator(v validation.NameValidator) Option {
	return func(e *engine) {
		e.resourceNames = v
	}
}

// WithScopeNameValidator overrides the scope name validator.
func WithScopeNameValidator(v validation.NameValidator) Option {
	return func(e *engine) {
		e.scopeNames = v
	}
}

// WithRoleNameValidator overrides the role name validator.
func WithRoleNameValidator(v validation.NameValidator) Option {
	return func(e *engine) {
		e.roleNames = v
	}
}

// WithPrincipalIDValidator overrides the principal id validator.
func WithPrincipalIDValidator(v validation.NameValidator) Option {
	return func(e *engine) {
		e.principalIDs = v
	}
}

// spanFail records err on the span and returns it unchanged.
func spanFail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}

// resourceExists reports whether the resource definition row is present.
func (e *engine) resourceExists(ctx context.Context, resource string) (bool, error) {
	item, err := e.store.GetItem(ctx, storage.ResourceKey(resource))
	if err != nil {
		return false, err
	}

	return item != nil, nil
}
