package query

import (
	"errors"
	"fmt"

	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
)

var (
	// ErrInvalidArgument represents an error when an invalid argument is
	// passed to an engine operation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidResourceName represents an error when a resource name
	// fails validation.
	ErrInvalidResourceName = fmt.Errorf("%w: invalid resource name", ErrInvalidArgument)

	// ErrInvalidScopeName represents an error when a scope name fails
	// validation.
	ErrInvalidScopeName = fmt.Errorf("%w: invalid scope name", ErrInvalidArgument)

	// ErrInvalidRoleName represents an error when a role name fails
	// validation.
	ErrInvalidRoleName = fmt.Errorf("%w: invalid role name", ErrInvalidArgument)

	// ErrInvalidPrincipalID represents an error when a principal id fails
	// validation.
	ErrInvalidPrincipalID = fmt.Errorf("%w: invalid principal id", ErrInvalidArgument)

	// ErrResourceNotFound represents an error when no matching resource
	// definition was found.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrScopeNotFound represents an error when no matching scope
	// definition was found on the resource.
	ErrScopeNotFound = errors.New("scope not found")

	// ErrRoleNotFound represents an error when no matching role definition
	// was found on the resource.
	ErrRoleNotFound = errors.New("role not found")

	// ErrResourceAlreadyExists is returned when creating a resource that
	// already has a definition row.
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// ErrScopeAlreadyExists is returned when creating a scope that already
	// has a definition row.
	ErrScopeAlreadyExists = errors.New("scope already exists")

	// ErrRoleAlreadyExists is returned when creating a role that already
	// has a definition row.
	ErrRoleAlreadyExists = errors.New("role already exists")
)

// isAlreadyExists reports whether the store rejected a conditional create.
func isAlreadyExists(err error) bool {
	return errors.Is(err, storage.ErrItemAlreadyExists)
}
