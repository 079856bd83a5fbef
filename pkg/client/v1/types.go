package client

// Resource is a protected API with its scope and role vocabularies.
type Resource struct {
	Name   string   `json:"name"`
	Scopes []string `json:"scopes"`
	Roles  []string `json:"roles"`
}

// Scope is a named grant boundary of a resource.
type Scope struct {
	Resource string `json:"resource"`
	Name     string `json:"name"`
}

// Role is a named permission bundle of a resource.
type Role struct {
	Resource string `json:"resource"`
	Name     string `json:"name"`
}

// ScopeAssignment grants a principal a scope of a resource.
type ScopeAssignment struct {
	Resource  string `json:"resource"`
	Scope     string `json:"scope"`
	Principal string `json:"principal"`
}

// RoleAssignment grants a principal a role of a resource.
type RoleAssignment struct {
	Resource  string `json:"resource"`
	Role      string `json:"role"`
	Principal string `json:"principal"`
}

// Access is a principal's effective membership on a resource.
type Access struct {
	Principal string   `json:"principal"`
	Resource  string   `json:"resource"`
	Scopes    []string `json:"scopes"`
	Roles     []string `json:"roles"`
}

type listResponse struct {
	Data []string `json:"data"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

type createResourceRequest struct {
	Name string `json:"name"`
}

type createScopeRequest struct {
	Resource string `json:"resource"`
	Name     string `json:"name"`
}

type createRoleRequest struct {
	Resource string `json:"resource"`
	Name     string `json:"name"`
}

type createScopeAssignmentRequest struct {
	Resource  string `json:"resource"`
	Scope     string `json:"scope"`
	Principal string `json:"principal"`
}

type createRoleAssignmentRequest struct {
	Resource  string `json:"resource"`
	Role      string `json:"role"`
	Principal string `json:"principal"`
}
