// Package types exposes domain types for trelnex-auth.
package types

// Resource is a protected asset. ScopeNames and RoleNames are the names of
// the definitions currently registered under the resource, sorted ascending.
type Resource struct {
	Name       string
	ScopeNames []string
	RoleNames  []string
}

// Scope is a named authorization boundary within a resource.
type Scope struct {
	ResourceName string
	Name         string
}

// Role is a named permission label within a resource.
type Role struct {
	ResourceName string
	Name         string
}

// ScopeAssignment records that a principal is permitted within a scope of a
// resource.
type ScopeAssignment struct {
	ResourceName string
	ScopeName    string
	PrincipalID  string
}

// RoleAssignment records that a principal holds a role of a resource.
type RoleAssignment struct {
	ResourceName string
	RoleName     string
	PrincipalID  string
}

// PrincipalAccess is the computed view of a principal on a resource. It is
// never stored. A principal with no scope assignments on the resource has no
// effective roles, regardless of any role assignments.
type PrincipalAccess struct {
	PrincipalID  string
	ResourceName string
	ScopeNames   []string
	RoleNames    []string
}
