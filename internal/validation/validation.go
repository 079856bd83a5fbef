// Package validation provides the name validators consumed by the query
// engine. Every stored key component passes through a validator first; the
// normalized form is what gets persisted and compared.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultScopeName is the reserved scope name recognized by the scope
// validator. The leading dot keeps it outside the user name character class,
// so a stored scope can never collide with it.
const DefaultScopeName = ".default"

// maxNameLength bounds normalized names well below the table's sort key
// size limit, leaving room for the key markers and separators.
const maxNameLength = 255

var (
	// ErrEmptyName is returned when a name is empty after normalization.
	ErrEmptyName = errors.New("name is empty")

	// ErrNameTooLong is returned when a name exceeds the maximum length.
	ErrNameTooLong = fmt.Errorf("name exceeds %d characters", maxNameLength)

	// ErrInvalidCharacters is returned when a name contains characters
	// outside the validator's character class.
	ErrInvalidCharacters = errors.New("name contains invalid characters")
)

// NameValidator validates and normalizes a single kind of name.
type NameValidator interface {
	// Validate returns the normalized form of raw, or an error if raw is
	// not a valid name of this kind.
	Validate(raw string) (string, error)

	// IsDefault reports whether the normalized name is the reserved
	// default name for this kind. Only scope names have a default.
	IsDefault(normalized string) bool
}

type validator struct {
	pattern     *regexp.Regexp
	lowercase   bool
	defaultName string
}

func (v *validator) Validate(raw string) (string, error) {
	name := strings.TrimSpace(raw)

	if v.lowercase {
		name = strings.ToLower(name)
	}

	if v.defaultName != "" && name == v.defaultName {
		return name, nil
	}

	if name == "" {
		return "", ErrEmptyName
	}

	if len(name) > maxNameLength {
		return "", ErrNameTooLong
	}

	if !v.pattern.MatchString(name) {
		return "", ErrInvalidCharacters
	}

	return name, nil
}

func (v *validator) IsDefault(normalized string) bool {
	return v.defaultName != "" && normalized == v.defaultName
}

// None of the patterns admit '#', the key separator, or whitespace. The key
// markers are all upper case, so no normalized name can shadow a marker.
var (
	resourceNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.:/_-]*$`)
	scopeNamePattern    = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)
	roleNamePattern     = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)
	principalIDPattern  = regexp.MustCompile(`^[^#[:space:][:cntrl:]]+$`)
)

// ResourceNames returns the validator for resource names. Resource names are
// lowercased and may carry URI-style separators (api://svc).
func ResourceNames() NameValidator {
	return &validator{pattern: resourceNamePattern, lowercase: true}
}

// ScopeNames returns the validator for scope names. The reserved default
// scope name is accepted verbatim.
func ScopeNames() NameValidator {
	return &validator{pattern: scopeNamePattern, lowercase: true, defaultName: DefaultScopeName}
}

// RoleNames returns the validator for role names.
func RoleNames() NameValidator {
	return &validator{pattern: roleNamePattern, lowercase: true}
}

// PrincipalIDs returns the validator for principal identifiers. Principals
// are opaque external identities (commonly IAM ARNs); case is preserved and
// only the key separator and whitespace are rejected.
func PrincipalIDs() NameValidator {
	return &validator{pattern: principalIDPattern}
}
