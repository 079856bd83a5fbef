package storage

import "fmt"

// Key layout. One table holds seven row kinds; a single partition equality
// plus sort-key prefix query yields exactly the rows of one kind.
//
//	kind                          partition key             sort key
//	resource definition           RESOURCE#{resource}       RESOURCE
//	scope definition              RESOURCE#{resource}       SCOPE#{scope}
//	role definition               RESOURCE#{resource}       ROLE#{role}
//	scope assignment (forward)    PRINCIPAL#{principal}     SCOPEASSIGNMENT#{resource}#{scope}
//	scope assignment (mirror)     RESOURCE#{resource}       SCOPEASSIGNMENT#{scope}#{principal}
//	role assignment (forward)     PRINCIPAL#{principal}     ROLEASSIGNMENT#{resource}#{role}
//	role assignment (mirror)      RESOURCE#{resource}       ROLEASSIGNMENT#{role}#{principal}
//
// No marker is a prefix of another marker-plus-separator, and validators
// reject '#' in names, so begins_with queries are unambiguous.
const (
	keySeparator = "#"

	markerResource        = "RESOURCE"
	markerScope           = "SCOPE"
	markerRole            = "ROLE"
	markerScopeAssignment = "SCOPEASSIGNMENT"
	markerRoleAssignment  = "ROLEASSIGNMENT"
	markerPrincipal       = "PRINCIPAL"
)

// Attribute names for the materialized component fields.
const (
	attrResourceName = "_resourceName"
	attrScopeName    = "_scopeName"
	attrRoleName     = "_roleName"
	attrPrincipalID  = "_principalId"
)

// ResourcePartition returns the partition key shared by a resource's
// definition rows and its assignment mirror rows.
func ResourcePartition(resource string) string {
	return markerResource + keySeparator + resource
}

// PrincipalPartition returns the partition key of a principal's forward
// assignment rows.
func PrincipalPartition(principal string) string {
	return markerPrincipal + keySeparator + principal
}

// ResourceKey returns the key of a resource definition row. The sort key is
// the bare RESOURCE sentinel.
func ResourceKey(resource string) Key {
	return Key{
		PartitionKey: ResourcePartition(resource),
		SortKey:      markerResource,
	}
}

// ScopeKey returns the key of a scope definition row.
func ScopeKey(resource, scope string) Key {
	return Key{
		PartitionKey: ResourcePartition(resource),
		SortKey:      markerScope + keySeparator + scope,
	}
}

// RoleKey returns the key of a role definition row.
func RoleKey(resource, role string) Key {
	return Key{
		PartitionKey: ResourcePartition(resource),
		SortKey:      markerRole + keySeparator + role,
	}
}

// ScopePrefix is the sort-key prefix selecting all scope definitions of a
// resource partition.
func ScopePrefix() string {
	return markerScope + keySeparator
}

// RolePrefix is the sort-key prefix selecting all role definitions of a
// resource partition.
func RolePrefix() string {
	return markerRole + keySeparator
}

// ScopeAssignmentPrefix selects assignment rows on either index. With no
// names it matches every scope assignment in the partition; each additional
// name narrows by one sort-key component.
func ScopeAssignmentPrefix(names ...string) string {
	return assignmentPrefix(markerScopeAssignment, names)
}

// RoleAssignmentPrefix is the role analogue of ScopeAssignmentPrefix.
func RoleAssignmentPrefix(names ...string) string {
	return assignmentPrefix(markerRoleAssignment, names)
}

func assignmentPrefix(marker string, names []string) string {
	prefix := marker + keySeparator
	for _, name := range names {
		prefix += name + keySeparator
	}

	return prefix
}

// ResourceItem encodes a resource definition row.
func ResourceItem(resource string) Item {
	key := ResourceKey(resource)

	return Item{
		PartitionKey: key.PartitionKey,
		SortKey:      key.SortKey,
		Attributes: map[string]string{
			attrResourceName: resource,
		},
	}
}

// ScopeItem encodes a scope definition row.
func ScopeItem(resource, scope string) Item {
	key := ScopeKey(resource, scope)

	return Item{
		PartitionKey: key.PartitionKey,
		SortKey:      key.SortKey,
		Attributes: map[string]string{
			attrResourceName: resource,
			attrScopeName:    scope,
		},
	}
}

// RoleItem encodes a role definition row.
func RoleItem(resource, role string) Item {
	key := RoleKey(resource, role)

	return Item{
		PartitionKey: key.PartitionKey,
		SortKey:      key.SortKey,
		Attributes: map[string]string{
			attrResourceName: resource,
			attrRoleName:     role,
		},
	}
}

// ScopeAssignmentForwardKey returns the by-principal index key of a scope
// assignment.
func ScopeAssignmentForwardKey(resource, scope, principal string) Key {
	return Key{
		PartitionKey: PrincipalPartition(principal),
		SortKey:      markerScopeAssignment + keySeparator + resource + keySeparator + scope,
	}
}

// ScopeAssignmentMirrorKey returns the by-scope index key of a scope
// assignment.
func ScopeAssignmentMirrorKey(resource, scope, principal string) Key {
	return Key{
		PartitionKey: ResourcePartition(resource),
		SortKey:      markerScopeAssignment + keySeparator + scope + keySeparator + principal,
	}
}

// RoleAssignmentForwardKey returns the by-principal index key of a role
// assignment.
func RoleAssignmentForwardKey(resource, role, principal string) Key {
	return Key{
		PartitionKey: PrincipalPartition(principal),
		SortKey:      markerRoleAssignment + keySeparator + resource + keySeparator + role,
	}
}

// RoleAssignmentMirrorKey returns the by-role index key of a role
// assignment.
func RoleAssignmentMirrorKey(resource, role, principal string) Key {
	return Key{
		PartitionKey: ResourcePartition(resource),
		SortKey:      markerRoleAssignment + keySeparator + role + keySeparator + principal,
	}
}

// ScopeAssignmentItems encodes both index rows of a scope assignment. The
// rows share the same attribute payload and differ only in key placement.
func ScopeAssignmentItems(resource, scope, principal string) (forward, mirror Item) {
	attributes := map[string]string{
		attrResourceName: resource,
		attrScopeName:    scope,
		attrPrincipalID:  principal,
	}

	forwardKey := ScopeAssignmentForwardKey(resource, scope, principal)
	mirrorKey := ScopeAssignmentMirrorKey(resource, scope, principal)

	forward = Item{PartitionKey: forwardKey.PartitionKey, SortKey: forwardKey.SortKey, Attributes: attributes}
	mirror = Item{PartitionKey: mirrorKey.PartitionKey, SortKey: mirrorKey.SortKey, Attributes: attributes}

	return forward, mirror
}

// RoleAssignmentItems encodes both index rows of a role assignment.
func RoleAssignmentItems(resource, role, principal string) (forward, mirror Item) {
	attributes := map[string]string{
		attrResourceName: resource,
		attrRoleName:     role,
		attrPrincipalID:  principal,
	}

	forwardKey := RoleAssignmentForwardKey(resource, role, principal)
	mirrorKey := RoleAssignmentMirrorKey(resource, role, principal)

	forward = Item{PartitionKey: forwardKey.PartitionKey, SortKey: forwardKey.SortKey, Attributes: attributes}
	mirror = Item{PartitionKey: mirrorKey.PartitionKey, SortKey: mirrorKey.SortKey, Attributes: attributes}

	return forward, mirror
}

func (i Item) attribute(name string) (string, error) {
	value, ok := i.Attributes[name]
	if !ok || value == "" {
		return "", fmt.Errorf("%w: missing %s (pk=%s sk=%s)", ErrMalformedItem, name, i.PartitionKey, i.SortKey)
	}

	return value, nil
}

// ResourceName decodes the materialized resource name attribute.
func (i Item) ResourceName() (string, error) {
	return i.attribute(attrResourceName)
}

// ScopeName decodes the materialized scope name attribute.
func (i Item) ScopeName() (string, error) {
	return i.attribute(attrScopeName)
}

// RoleName decodes the materialized role name attribute.
func (i Item) RoleName() (string, error) {
	return i.attribute(attrRoleName)
}

// PrincipalID decodes the materialized principal id attribute.
func (i Item) PrincipalID() (string, error) {
	return i.attribute(attrPrincipalID)
}

// ScopeAssignmentKeys rebuilds both index keys of a scope assignment from
// either of its rows. Cascades use this to delete forward and mirror rows
// together no matter which index their discovery query ran against.
func ScopeAssignmentKeys(i Item) (forward, mirror Key, err error) {
	resource, err := i.ResourceName()
	if err != nil {
		return Key{}, Key{}, err
	}

	scope, err := i.ScopeName()
	if err != nil {
		return Key{}, Key{}, err
	}

	principal, err := i.PrincipalID()
	if err != nil {
		return Key{}, Key{}, err
	}

	return ScopeAssignmentForwardKey(resource, scope, principal),
		ScopeAssignmentMirrorKey(resource, scope, principal),
		nil
}

// RoleAssignmentKeys rebuilds both index keys of a role assignment from
// either of its rows.
func RoleAssignmentKeys(i Item) (forward, mirror Key, err error) {
	resource, err := i.ResourceName()
	if err != nil {
		return Key{}, Key{}, err
	}

	role, err := i.RoleName()
	if err != nil {
		return Key{}, Key{}, err
	}

	principal, err := i.PrincipalID()
	if err != nil {
		return Key{}, Key{}, err
	}

	return RoleAssignmentForwardKey(resource, role, principal),
		RoleAssignmentMirrorKey(resource, role, principal),
		nil
}
