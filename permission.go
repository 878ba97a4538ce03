// Package authz decides whether a subject may perform an operation, given
// the permission requirements declared for that operation and a policy
// engine that resolves individual (subject, resource, action) grants.
package authz

import "fmt"

// Action is the verb a subject wants to perform on a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Possession qualifies whether a permission covers any instance of a
// resource or only instances owned by the acting subject.
type Possession string

const (
	PossessionAny Possession = "any"
	PossessionOwn Possession = "own"
)

// OwnSuffix is appended to the resource name of ownership-qualified
// permissions so that "own" grants live in a disjoint policy namespace.
const OwnSuffix = ":own"

// RequestContext is the narrow view of the current request that ownership
// predicates run against. Hosts fill Params from whatever transport they
// use; the core never looks inside it.
type RequestContext struct {
	Subject string
	Params  map[string]any
}

// OwnershipFunc reports whether the acting subject owns the resource
// instance targeted by the current request.
type OwnershipFunc func(rc RequestContext) (bool, error)

// Permission is one declared requirement: the subject needs Action on
// Resource, optionally restricted to instances it owns. Permissions are
// declared once at registration time and treated as immutable.
type Permission struct {
	Action     Action
	Resource   string
	Possession Possession

	// IsOwn proves ownership when Possession is PossessionOwn. Left nil,
	// ownership is never proven and the requirement always denies.
	IsOwn OwnershipFunc
}

// EffectiveResource is the resource string handed to the policy engine:
// the plain resource for "any", the OwnSuffix-qualified one for "own".
func (p Permission) EffectiveResource() string {
	if p.Possession == PossessionOwn {
		return p.Resource + OwnSuffix
	}
	return p.Resource
}

func (p Permission) Validate() error {
	if p.Resource == "" {
		return fmt.Errorf("permission: empty resource")
	}
	if !p.Action.Valid() {
		return fmt.Errorf("permission: unknown action %q", p.Action)
	}
	switch p.Possession {
	case PossessionAny, PossessionOwn:
	default:
		return fmt.Errorf("permission: unknown possession %q", p.Possession)
	}
	return nil
}

func (p Permission) String() string {
	return fmt.Sprintf("%s %s (%s)", p.Action, p.Resource, p.Possession)
}
