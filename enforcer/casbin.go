// Package enforcer provides policy engine adapters behind the narrow
// authz.Enforcer / authz.Manager interfaces: a Casbin engine, an OpenFGA
// client, and a scriptable Mock for tests.
package enforcer

import (
	"context"

	casbinv2 "github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	authz "github.com/TwigBush/authz-go"
)

// DefaultModel is an RBAC model matching the facade's
// (subject, resource, action) calls. Ownership-qualified grants use the
// resource's ":own" namespace, so no possession logic leaks in here.
const DefaultModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Casbin adapts a casbin enforcer. The wrapped enforcer serializes access
// to its policy store internally, so one Casbin value is shared across
// concurrent requests.
type Casbin struct {
	e *casbinv2.Enforcer
}

var (
	_ authz.Enforcer = (*Casbin)(nil)
	_ authz.Manager  = (*Casbin)(nil)
)

// NewCasbin loads a model and policy from files (casbin .conf and .csv).
func NewCasbin(modelPath, policyPath string) (*Casbin, error) {
	e, err := casbinv2.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, &authz.EngineError{Op: "init", Err: err}
	}
	return &Casbin{e: e}, nil
}

// NewCasbinInMemory builds an enforcer with DefaultModel and no backing
// store; policies live in process memory only.
func NewCasbinInMemory() (*Casbin, error) {
	m, err := model.NewModelFromString(DefaultModel)
	if err != nil {
		return nil, &authz.EngineError{Op: "init", Err: err}
	}
	e, err := casbinv2.NewEnforcer(m)
	if err != nil {
		return nil, &authz.EngineError{Op: "init", Err: err}
	}
	return &Casbin{e: e}, nil
}

// NewCasbinFromEnforcer wraps an already configured enforcer, e.g. one
// backed by a database adapter.
func NewCasbinFromEnforcer(e *casbinv2.Enforcer) *Casbin {
	return &Casbin{e: e}
}

func (c *Casbin) Enforce(ctx context.Context, subject, resource, action string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := c.e.Enforce(subject, resource, action)
	if err != nil {
		return false, &authz.EngineError{Op: "enforce", Err: err}
	}
	return ok, nil
}

func (c *Casbin) AddRoleForUser(ctx context.Context, user, role string) error {
	_, err := c.e.AddRoleForUser(user, role)
	return wrap("add_role_for_user", err)
}

func (c *Casbin) DeleteRoleForUser(ctx context.Context, user, role string) error {
	_, err := c.e.DeleteRoleForUser(user, role)
	return wrap("delete_role_for_user", err)
}

func (c *Casbin) RolesForUser(ctx context.Context, user string) ([]string, error) {
	roles, err := c.e.GetRolesForUser(user)
	if err != nil {
		return nil, &authz.EngineError{Op: "roles_for_user", Err: err}
	}
	return roles, nil
}

func (c *Casbin) UsersForRole(ctx context.Context, role string) ([]string, error) {
	users, err := c.e.GetUsersForRole(role)
	if err != nil {
		return nil, &authz.EngineError{Op: "users_for_role", Err: err}
	}
	return users, nil
}

func (c *Casbin) AddPermissionForUser(ctx context.Context, user string, p authz.Permission) error {
	_, err := c.e.AddPermissionForUser(user, p.EffectiveResource(), string(p.Action))
	return wrap("add_permission_for_user", err)
}

func (c *Casbin) RemovePermissionForUser(ctx context.Context, user string, p authz.Permission) error {
	_, err := c.e.DeletePermissionForUser(user, p.EffectiveResource(), string(p.Action))
	return wrap("remove_permission_for_user", err)
}

func (c *Casbin) HasPermissionForUser(ctx context.Context, user string, p authz.Permission) (bool, error) {
	ok, err := c.e.HasPermissionForUser(user, p.EffectiveResource(), string(p.Action))
	if err != nil {
		return false, &authz.EngineError{Op: "has_permission_for_user", Err: err}
	}
	return ok, nil
}

func (c *Casbin) PermissionsForUser(ctx context.Context, user string) ([][]string, error) {
	perms, err := c.e.GetPermissionsForUser(user)
	if err != nil {
		return nil, &authz.EngineError{Op: "permissions_for_user", Err: err}
	}
	return perms, nil
}

func (c *Casbin) AddPolicy(ctx context.Context, subject, resource, action string) error {
	_, err := c.e.AddPolicy(subject, resource, action)
	return wrap("add_policy", err)
}

func (c *Casbin) RemovePolicy(ctx context.Context, subject, resource, action string) error {
	_, err := c.e.RemovePolicy(subject, resource, action)
	return wrap("remove_policy", err)
}

func (c *Casbin) Policies(ctx context.Context) ([][]string, error) {
	rules, err := c.e.GetPolicy()
	if err != nil {
		return nil, &authz.EngineError{Op: "policies", Err: err}
	}
	return rules, nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &authz.EngineError{Op: op, Err: err}
}
