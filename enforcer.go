package authz

import "context"

// Enforcer is the narrow facade the evaluator needs from a policy engine:
// does a rule permit subject to perform action on resource. Implementations
// live in the enforcer package; tests substitute their own.
type Enforcer interface {
	Enforce(ctx context.Context, subject, resource, action string) (bool, error)
}

// Manager is the role and permission management surface of a policy engine.
// Every method is a direct pass-through to the engine's primitive with the
// same success semantics; failures carry *EngineError.
type Manager interface {
	AddRoleForUser(ctx context.Context, user, role string) error
	DeleteRoleForUser(ctx context.Context, user, role string) error
	RolesForUser(ctx context.Context, user string) ([]string, error)
	UsersForRole(ctx context.Context, role string) ([]string, error)

	AddPermissionForUser(ctx context.Context, user string, p Permission) error
	RemovePermissionForUser(ctx context.Context, user string, p Permission) error
	HasPermissionForUser(ctx context.Context, user string, p Permission) (bool, error)
	PermissionsForUser(ctx context.Context, user string) ([][]string, error)

	AddPolicy(ctx context.Context, subject, resource, action string) error
	RemovePolicy(ctx context.Context, subject, resource, action string) error
	Policies(ctx context.Context) ([][]string, error)
}

// Engine is a full policy engine: enforcement plus management. Mutations
// are visible to every subsequent Enforce call, including concurrent ones;
// the underlying engine is responsible for keeping those reads untorn.
type Engine interface {
	Enforcer
	Manager
}
