package enforcer

import (
	"context"
	"slices"
	"strings"
	"sync"

	authz "github.com/TwigBush/authz-go"
)

// Mock is an in-memory engine for tests: grants are scripted with Allow or
// the Manager methods, errors are forced with Err, and every Enforce call
// is recorded so tests can assert on call counts.
type Mock struct {
	mu          sync.Mutex
	AlwaysAllow bool
	Err         error // returned (wrapped) by every call when set

	rules map[string]bool
	roles map[string][]string
	calls []string
}

var (
	_ authz.Enforcer = (*Mock)(nil)
	_ authz.Manager  = (*Mock)(nil)
)

func key(subject, resource, action string) string {
	return subject + "|" + resource + "|" + action
}

// Allow scripts a single grant.
func (m *Mock) Allow(subject, resource, action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rules == nil {
		m.rules = make(map[string]bool)
	}
	m.rules[key(subject, resource, action)] = true
}

// Calls returns the recorded Enforce calls as "sub|obj|act" strings.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *Mock) Enforce(ctx context.Context, subject, resource, action string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, key(subject, resource, action))
	if m.Err != nil {
		return false, &authz.EngineError{Op: "enforce", Err: m.Err}
	}
	if m.AlwaysAllow {
		return true, nil
	}
	if m.rules[key(subject, resource, action)] {
		return true, nil
	}
	// fall back through role grants
	for _, role := range m.roles[subject] {
		if m.rules[key(role, resource, action)] {
			return true, nil
		}
	}
	return false, nil
}

func (m *Mock) AddRoleForUser(ctx context.Context, user, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return &authz.EngineError{Op: "add_role_for_user", Err: m.Err}
	}
	if m.roles == nil {
		m.roles = make(map[string][]string)
	}
	if !slices.Contains(m.roles[user], role) {
		m.roles[user] = append(m.roles[user], role)
	}
	return nil
}

func (m *Mock) DeleteRoleForUser(ctx context.Context, user, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return &authz.EngineError{Op: "delete_role_for_user", Err: m.Err}
	}
	m.roles[user] = slices.DeleteFunc(m.roles[user], func(r string) bool { return r == role })
	return nil
}

func (m *Mock) RolesForUser(ctx context.Context, user string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, &authz.EngineError{Op: "roles_for_user", Err: m.Err}
	}
	return append([]string(nil), m.roles[user]...), nil
}

func (m *Mock) UsersForRole(ctx context.Context, role string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, &authz.EngineError{Op: "users_for_role", Err: m.Err}
	}
	var users []string
	for user, roles := range m.roles {
		if slices.Contains(roles, role) {
			users = append(users, user)
		}
	}
	slices.Sort(users)
	return users, nil
}

func (m *Mock) AddPermissionForUser(ctx context.Context, user string, p authz.Permission) error {
	if m.Err != nil {
		return &authz.EngineError{Op: "add_permission_for_user", Err: m.Err}
	}
	m.Allow(user, p.EffectiveResource(), string(p.Action))
	return nil
}

func (m *Mock) RemovePermissionForUser(ctx context.Context, user string, p authz.Permission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return &authz.EngineError{Op: "remove_permission_for_user", Err: m.Err}
	}
	delete(m.rules, key(user, p.EffectiveResource(), string(p.Action)))
	return nil
}

func (m *Mock) HasPermissionForUser(ctx context.Context, user string, p authz.Permission) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, &authz.EngineError{Op: "has_permission_for_user", Err: m.Err}
	}
	return m.rules[key(user, p.EffectiveResource(), string(p.Action))], nil
}

func (m *Mock) PermissionsForUser(ctx context.Context, user string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, &authz.EngineError{Op: "permissions_for_user", Err: m.Err}
	}
	var out [][]string
	for k, allowed := range m.rules {
		if !allowed {
			continue
		}
		if parts := strings.SplitN(k, "|", 3); len(parts) == 3 && parts[0] == user {
			out = append(out, parts)
		}
	}
	slices.SortFunc(out, func(a, b []string) int { return strings.Compare(a[1], b[1]) })
	return out, nil
}

func (m *Mock) AddPolicy(ctx context.Context, subject, resource, action string) error {
	if m.Err != nil {
		return &authz.EngineError{Op: "add_policy", Err: m.Err}
	}
	m.Allow(subject, resource, action)
	return nil
}

func (m *Mock) RemovePolicy(ctx context.Context, subject, resource, action string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return &authz.EngineError{Op: "remove_policy", Err: m.Err}
	}
	delete(m.rules, key(subject, resource, action))
	return nil
}

func (m *Mock) Policies(ctx context.Context) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, &authz.EngineError{Op: "policies", Err: m.Err}
	}
	var out [][]string
	for k, allowed := range m.rules {
		if !allowed {
			continue
		}
		if parts := strings.SplitN(k, "|", 3); len(parts) == 3 {
			out = append(out, parts)
		}
	}
	return out, nil
}
