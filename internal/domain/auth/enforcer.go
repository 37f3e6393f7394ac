package auth

import (
	"context"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/go-faster/errors"
)

const rbacModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj
`

// Enforcer answers permission checks from an in-memory casbin policy built from role grants.
type Enforcer struct {
	casbin *casbin.Enforcer
}

func NewEnforcer(grants map[string][]string, parents map[string][]string) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, errors.Wrap(err, "load rbac model")
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, errors.Wrap(err, "create enforcer")
	}
	for role, perms := range grants {
		for _, perm := range perms {
			if _, err := e.AddPolicy(role, perm); err != nil {
				return nil, errors.Wrapf(err, "add policy %s %s", role, perm)
			}
		}
	}
	for role, inherited := range parents {
		for _, parent := range inherited {
			if _, err := e.AddGroupingPolicy(role, parent); err != nil {
				return nil, errors.Wrapf(err, "add role %s -> %s", role, parent)
			}
		}
	}
	return &Enforcer{casbin: e}, nil
}

func NewDefaultEnforcer() (*Enforcer, error) {
	return NewEnforcer(RolePermissions, RoleParents)
}

func (e *Enforcer) HasPermission(_ context.Context, role, permission string) (bool, error) {
	if role == "" {
		return false, nil
	}
	return e.casbin.Enforce(role, permission)
}
