package db

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"utamahr/internal/domain/auth"
)

type SeedOptions struct {
	TenantName    string
	AdminEmail    string
	AdminPassword string
}

// Seed makes sure the tenant, its roles and grants, a company profile and the admin user exist.
func Seed(ctx context.Context, pool *pgxpool.Pool, opts SeedOptions) error {
	tenantID, err := ensureTenant(ctx, pool, opts.TenantName)
	if err != nil {
		return err
	}
	if err := ensurePermissions(ctx, pool); err != nil {
		return err
	}
	roleIDs, err := ensureRoles(ctx, pool, tenantID)
	if err != nil {
		return err
	}
	if err := ensureRolePermissions(ctx, pool, roleIDs); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, `
    INSERT INTO company_settings (tenant_id, name) VALUES ($1, $2)
    ON CONFLICT (tenant_id) DO NOTHING
  `, tenantID, opts.TenantName); err != nil {
		return errors.Wrap(err, "seed company settings")
	}
	return ensureAdminUser(ctx, pool, tenantID, roleIDs[auth.RoleAdmin], opts.AdminEmail, opts.AdminPassword)
}

func ensureTenant(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id::text FROM tenants WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", errors.Wrap(err, "find tenant")
	}
	if err := pool.QueryRow(ctx, "INSERT INTO tenants (name) VALUES ($1) RETURNING id::text", name).Scan(&id); err != nil {
		return "", errors.Wrap(err, "create tenant")
	}
	return id, nil
}

func ensurePermissions(ctx context.Context, pool *pgxpool.Pool) error {
	for _, perm := range auth.DefaultPermissions {
		if _, err := pool.Exec(ctx, "INSERT INTO permissions (key) VALUES ($1) ON CONFLICT (key) DO NOTHING", perm); err != nil {
			return errors.Wrapf(err, "seed permission %s", perm)
		}
	}
	return nil
}

func ensureRoles(ctx context.Context, pool *pgxpool.Pool, tenantID string) (map[string]string, error) {
	roleIDs := map[string]string{}
	for roleName := range auth.RolePermissions {
		var id string
		err := pool.QueryRow(ctx, `
    INSERT INTO roles (tenant_id, name) VALUES ($1, $2)
    ON CONFLICT (tenant_id, name) DO UPDATE SET name = EXCLUDED.name
    RETURNING id::text
  `, tenantID, roleName).Scan(&id)
		if err != nil {
			return nil, errors.Wrapf(err, "seed role %s", roleName)
		}
		roleIDs[roleName] = id
	}
	return roleIDs, nil
}

// ensureRolePermissions mirrors the direct grants into role_permissions. Inherited grants
// stay in the enforcer.
func ensureRolePermissions(ctx context.Context, pool *pgxpool.Pool, roleIDs map[string]string) error {
	for roleName, perms := range auth.RolePermissions {
		for _, permKey := range perms {
			_, err := pool.Exec(ctx, `
    INSERT INTO role_permissions (role_id, permission_id)
    SELECT $1, p.id FROM permissions p WHERE p.key = $2
    ON CONFLICT DO NOTHING
  `, roleIDs[roleName], permKey)
			if err != nil {
				return errors.Wrapf(err, "grant %s to %s", permKey, roleName)
			}
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, tenantID, roleID, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id::text FROM users WHERE tenant_id = $1 AND email = $2", tenantID, email).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return errors.Wrap(err, "find admin user")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, "INSERT INTO users (tenant_id, email, password_hash, role_id) VALUES ($1, $2, $3, $4)", tenantID, email, hash, roleID); err != nil {
		return errors.Wrap(err, "create admin user")
	}
	return nil
}
