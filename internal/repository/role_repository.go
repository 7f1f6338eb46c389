// This file covers the user_roles table.  A user may hold zero or more
// role rows; admin status is nothing more than the existence of an
// `admin` row for that user.  The lookup happens on demand (the
// admin-gate middleware queries it per request) so revoking a role
// takes effect immediately; role results are never cached.
package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
)

// Application roles as stored in user_roles.role.
const (
    RoleAdmin = "admin"
    RoleUser  = "user"
)

// RoleRepo manages the user_roles table.
type RoleRepo struct {
    db *sql.DB
}

// NewRoleRepo constructs a RoleRepo with the given DB handle.
func NewRoleRepo(db *sql.DB) *RoleRepo {
    return &RoleRepo{db: db}
}

// HasRole reports whether a role row exists for the user.  Callers
// gating admin actions must treat an error as "not admin".
func (r *RoleRepo) HasRole(ctx context.Context, userID uint64, role string) (bool, error) {
    const q = `SELECT 1 FROM user_roles WHERE user_id = ? AND role = ? LIMIT 1`
    var one int
    err := r.db.QueryRowContext(ctx, q, userID, role).Scan(&one)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return false, nil
        }
        return false, err
    }
    return true, nil
}

// Grant adds a role row for the user.  Granting a role the user
// already holds is a no-op.
func (r *RoleRepo) Grant(ctx context.Context, userID uint64, role string) error {
    const q = `INSERT INTO user_roles (user_id, role) VALUES (?, ?)`
    if _, err := r.db.ExecContext(ctx, q, userID, role); err != nil {
        // unique (user_id, role) key
        if strings.Contains(err.Error(), "1062") {
            return nil
        }
        return err
    }
    return nil
}

// Revoke removes a role row for the user if present.
func (r *RoleRepo) Revoke(ctx context.Context, userID uint64, role string) error {
    const q = `DELETE FROM user_roles WHERE user_id = ? AND role = ?`
    _, err := r.db.ExecContext(ctx, q, userID, role)
    return err
}

// ListForUser returns all role names held by the user.
func (r *RoleRepo) ListForUser(ctx context.Context, userID uint64) ([]string, error) {
    const q = `SELECT role FROM user_roles WHERE user_id = ? ORDER BY role ASC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var roles []string
    for rows.Next() {
        var role string
        if err := rows.Scan(&role); err != nil {
            return nil, err
        }
        roles = append(roles, role)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return roles, nil
}
