// This file defines the User model and repository methods for
// accounts.  Roles live in the separate user_roles table (see
// role_repository.go); a user row carries identity only.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/davronbekm/silkroad-booking/internal/utils"
)

// User mirrors a row of the `users` table.
type User struct {
	ID           uint64         // users.id
	Email        string         // users.email (unique)
	PasswordHash string         // users.password_hash (bcrypt)
	FullName     sql.NullString // users.full_name (nullable profile field)
	IsActive     bool           // users.is_active
	CreatedAt    time.Time      // users.created_at
	UpdatedAt    time.Time      // users.updated_at
}

// ErrEmailExists indicates a registration against an existing email.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound indicates that no matching user row exists.
var ErrUserNotFound = errors.New("user not found")

// UserRepo manages persistence for users.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create hashes the password and inserts a user, returning the new id.
// A duplicate email maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password, fullName string, bcryptCost int) (uint64, error) {
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return 0, err
	}
	var name sql.NullString
	if fullName != "" {
		name = sql.NullString{String: fullName, Valid: true}
	}
	const q = `INSERT INTO users (email, password_hash, full_name) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, email, hash, name)
	if err != nil {
		// MySQL duplicate-key error code
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail retrieves a user by email for login.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	const q = `SELECT id, email, password_hash, full_name, is_active, created_at, updated_at
			   FROM users WHERE email = ?`
	var u User
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*User, error) {
	const q = `SELECT id, email, password_hash, full_name, is_active, created_at, updated_at
			   FROM users WHERE id = ?`
	var u User
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
