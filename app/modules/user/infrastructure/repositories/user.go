package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
	uniqueViolation = "23505"

	emailConstraint = "users_email_key"
	nameConstraint  = "users_lower_name_key"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new user repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// asUniqueViolation reports which constraint a unique violation hit, if err is one.
func asUniqueViolation(err error) (constraint string, ok bool) {
	var pgErr pgdriver.Error
	if !errors.As(err, &pgErr) || pgErr.Field('C') != uniqueViolation {
		return "", false
	}
	return pgErr.Field('n'), true
}

// duplicateError maps a violated unique constraint onto its sentinel.
func duplicateError(constraint string) error {
	switch constraint {
	case nameConstraint:
		return ErrDuplicateName
	case emailConstraint:
		return ErrDuplicateEmail
	default:
		return fmt.Errorf("unique constraint %q violated", constraint)
	}
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, user *User) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := db.NewInsert().
		Model(user).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if constraint, ok := asUniqueViolation(err); ok {
			return duplicateError(constraint)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// List returns every user, oldest first.
func (r *Impl) List(ctx context.Context, db bun.IDB) ([]*User, error) {
	db = r.resolveDB(db)
	users := make([]*User, 0)
	err := db.NewSelect().
		Model(&users).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*User, error) {
	return r.getBy(ctx, db, "id = ?", id)
}

func (r *Impl) GetByEmail(ctx context.Context, db bun.IDB, email string) (*User, error) {
	return r.getBy(ctx, db, "email = ?", email)
}

// GetByName matches the display name case-insensitively.
func (r *Impl) GetByName(ctx context.Context, db bun.IDB, name string) (*User, error) {
	return r.getBy(ctx, db, "lower(name) = lower(?)", name)
}

func (r *Impl) getBy(ctx context.Context, db bun.IDB, where string, arg any) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where(where, arg).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *Impl) UpdateAdmin(ctx context.Context, db bun.IDB, id uuid.UUID, admin bool) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewUpdate().
		Model(user).
		Set("admin = ?", admin).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Returning("*").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update admin flag: %w", err)
	}
	return user, nil
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
