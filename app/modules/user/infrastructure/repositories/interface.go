package userdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for user persistence. A nil db uses the
// repository's own connection.
type Repository interface {
	Create(ctx context.Context, db bun.IDB, user *User) error
	List(ctx context.Context, db bun.IDB) ([]*User, error)
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, db bun.IDB, email string) (*User, error)
	GetByName(ctx context.Context, db bun.IDB, name string) (*User, error)
	UpdateAdmin(ctx context.Context, db bun.IDB, id uuid.UUID, admin bool) (*User, error)
	Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error
}
