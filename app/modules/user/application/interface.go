package userservice

import (
	"context"

	userdb "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/pizza-walk/app/shared/results"
	"github.com/google/uuid"
)

// Password length bounds. bcrypt ignores input past 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// CreateUserRequest is a registration.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}

// LoginRequest identifies the account by name, or by email when Name is empty.
type LoginRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResult carries a user or a domain failure.
type UserResult = results.OperationResult[*userdb.User, error]

// Service handles user accounts.
type Service interface {
	ListUsers(ctx context.Context) (results.OperationResult[[]*userdb.User, error], error)
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResult, error)
	Login(ctx context.Context, req LoginRequest) (UserResult, error)
	SetAdmin(ctx context.Context, id uuid.UUID, admin bool) (UserResult, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (results.OperationResult[bool, error], error)
}
