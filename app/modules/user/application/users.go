package userservice

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Black-And-White-Club/pizza-walk/app/events"
	userdb "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/pizza-walk/app/shared/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// ListUsers returns every account, oldest first.
func (s *UserService) ListUsers(ctx context.Context) (results.OperationResult[[]*userdb.User, error], error) {
	return withTelemetry(s, ctx, "ListUsers", "all", func(ctx context.Context) (results.OperationResult[[]*userdb.User, error], error) {
		users, err := s.repo.List(ctx, nil)
		if err != nil {
			return results.OperationResult[[]*userdb.User, error]{}, fmt.Errorf("failed to list users: %w", err)
		}
		return results.SuccessResult[[]*userdb.User, error](users), nil
	})
}

// CreateUser validates and stores a new account with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (UserResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	result, err := withTelemetry(s, ctx, "CreateUser", req.Email, func(ctx context.Context) (UserResult, error) {
		if failure := validateCreate(req); failure != nil {
			return results.FailureResult[*userdb.User, error](failure), nil
		}
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (UserResult, error) {
			return s.createUserLogic(ctx, db, req)
		})
	})
	if err == nil && result.IsSuccess() {
		u := *result.Success
		s.publish(ctx, events.UserCreatedV1, events.UserCreatedPayload{UserID: u.ID.String(), Name: u.Name, Email: u.Email})
	}
	return result, err
}

func (s *UserService) createUserLogic(ctx context.Context, db bun.IDB, req CreateUserRequest) (UserResult, error) {
	if _, err := s.repo.GetByName(ctx, db, req.Name); err == nil {
		return results.FailureResult[*userdb.User, error](ErrNameTaken), nil
	} else if !errors.Is(err, userdb.ErrNotFound) {
		return UserResult{}, fmt.Errorf("failed to check name: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return UserResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &userdb.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Admin:        req.Admin,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, db, user); err != nil {
		switch {
		case errors.Is(err, userdb.ErrDuplicateEmail):
			return results.FailureResult[*userdb.User, error](ErrEmailTaken), nil
		case errors.Is(err, userdb.ErrDuplicateName):
			return results.FailureResult[*userdb.User, error](ErrNameTaken), nil
		}
		return UserResult{}, fmt.Errorf("failed to create user: %w", err)
	}
	return results.SuccessResult[*userdb.User, error](user), nil
}

// Login checks a password against the stored hash and returns the account.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (UserResult, error) {
	identifier := strings.TrimSpace(req.Name)
	byEmail := identifier == ""
	if byEmail {
		identifier = normalizeEmail(req.Email)
	}

	return withTelemetry(s, ctx, "Login", identifier, func(ctx context.Context) (UserResult, error) {
		if identifier == "" || req.Password == "" {
			return results.FailureResult[*userdb.User, error](ErrMissingFields), nil
		}

		var (
			user *userdb.User
			err  error
		)
		if byEmail {
			user, err = s.repo.GetByEmail(ctx, nil, identifier)
		} else {
			user, err = s.repo.GetByName(ctx, nil, identifier)
		}
		if errors.Is(err, userdb.ErrNotFound) {
			return results.FailureResult[*userdb.User, error](ErrUserNotFound), nil
		}
		if err != nil {
			return UserResult{}, fmt.Errorf("failed to load user: %w", err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			return results.FailureResult[*userdb.User, error](ErrIncorrectPassword), nil
		}
		return results.SuccessResult[*userdb.User, error](user), nil
	})
}

// SetAdmin grants or revokes admin rights.
func (s *UserService) SetAdmin(ctx context.Context, id uuid.UUID, admin bool) (UserResult, error) {
	result, err := withTelemetry(s, ctx, "SetAdmin", id.String(), func(ctx context.Context) (UserResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (UserResult, error) {
			user, err := s.repo.UpdateAdmin(ctx, db, id, admin)
			if errors.Is(err, userdb.ErrNotFound) {
				return results.FailureResult[*userdb.User, error](ErrUserNotFound), nil
			}
			if err != nil {
				return UserResult{}, fmt.Errorf("failed to update admin flag: %w", err)
			}
			return results.SuccessResult[*userdb.User, error](user), nil
		})
	})
	if err == nil && result.IsSuccess() {
		s.publish(ctx, events.UserAdminUpdatedV1, events.UserAdminUpdatedPayload{UserID: id.String(), Admin: admin})
	}
	return result, err
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) (results.OperationResult[bool, error], error) {
	result, err := withTelemetry(s, ctx, "DeleteUser", id.String(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			err := s.repo.Delete(ctx, db, id)
			if errors.Is(err, userdb.ErrNotFound) {
				return results.FailureResult[bool, error](ErrUserNotFound), nil
			}
			if err != nil {
				return results.OperationResult[bool, error]{}, fmt.Errorf("failed to delete user: %w", err)
			}
			return results.SuccessResult[bool, error](true), nil
		})
	})
	if err == nil && result.IsSuccess() {
		s.publish(ctx, events.UserDeletedV1, events.UserDeletedPayload{UserID: id.String()})
	}
	return result, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCreate(req CreateUserRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return ErrMissingFields
	}
	addr, err := mail.ParseAddress(req.Email)
	if err != nil || addr.Address != req.Email || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".") {
		return ErrInvalidEmail
	}
	if len(req.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(req.Password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
