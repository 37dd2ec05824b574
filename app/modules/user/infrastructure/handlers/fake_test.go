package userhandlers

import (
	"context"

	userservice "github.com/Black-And-White-Club/pizza-walk/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/pizza-walk/app/shared/results"
	"github.com/google/uuid"
)

// FakeUserService is a programmable userservice.Service.
type FakeUserService struct {
	trace []string

	ListUsersFunc  func(ctx context.Context) (results.OperationResult[[]*userdb.User, error], error)
	CreateUserFunc func(ctx context.Context, req userservice.CreateUserRequest) (userservice.UserResult, error)
	LoginFunc      func(ctx context.Context, req userservice.LoginRequest) (userservice.UserResult, error)
	SetAdminFunc   func(ctx context.Context, id uuid.UUID, admin bool) (userservice.UserResult, error)
	DeleteUserFunc func(ctx context.Context, id uuid.UUID) (results.OperationResult[bool, error], error)
}

var _ userservice.Service = (*FakeUserService)(nil)

func (f *FakeUserService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserService) Trace() []string {
	return f.trace
}

func (f *FakeUserService) ListUsers(ctx context.Context) (results.OperationResult[[]*userdb.User, error], error) {
	f.record("ListUsers")
	if f.ListUsersFunc != nil {
		return f.ListUsersFunc(ctx)
	}
	return results.SuccessResult[[]*userdb.User, error]([]*userdb.User{}), nil
}

func (f *FakeUserService) CreateUser(ctx context.Context, req userservice.CreateUserRequest) (userservice.UserResult, error) {
	f.record("CreateUser")
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, req)
	}
	return userservice.UserResult{}, nil
}

func (f *FakeUserService) Login(ctx context.Context, req userservice.LoginRequest) (userservice.UserResult, error) {
	f.record("Login")
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, req)
	}
	return userservice.UserResult{}, nil
}

func (f *FakeUserService) SetAdmin(ctx context.Context, id uuid.UUID, admin bool) (userservice.UserResult, error) {
	f.record("SetAdmin")
	if f.SetAdminFunc != nil {
		return f.SetAdminFunc(ctx, id, admin)
	}
	return userservice.UserResult{}, nil
}

func (f *FakeUserService) DeleteUser(ctx context.Context, id uuid.UUID) (results.OperationResult[bool, error], error) {
	f.record("DeleteUser")
	if f.DeleteUserFunc != nil {
		return f.DeleteUserFunc(ctx, id)
	}
	return results.SuccessResult[bool, error](true), nil
}
