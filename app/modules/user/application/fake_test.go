package userservice

import (
	"context"

	userdb "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeUserRepository provides a programmable stub for the userdb.Repository interface.
type FakeUserRepository struct {
	trace []string

	CreateFunc      func(ctx context.Context, db bun.IDB, user *userdb.User) error
	ListFunc        func(ctx context.Context, db bun.IDB) ([]*userdb.User, error)
	GetByIDFunc     func(ctx context.Context, db bun.IDB, id uuid.UUID) (*userdb.User, error)
	GetByEmailFunc  func(ctx context.Context, db bun.IDB, email string) (*userdb.User, error)
	GetByNameFunc   func(ctx context.Context, db bun.IDB, name string) (*userdb.User, error)
	UpdateAdminFunc func(ctx context.Context, db bun.IDB, id uuid.UUID, admin bool) (*userdb.User, error)
	DeleteFunc      func(ctx context.Context, db bun.IDB, id uuid.UUID) error
}

var _ userdb.Repository = (*FakeUserRepository)(nil)

func (f *FakeUserRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserRepository) Trace() []string {
	return f.trace
}

func (f *FakeUserRepository) Create(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, user)
	}
	return nil
}

func (f *FakeUserRepository) List(ctx context.Context, db bun.IDB) ([]*userdb.User, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	return []*userdb.User{}, nil
}

func (f *FakeUserRepository) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*userdb.User, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) GetByEmail(ctx context.Context, db bun.IDB, email string) (*userdb.User, error) {
	f.record("GetByEmail")
	if f.GetByEmailFunc != nil {
		return f.GetByEmailFunc(ctx, db, email)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) GetByName(ctx context.Context, db bun.IDB, name string) (*userdb.User, error) {
	f.record("GetByName")
	if f.GetByNameFunc != nil {
		return f.GetByNameFunc(ctx, db, name)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) UpdateAdmin(ctx context.Context, db bun.IDB, id uuid.UUID, admin bool) (*userdb.User, error) {
	f.record("UpdateAdmin")
	if f.UpdateAdminFunc != nil {
		return f.UpdateAdminFunc(ctx, db, id, admin)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	return nil
}

// FakePublisher records published events.
type FakePublisher struct {
	Topics   []string
	Payloads []any
	Err      error
}

func (f *FakePublisher) Publish(_ context.Context, topic string, payload any) error {
	f.Topics = append(f.Topics, topic)
	f.Payloads = append(f.Payloads, payload)
	return f.Err
}
