//go:build integration

package userintegrationtests

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	userservice "github.com/Black-And-White-Club/pizza-walk/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/pizza-walk/app/observability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Lifecycle(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	repo := userdb.NewRepository(testEnv.DB)

	u := &userdb.User{Name: "PizzaFan", Email: "fan@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, nil, u))
	require.NotEqual(t, uuid.Nil, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byName, err := repo.GetByName(ctx, nil, "pizzafan")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, nil, "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "PizzaFan", byEmail.Name)

	updated, err := repo.UpdateAdmin(ctx, nil, u.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Admin)

	users, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].Admin)

	require.NoError(t, repo.Delete(ctx, nil, u.ID))
	_, err = repo.GetByID(ctx, nil, u.ID)
	assert.ErrorIs(t, err, userdb.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, nil, u.ID), userdb.ErrNotFound)
}

func TestRepository_DuplicateEmail(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	repo := userdb.NewRepository(testEnv.DB)

	require.NoError(t, repo.Create(ctx, nil, &userdb.User{Name: "One", Email: "same@example.com", PasswordHash: "h"}))
	err := repo.Create(ctx, nil, &userdb.User{Name: "Two", Email: "same@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, userdb.ErrDuplicateEmail)
}

func TestRepository_DuplicateNameIgnoresCase(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	repo := userdb.NewRepository(testEnv.DB)

	require.NoError(t, repo.Create(ctx, nil, &userdb.User{Name: "PizzaFan", Email: "one@example.com", PasswordHash: "h"}))
	err := repo.Create(ctx, nil, &userdb.User{Name: "pizzafan", Email: "two@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, userdb.ErrDuplicateName)
}

func TestUserService_ConcurrentCreatesWithSameName(t *testing.T) {
	resetDB(t)
	obs := observability.NewNoop()
	svc := userservice.NewUserService(
		userdb.NewRepository(testEnv.DB),
		nil,
		obs.Provider.Logger,
		obs.Registry.UserMetrics,
		obs.Registry.Tracer,
		testEnv.DB,
	)

	const attempts = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		taken   int
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			result, err := svc.CreateUser(context.Background(), userservice.CreateUserRequest{
				Name:     "SameName",
				Email:    fmt.Sprintf("racer%d@example.com", i),
				Password: "secret123",
			})
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case result.IsSuccess():
				created++
			case result.IsFailure() && errors.Is(*result.Failure, userservice.ErrNameTaken):
				taken++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, taken)

	users, err := userdb.NewRepository(testEnv.DB).List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRepository_UpdateMissingUser(t *testing.T) {
	resetDB(t)
	repo := userdb.NewRepository(testEnv.DB)

	_, err := repo.UpdateAdmin(context.Background(), nil, uuid.New(), true)
	assert.ErrorIs(t, err, userdb.ErrNotFound)
}
