package testutils

import (
	"time"

	userservice "github.com/Black-And-White-Club/pizza-walk/app/modules/user/application"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator creates realistic account data for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator, seeded from the clock unless a seed is given.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed so a failing run can be reproduced.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// GenerateUser returns a registration that passes validation.
func (g *TestDataGenerator) GenerateUser() userservice.CreateUserRequest {
	return userservice.CreateUserRequest{
		Name:     g.faker.Username() + g.faker.DigitN(4),
		Email:    g.faker.Email(),
		Password: g.faker.Password(true, true, true, false, false, 12),
	}
}

// GenerateUsers returns n registrations.
func (g *TestDataGenerator) GenerateUsers(n int) []userservice.CreateUserRequest {
	users := make([]userservice.CreateUserRequest, n)
	for i := range users {
		users[i] = g.GenerateUser()
	}
	return users
}
