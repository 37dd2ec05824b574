package userhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	userservice "github.com/Black-And-White-Club/pizza-walk/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/pizza-walk/app/shared/results"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

var testUserID = uuid.MustParse("6f1c9a52-8c51-4f8e-9d5e-3f0a2b7c1d11")

func testUser() *userdb.User {
	return &userdb.User{
		ID:           testUserID,
		Name:         "Walker",
		Email:        "walker@example.com",
		PasswordHash: "$2a$10$hash",
		Admin:        false,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestRouter(svc *FakeUserService) http.Handler {
	h := NewUserHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewTracerProvider().Tracer("test"))
	r := chi.NewRouter()
	r.Get("/api/users", h.HandleListUsers)
	r.Post("/api/users", h.HandleCreateUser)
	r.Post("/api/users/login", h.HandleLogin)
	r.Patch("/api/users/{id}/admin", h.HandleSetAdmin)
	r.Delete("/api/users/{id}", h.HandleDeleteUser)
	return r
}

func TestUserHandlers(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		url          string
		body         string
		setupService func(*FakeUserService)
		wantStatus   int
		verify       func(t *testing.T, rr *httptest.ResponseRecorder, svc *FakeUserService)
	}{
		{
			name:   "list users hides password hashes",
			method: http.MethodGet,
			url:    "/api/users",
			setupService: func(s *FakeUserService) {
				s.ListUsersFunc = func(context.Context) (results.OperationResult[[]*userdb.User, error], error) {
					return results.SuccessResult[[]*userdb.User, error]([]*userdb.User{testUser()}), nil
				}
			},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder, _ *FakeUserService) {
				var got []map[string]any
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
				require.Len(t, got, 1)
				assert.Equal(t, testUserID.String(), got[0]["_id"])
				assert.Equal(t, "Walker", got[0]["name"])
				assert.Equal(t, false, got[0]["admin"])
				assert.Equal(t, "2026-01-01T00:00:00Z", got[0]["createdAt"])
				assert.NotContains(t, got[0], "passwordHash")
				assert.NotContains(t, rr.Body.String(), "$2a$")
			},
		},
		{
			name:   "create user",
			method: http.MethodPost,
			url:    "/api/users",
			body:   `{"name":"Walker","email":"walker@example.com","password":"secret1"}`,
			setupService: func(s *FakeUserService) {
				s.CreateUserFunc = func(_ context.Context, req userservice.CreateUserRequest) (userservice.UserResult, error) {
					assert.Equal(t, "secret1", req.Password)
					return results.SuccessResult[*userdb.User, error](testUser()), nil
				}
			},
			wantStatus: http.StatusCreated,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder, _ *FakeUserService) {
				assert.Contains(t, rr.Body.String(), `"email":"walker@example.com"`)
				assert.NotContains(t, rr.Body.String(), "secret1")
			},
		},
		{
			name:   "create user duplicate email",
			method: http.MethodPost,
			url:    "/api/users",
			body:   `{"name":"Walker","email":"walker@example.com","password":"secret1"}`,
			setupService: func(s *FakeUserService) {
				s.CreateUserFunc = func(context.Context, userservice.CreateUserRequest) (userservice.UserResult, error) {
					return results.FailureResult[*userdb.User, error](userservice.ErrEmailTaken), nil
				}
			},
			wantStatus: http.StatusConflict,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder, _ *FakeUserService) {
				assert.JSONEq(t, `{"error":"Email already registered"}`, rr.Body.String())
			},
		},
		{
			name:   "create user short password",
			method: http.MethodPost,
			url:    "/api/users",
			body:   `{"name":"Walker","email":"walker@example.com","password":"123"}`,
			setupService: func(s *FakeUserService) {
				s.CreateUserFunc = func(context.Context, userservice.CreateUserRequest) (userservice.UserResult, error) {
					return results.FailureResult[*userdb.User, error](userservice.ErrPasswordTooShort), nil
				}
			},
			wantStatus: http.StatusBadRequest,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder, _ *FakeUserService) {
				assert.JSONEq(t, `{"error":"Password must be at least 6 characters"}`, rr.Body.String())
			},
		},
		{
			name:       "create user malformed body",
			method:     http.MethodPost,
			url:        "/api/users",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			verify: func(t *testing.T, _ *httptest.ResponseRecorder, svc *FakeUserService) {
				assert.Empty(t, svc.Trace())
			},
		},
		{
			name:   "create user infrastructure error",
			method: http.MethodPost,
			url:    "/api/users",
			body:   `{}`,
			setupService: func(s *FakeUserService) {
				s.CreateUserFunc = func(context.Context, userservice.CreateUserRequest) (userservice.UserResult, error) {
					return userservice.UserResult{}, errors.New("CreateUser: connection refused")
				}
			},
			wantStatus: http.StatusInternalServerError,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder, _ *FakeUserService) {
				assert.NotContains(t, rr.Body.String(), "connection refused")
			},
		},
		{
			name:   "login wrong password",
			method: http.MethodPost,
			url:    "/api/users/login",
			body:   `{"name":"Walker","password":"nope"}`,
			setupService: func(s *FakeUserService) {
				s.LoginFunc = func(context.Context, userservice.LoginRequest) (userservice.UserResult, error) {
					return results.FailureResult[*userdb.User, error](userservice.ErrIncorrectPassword), nil
				}
			},
			wantStatus: http.StatusUnauthorized,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder, _ *FakeUserService) {
				assert.JSONEq(t, `{"error":"Incorrect password"}`, rr.Body.String())
			},
		},
		{
			name:   "login success",
			method: http.MethodPost,
			url:    "/api/users/login",
			body:   `{"name":"Walker","password":"secret1"}`,
			setupService: func(s *FakeUserService) {
				s.LoginFunc = func(context.Context, userservice.LoginRequest) (userservice.UserResult, error) {
					return results.SuccessResult[*userdb.User, error](testUser()), nil
				}
			},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder, _ *FakeUserService) {
				assert.Contains(t, rr.Body.String(), `"name":"Walker"`)
			},
		},
		{
			name:   "set admin",
			method: http.MethodPatch,
			url:    "/api/users/" + testUserID.String() + "/admin",
			body:   `{"admin":true}`,
			setupService: func(s *FakeUserService) {
				s.SetAdminFunc = func(_ context.Context, id uuid.UUID, admin bool) (userservice.UserResult, error) {
					u := testUser()
					u.ID, u.Admin = id, admin
					return results.SuccessResult[*userdb.User, error](u), nil
				}
			},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder, _ *FakeUserService) {
				assert.Contains(t, rr.Body.String(), `"admin":true`)
			},
		},
		{
			name:       "set admin requires the flag",
			method:     http.MethodPatch,
			url:        "/api/users/" + testUserID.String() + "/admin",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			verify: func(t *testing.T, _ *httptest.ResponseRecorder, svc *FakeUserService) {
				assert.Empty(t, svc.Trace())
			},
		},
		{
			name:       "set admin bad id",
			method:     http.MethodPatch,
			url:        "/api/users/not-a-uuid/admin",
			body:       `{"admin":true}`,
			wantStatus: http.StatusBadRequest,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder, _ *FakeUserService) {
				assert.JSONEq(t, `{"error":"invalid user id"}`, rr.Body.String())
			},
		},
		{
			name:   "delete unknown user",
			method: http.MethodDelete,
			url:    "/api/users/" + testUserID.String(),
			setupService: func(s *FakeUserService) {
				s.DeleteUserFunc = func(context.Context, uuid.UUID) (results.OperationResult[bool, error], error) {
					return results.FailureResult[bool, error](userservice.ErrUserNotFound), nil
				}
			},
			wantStatus: http.StatusNotFound,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder, _ *FakeUserService) {
				assert.JSONEq(t, `{"error":"User not found"}`, rr.Body.String())
			},
		},
		{
			name:       "delete user",
			method:     http.MethodDelete,
			url:        "/api/users/" + testUserID.String(),
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder, svc *FakeUserService) {
				assert.Equal(t, []string{"DeleteUser"}, svc.Trace())
				assert.Contains(t, rr.Body.String(), testUserID.String())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeUserService{}
			if tt.setupService != nil {
				tt.setupService(svc)
			}
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.url, body)
			rr := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			tt.verify(t, rr, svc)
		})
	}
}
