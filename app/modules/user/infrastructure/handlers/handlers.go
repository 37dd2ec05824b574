package userhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	userservice "github.com/Black-And-White-Club/pizza-walk/app/modules/user/application"
	"go.opentelemetry.io/otel/trace"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 16

// UserHandlers serves the user account endpoints.
type UserHandlers struct {
	service userservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewUserHandlers creates a new UserHandlers.
func NewUserHandlers(service userservice.Service, logger *slog.Logger, tracer trace.Tracer) *UserHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

type failureResponse struct {
	status  int
	message string
}

// failures maps domain failures to the status and message shown to the user.
var failures = []struct {
	err error
	failureResponse
}{
	{userservice.ErrMissingFields, failureResponse{http.StatusBadRequest, "Please fill in all fields"}},
	{userservice.ErrInvalidEmail, failureResponse{http.StatusBadRequest, "Please enter a valid email address"}},
	{userservice.ErrPasswordTooShort, failureResponse{http.StatusBadRequest, "Password must be at least 6 characters"}},
	{userservice.ErrPasswordTooLong, failureResponse{http.StatusBadRequest, "Password must be at most 72 characters"}},
	{userservice.ErrNameTaken, failureResponse{http.StatusConflict, "Username already taken"}},
	{userservice.ErrEmailTaken, failureResponse{http.StatusConflict, "Email already registered"}},
	{userservice.ErrUserNotFound, failureResponse{http.StatusNotFound, "User not found"}},
	{userservice.ErrIncorrectPassword, failureResponse{http.StatusUnauthorized, "Incorrect password"}},
}

func failureFor(err error) failureResponse {
	for _, f := range failures {
		if errors.Is(err, f.err) {
			return f.failureResponse
		}
	}
	return failureResponse{http.StatusBadRequest, err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}
