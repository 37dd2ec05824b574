package userhandlers

import (
	"net/http"

	userservice "github.com/Black-And-White-Club/pizza-walk/app/modules/user/application"
	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *UserHandlers) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := h.service.ListUsers(ctx)
	if err != nil {
		h.internalError(w, r, "list users", err)
		return
	}
	if result.IsFailure() {
		f := failureFor(*result.Failure)
		writeError(w, f.status, f.message)
		return
	}
	writeJSON(w, http.StatusOK, *result.Success)
}

func (h *UserHandlers) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req userservice.CreateUserRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.CreateUser(ctx, req)
	if err != nil {
		h.internalError(w, r, "create user", err)
		return
	}
	if result.IsFailure() {
		f := failureFor(*result.Failure)
		writeError(w, f.status, f.message)
		return
	}
	writeJSON(w, http.StatusCreated, *result.Success)
}

func (h *UserHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req userservice.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Login(ctx, req)
	if err != nil {
		h.internalError(w, r, "login", err)
		return
	}
	if result.IsFailure() {
		f := failureFor(*result.Failure)
		writeError(w, f.status, f.message)
		return
	}
	writeJSON(w, http.StatusOK, *result.Success)
}

type setAdminRequest struct {
	Admin *bool `json:"admin"`
}

func (h *UserHandlers) HandleSetAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req setAdminRequest
	if err := decodeBody(w, r, &req); err != nil || req.Admin == nil {
		writeError(w, http.StatusBadRequest, "admin must be true or false")
		return
	}

	result, err := h.service.SetAdmin(ctx, id, *req.Admin)
	if err != nil {
		h.internalError(w, r, "set admin", err)
		return
	}
	if result.IsFailure() {
		f := failureFor(*result.Failure)
		writeError(w, f.status, f.message)
		return
	}
	writeJSON(w, http.StatusOK, *result.Success)
}

func (h *UserHandlers) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	result, err := h.service.DeleteUser(ctx, id)
	if err != nil {
		h.internalError(w, r, "delete user", err)
		return
	}
	if result.IsFailure() {
		f := failureFor(*result.Failure)
		writeError(w, f.status, f.message)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted", "_id": id.String()})
}

func (h *UserHandlers) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *UserHandlers) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	h.logger.ErrorContext(ctx, "User request failed",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", op),
		attr.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
