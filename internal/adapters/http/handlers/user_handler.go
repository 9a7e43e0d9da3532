package handlers

import (
	"errors"
	"net/http"

	"github.com/jsamuelsen11/boardstate/internal/adapters/http/dto"
	"github.com/jsamuelsen11/boardstate/internal/domain"
	"github.com/jsamuelsen11/boardstate/internal/ports"
)

// UserHandler handles HTTP requests for the user list and the current-user
// selection.
type UserHandler struct {
	users ports.UserDirectory
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users ports.UserDirectory) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers handles GET /api/v1/users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.ToUserListResponse(h.users.State()))
}

// CreateUser handles POST /api/v1/users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.users.AddUser(req.Name, req.Email)

	writeJSON(w, http.StatusCreated, dto.ToUserListResponse(h.users.State()))
}

// DeleteUser handles DELETE /api/v1/users/{id}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if !requestLive(w, r) {
		return
	}
	h.users.RemoveUser(id)

	w.WriteHeader(http.StatusNoContent)
}

// GetCurrentUser handles GET /api/v1/users/current. It reports 404 when
// nothing is selected or the selection names a removed user.
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	u, ok := h.users.CurrentUser()
	if !ok {
		dto.WriteErrorResponse(w, r, errors.Join(errors.New("no current user"), domain.ErrNotFound))
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(&u))
}

// SetCurrentUser handles PUT /api/v1/users/current. The id is not checked
// against the user list.
func (h *UserHandler) SetCurrentUser(w http.ResponseWriter, r *http.Request) {
	var req dto.SetCurrentUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.users.SetCurrentUser(req.ID)

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(h.users.State()))
}

// Events handles GET /api/v1/users/events.
func (h *UserHandler) Events(w http.ResponseWriter, r *http.Request) {
	streamState(w, r, h.users, dto.ToUserListResponse)
}
