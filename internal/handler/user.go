package handler

import (
	"net/http"
	"strconv"

	"github.com/acailab/goaltrack/internal/domain"
	"github.com/acailab/goaltrack/internal/service"
)

// UserHandler handles admin user-management HTTP requests.
type UserHandler struct {
	auth *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// HandleList returns all users with password hashes stripped.
// GET /api/users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err, "list users")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users": toUserDTOs(users),
	})
}

// HandleCreate creates a user with an explicit role.
// POST /api/users
// Request: {"email":"...","password":"...","name":"...","role":"user|admin"}
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.CreateUser(r.Context(), req.Email, req.Password, req.Name, domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, err, "create user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleUpdateRole assigns a new role to a user.
// PUT /api/users/{id}/role
// Request: {"role":"user|admin"}
func (h *UserHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.UpdateRole(r.Context(), id, domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, err, "update user role")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}
