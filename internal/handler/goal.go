package handler

import (
	"net/http"
	"strconv"

	"github.com/acailab/goaltrack/internal/service"
)

// GoalHandler handles goal CRUD HTTP requests.
type GoalHandler struct {
	goals *service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goals *service.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

// HandleList returns all goals.
// GET /api/goals
func (h *GoalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goals.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "list goals")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"goals": toGoalDTOs(goals),
	})
}

// HandleGet returns a single goal.
// GET /api/goals/{id}
func (h *GoalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid goal ID.")
		return
	}

	goal, err := h.goals.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "get goal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"goal": toGoalDTO(goal),
	})
}

// HandleCreate creates a new goal owned by the caller.
// POST /api/goals
// Request: {"title":"...","description":"...","status":"pending"}
func (h *GoalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	goal, err := h.goals.Create(r.Context(), identity, req.Title, req.Description, req.Status)
	if err != nil {
		writeServiceError(w, err, "create goal")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"goal": toGoalDTO(goal),
	})
}

// HandleUpdate applies a partial update to a goal.
// PUT /api/goals/{id}
func (h *GoalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid goal ID.")
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	goal, err := h.goals.Update(r.Context(), id, service.GoalUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		writeServiceError(w, err, "update goal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"goal": toGoalDTO(goal),
	})
}

// HandleDelete removes a goal.
// DELETE /api/goals/{id}
func (h *GoalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid goal ID.")
		return
	}

	if err := h.goals.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "delete goal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Goal deleted successfully.",
	})
}
