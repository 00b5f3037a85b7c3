package api

import (
	"fmt"
	"net/http"
	"time"

	"goaltracker/internal/common"
	"goaltracker/internal/database"
	"goaltracker/internal/database/models"
)

type goalCreateRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     *time.Time          `json:"due_date"`
	Status      models.GoalStatus   `json:"status"`
	Priority    models.GoalPriority `json:"priority"`
	Category    uint                `json:"category"`
}

func (a *API) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if req.Title == "" {
		a.writeError(w, r, fmt.Errorf("%w: title is required", common.ErrValidation))
		return
	}
	if req.Category == 0 {
		a.writeError(w, r, fmt.Errorf("%w: category is required", common.ErrValidation))
		return
	}

	goal := &models.Goal{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		Priority:    req.Priority,
		CategoryID:  req.Category,
	}
	goal, err := a.store.CreateGoal(r.Context(), currentUserID(r), goal)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, goal)
}

// goalFilter reads category/priority in-filters and the due-date window.
func goalFilter(r *http.Request) database.GoalFilter {
	filter := database.GoalFilter{
		Categories: uintListParam(r, "category"),
	}
	for _, raw := range splitParam(r, "priority") {
		if p := models.GoalPriority(raw); p.Valid() {
			filter.Priorities = append(filter.Priorities, p)
		}
	}
	if t, err := time.Parse(time.RFC3339, r.URL.Query().Get("due_date__lte")); err == nil {
		filter.DueDateLte = &t
	}
	if t, err := time.Parse(time.RFC3339, r.URL.Query().Get("due_date__gte")); err == nil {
		filter.DueDateGte = &t
	}
	return filter
}

func (a *API) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := a.store.ListGoals(r.Context(), currentUserID(r), goalFilter(r), listOptions(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, goals)
}

func (a *API) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	goal, err := a.store.GetGoal(r.Context(), currentUserID(r), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, goal)
}

type goalUpdateRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	DueDate     *time.Time           `json:"due_date"`
	Status      *models.GoalStatus   `json:"status"`
	Priority    *models.GoalPriority `json:"priority"`
}

func (a *API) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var req goalUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if req.Title != nil && *req.Title == "" {
		a.writeError(w, r, fmt.Errorf("%w: title cannot be empty", common.ErrValidation))
		return
	}

	goal, err := a.store.UpdateGoal(r.Context(), currentUserID(r), id, database.GoalUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, goal)
}

func (a *API) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.store.DeleteGoal(r.Context(), currentUserID(r), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusNoContent, nil)
}
