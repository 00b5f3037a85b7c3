package api

import (
	"fmt"
	"net/http"
	"strconv"

	"goaltracker/internal/common"
)

type commentCreateRequest struct {
	Text string `json:"text"`
	Goal uint   `json:"goal"`
}

func (a *API) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req commentCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if req.Text == "" {
		a.writeError(w, r, fmt.Errorf("%w: text is required", common.ErrValidation))
		return
	}
	if req.Goal == 0 {
		a.writeError(w, r, fmt.Errorf("%w: goal is required", common.ErrValidation))
		return
	}

	comment, err := a.store.CreateComment(r.Context(), currentUserID(r), req.Goal, req.Text)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, comment)
}

func (a *API) handleListComments(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("goal")
	goalID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || goalID == 0 {
		a.writeError(w, r, fmt.Errorf("%w: goal is required", common.ErrValidation))
		return
	}

	comments, err := a.store.ListComments(r.Context(), currentUserID(r), uint(goalID), listOptions(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, comments)
}

func (a *API) handleGetComment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	comment, err := a.store.GetComment(r.Context(), currentUserID(r), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, comment)
}

type commentUpdateRequest struct {
	Text string `json:"text"`
}

func (a *API) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var req commentUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if req.Text == "" {
		a.writeError(w, r, fmt.Errorf("%w: text is required", common.ErrValidation))
		return
	}

	comment, err := a.store.UpdateComment(r.Context(), currentUserID(r), id, req.Text)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, comment)
}

func (a *API) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.store.DeleteComment(r.Context(), currentUserID(r), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusNoContent, nil)
}
