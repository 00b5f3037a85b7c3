package api

import (
	"fmt"
	"net/http"
	"strconv"

	"goaltracker/internal/common"
)

type categoryCreateRequest struct {
	Title string `json:"title"`
	Board uint   `json:"board"`
}

func (a *API) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if req.Title == "" {
		a.writeError(w, r, fmt.Errorf("%w: title is required", common.ErrValidation))
		return
	}
	if req.Board == 0 {
		a.writeError(w, r, fmt.Errorf("%w: board is required", common.ErrValidation))
		return
	}

	category, err := a.store.CreateCategory(r.Context(), currentUserID(r), req.Board, req.Title)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, category)
}

func (a *API) handleListCategories(w http.ResponseWriter, r *http.Request) {
	var boardID uint
	if raw := r.URL.Query().Get("board"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || v == 0 {
			a.writeError(w, r, fmt.Errorf("%w: invalid board id %q", common.ErrValidation, raw))
			return
		}
		boardID = uint(v)
	}

	categories, err := a.store.ListCategories(r.Context(), currentUserID(r), boardID, listOptions(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, categories)
}

func (a *API) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	category, err := a.store.GetCategory(r.Context(), currentUserID(r), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, category)
}

type categoryUpdateRequest struct {
	Title string `json:"title"`
}

func (a *API) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var req categoryUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if req.Title == "" {
		a.writeError(w, r, fmt.Errorf("%w: title is required", common.ErrValidation))
		return
	}

	category, err := a.store.UpdateCategory(r.Context(), currentUserID(r), id, req.Title)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, category)
}

func (a *API) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.store.DeleteCategory(r.Context(), currentUserID(r), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusNoContent, nil)
}
