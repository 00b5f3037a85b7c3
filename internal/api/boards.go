package api

import (
	"fmt"
	"net/http"

	"goaltracker/internal/common"
	"goaltracker/internal/database"
)

type boardCreateRequest struct {
	Title string `json:"title"`
}

func (a *API) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var req boardCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if req.Title == "" {
		a.writeError(w, r, fmt.Errorf("%w: title is required", common.ErrValidation))
		return
	}

	board, err := a.store.CreateBoard(r.Context(), currentUserID(r), req.Title)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, board)
}

func (a *API) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := a.store.ListBoards(r.Context(), currentUserID(r), listOptions(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, boards)
}

func (a *API) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	board, err := a.store.GetBoard(r.Context(), currentUserID(r), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, board)
}

type boardUpdateRequest struct {
	Title        string                       `json:"title"`
	Participants []database.ParticipantUpdate `json:"participants"`
}

func (a *API) handleUpdateBoard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var req boardUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if req.Title == "" {
		a.writeError(w, r, fmt.Errorf("%w: title is required", common.ErrValidation))
		return
	}

	board, err := a.store.UpdateBoard(r.Context(), currentUserID(r), id, req.Title, req.Participants)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, board)
}

func (a *API) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.store.DeleteBoard(r.Context(), currentUserID(r), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusNoContent, nil)
}
