package api

import (
	"errors"
	"fmt"
	"net/http"

	"goaltracker/internal/auth"
	"goaltracker/internal/common"
	"goaltracker/internal/database/models"
)

type signupRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	PasswordRepeat string `json:"password_repeat"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
}

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	if req.Username == "" {
		a.writeError(w, r, fmt.Errorf("%w: username is required", common.ErrValidation))
		return
	}
	if req.Password != req.PasswordRepeat {
		a.writeError(w, r, fmt.Errorf("%w: passwords do not match", common.ErrValidation))
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		a.writeError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
	}
	if err := a.store.CreateUser(r.Context(), user); err != nil {
		a.writeError(w, r, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	user, err := a.store.GetUserByUsername(r.Context(), req.Username)
	if errors.Is(err, common.ErrNotFound) {
		a.writeError(w, r, common.ErrUnauthorized)
		return
	}
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		a.writeError(w, r, common.ErrUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user.ID, a.secret, auth.TokenValidity)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, loginResponse{User: user, Token: token})
}

func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := a.store.GetUserByID(r.Context(), currentUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, user)
}

// profileRequest uses pointer fields so a partial body leaves the omitted
// fields untouched; the same handler serves PUT and PATCH.
type profileRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if req.Username != nil && *req.Username == "" {
		a.writeError(w, r, fmt.Errorf("%w: username cannot be empty", common.ErrValidation))
		return
	}

	user, err := a.store.GetUserByID(r.Context(), currentUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := a.store.UpdateUser(r.Context(), user); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, user)
}

// handleLogout revokes the presented token. The account itself stays.
func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	a.revoked.Revoke(currentToken(r))
	a.writeJSON(w, http.StatusNoContent, nil)
}

type updatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (a *API) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	user, err := a.store.GetUserByID(r.Context(), currentUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.OldPassword) {
		a.writeError(w, r, fmt.Errorf("%w: old password is incorrect", common.ErrValidation))
		return
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		a.writeError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.store.UpdatePassword(r.Context(), user.ID, hash); err != nil {
		a.writeError(w, r, err)
		return
	}

	a.writeJSON(w, http.StatusOK, user)
}
