// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"portalpress/internal/middleware"
	"portalpress/internal/models"
	"portalpress/internal/store"
)

// minPasswordLen is the minimum password length for new accounts.
const minPasswordLen = 8

// Users groups the admin-only user management handlers.
type Users struct {
	userStore *store.UserStore
}

// NewUsers creates a new Users handler group.
func NewUsers(userStore *store.UserStore) *Users {
	return &Users{userStore: userStore}
}

// List returns all users. Password hashes and TOTP secrets never leave the
// store layer's JSON-excluded fields.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List(r.Context())
	if err != nil {
		slog.Error("list users failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": users})
}

type createUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Create registers a new account.
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondError(w, http.StatusUnprocessableEntity, "a valid email is required")
		return
	}
	if len(req.Password) < minPasswordLen {
		respondError(w, http.StatusUnprocessableEntity, "password must be at least 8 characters")
		return
	}
	if msg := validateName(req.DisplayName); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	role := models.Role(req.Role)
	switch role {
	case models.RoleAdmin, models.RoleEditor, models.RoleAuthor:
	default:
		respondError(w, http.StatusUnprocessableEntity, "role must be admin, editor, or author")
		return
	}

	existing, err := h.userStore.FindByEmail(r.Context(), req.Email)
	if err != nil {
		slog.Error("user lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "an account with this email already exists")
		return
	}

	created, err := h.userStore.Create(r.Context(), req.Email, req.Password,
		strings.TrimSpace(req.DisplayName), role)
	if err != nil {
		slog.Error("create user failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type updateUserRequest struct {
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Update changes a user's display name and role.
func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateName(req.DisplayName); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	role := models.Role(req.Role)
	switch role {
	case models.RoleAdmin, models.RoleEditor, models.RoleAuthor:
	default:
		respondError(w, http.StatusUnprocessableEntity, "role must be admin, editor, or author")
		return
	}

	if err := h.userStore.Update(r.Context(), id, strings.TrimSpace(req.DisplayName), role); err != nil {
		slog.Error("update user failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ResetTwoFA clears a user's TOTP enrollment so they can re-enroll at next
// login. Used when someone loses their authenticator device.
func (h *Users) ResetTwoFA(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.userStore.ResetTOTP(r.Context(), id); err != nil {
		slog.Error("reset totp failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "2fa reset"})
}

// Delete removes an account after a type-to-confirm check on the display
// name. Admins cannot delete themselves.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess.UserID == id {
		respondError(w, http.StatusConflict, "you cannot delete your own account")
		return
	}

	user, err := h.userStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find user failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	if !confirmDelete(w, r, user.DisplayName) {
		return
	}

	if err := h.userStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrUserOwnsArticles) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		slog.Error("delete user failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
