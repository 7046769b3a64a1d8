// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"portalpress/internal/store"
)

// WhatsAppGroups groups the community group invite handlers.
type WhatsAppGroups struct {
	groupStore *store.WhatsAppGroupStore
}

// NewWhatsAppGroups creates a new WhatsAppGroups handler group.
func NewWhatsAppGroups(groupStore *store.WhatsAppGroupStore) *WhatsAppGroups {
	return &WhatsAppGroups{groupStore: groupStore}
}

// List returns all groups.
func (h *WhatsAppGroups) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupStore.List(r.Context())
	if err != nil {
		slog.Error("list whatsapp groups failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": groups})
}

type groupRequest struct {
	Name       string `json:"name"`
	InviteLink string `json:"invite_link"`
	Active     bool   `json:"active"`
}

func (req *groupRequest) validate() string {
	if msg := validateName(req.Name); msg != "" {
		return msg
	}
	if strings.TrimSpace(req.InviteLink) == "" {
		return "Invite link is required."
	}
	return validateLink(req.InviteLink)
}

// Create inserts a new group.
func (h *WhatsAppGroups) Create(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := h.groupStore.Create(r.Context(),
		strings.TrimSpace(req.Name), req.InviteLink, req.Active)
	if err != nil {
		slog.Error("create whatsapp group failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update modifies an existing group.
func (h *WhatsAppGroups) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req groupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	group, err := h.groupStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find whatsapp group failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if group == nil {
		respondError(w, http.StatusNotFound, "group not found")
		return
	}

	group.Name = strings.TrimSpace(req.Name)
	group.InviteLink = req.InviteLink
	group.Active = req.Active
	if err := h.groupStore.Update(r.Context(), group); err != nil {
		slog.Error("update whatsapp group failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, group)
}

// Delete removes a group after a type-to-confirm check on its name.
func (h *WhatsAppGroups) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	group, err := h.groupStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find whatsapp group failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if group == nil {
		respondError(w, http.StatusNotFound, "group not found")
		return
	}
	if !confirmDelete(w, r, group.Name) {
		return
	}
	if err := h.groupStore.Delete(r.Context(), id); err != nil {
		slog.Error("delete whatsapp group failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
