// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"portalpress/internal/models"
	"portalpress/internal/store"
)

// Portals groups the portal management handlers.
type Portals struct {
	portalStore *store.PortalStore
}

// NewPortals creates a new Portals handler group.
func NewPortals(portalStore *store.PortalStore) *Portals {
	return &Portals{portalStore: portalStore}
}

// List returns portals, optionally only the active ones (?active=true).
func (h *Portals) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	portals, err := h.portalStore.List(r.Context(), activeOnly)
	if err != nil {
		slog.Error("list portals failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": portals})
}

// Get returns one portal.
func (h *Portals) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	portal, err := h.portalStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find portal failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if portal == nil {
		respondError(w, http.StatusNotFound, "portal not found")
		return
	}
	respondJSON(w, http.StatusOK, portal)
}

type portalRequest struct {
	Name         string `json:"name"`
	ReferralLink string `json:"referral_link"`
	Active       bool   `json:"active"`
}

func (req *portalRequest) validate() string {
	if msg := validateName(req.Name); msg != "" {
		return msg
	}
	return validateLink(req.ReferralLink)
}

// Create inserts a new portal.
func (h *Portals) Create(w http.ResponseWriter, r *http.Request) {
	var req portalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := h.portalStore.Create(r.Context(), &models.Portal{
		Name:         strings.TrimSpace(req.Name),
		ReferralLink: req.ReferralLink,
		Active:       req.Active,
	})
	if err != nil {
		slog.Error("create portal failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update modifies an existing portal.
func (h *Portals) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req portalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	portal, err := h.portalStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find portal failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if portal == nil {
		respondError(w, http.StatusNotFound, "portal not found")
		return
	}

	portal.Name = strings.TrimSpace(req.Name)
	portal.ReferralLink = req.ReferralLink
	portal.Active = req.Active
	if err := h.portalStore.Update(r.Context(), portal); err != nil {
		slog.Error("update portal failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, portal)
}

// Delete removes a portal after a type-to-confirm check on its name.
// Postgres rejects the delete while published articles still reference it.
func (h *Portals) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	portal, err := h.portalStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find portal failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if portal == nil {
		respondError(w, http.StatusNotFound, "portal not found")
		return
	}
	if !confirmDelete(w, r, portal.Name) {
		return
	}
	if err := h.portalStore.Delete(r.Context(), id); err != nil {
		respondError(w, http.StatusConflict,
			"portal still has published articles and cannot be deleted")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
