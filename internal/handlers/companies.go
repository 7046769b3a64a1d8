// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"portalpress/internal/models"
	"portalpress/internal/store"
)

// Companies groups the local-business listing handlers.
type Companies struct {
	companyStore *store.CompanyStore
}

// NewCompanies creates a new Companies handler group.
func NewCompanies(companyStore *store.CompanyStore) *Companies {
	return &Companies{companyStore: companyStore}
}

// List returns companies, optionally filtered by category (?category_id=).
func (h *Companies) List(w http.ResponseWriter, r *http.Request) {
	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		categoryID = &id
	}

	companies, err := h.companyStore.List(r.Context(), categoryID)
	if err != nil {
		slog.Error("list companies failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": companies})
}

// Get returns one company.
func (h *Companies) Get(w http.ResponseWriter, r *http.Request) {
	company, ok := h.loadCompany(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, company)
}

func (h *Companies) loadCompany(w http.ResponseWriter, r *http.Request) (*models.Company, bool) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	company, err := h.companyStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find company failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	if company == nil {
		respondError(w, http.StatusNotFound, "company not found")
		return nil, false
	}
	return company, true
}

type companyRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Address     *string    `json:"address"`
	Phone       *string    `json:"phone"`
	WhatsApp    *string    `json:"whatsapp"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Active      bool       `json:"active"`
}

// Create inserts a new company.
func (h *Companies) Create(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateName(req.Name); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := h.companyStore.Create(r.Context(), &models.Company{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		WhatsApp:    req.WhatsApp,
		CategoryID:  req.CategoryID,
		Active:      req.Active,
	})
	if err != nil {
		slog.Error("create company failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update modifies an existing company.
func (h *Companies) Update(w http.ResponseWriter, r *http.Request) {
	company, ok := h.loadCompany(w, r)
	if !ok {
		return
	}

	var req companyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateName(req.Name); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	company.Name = strings.TrimSpace(req.Name)
	company.Description = req.Description
	company.Address = req.Address
	company.Phone = req.Phone
	company.WhatsApp = req.WhatsApp
	company.CategoryID = req.CategoryID
	company.Active = req.Active
	if err := h.companyStore.Update(r.Context(), company); err != nil {
		slog.Error("update company failed", "error", err, "id", company.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, company)
}

// Delete removes a company after a type-to-confirm check on its name.
func (h *Companies) Delete(w http.ResponseWriter, r *http.Request) {
	company, ok := h.loadCompany(w, r)
	if !ok {
		return
	}
	if !confirmDelete(w, r, company.Name) {
		return
	}
	if err := h.companyStore.Delete(r.Context(), company.ID); err != nil {
		slog.Error("delete company failed", "error", err, "id", company.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
