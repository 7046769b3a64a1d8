// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"portalpress/internal/slug"
	"portalpress/internal/store"
)

// Taxonomy groups the tag and category handlers. Both resources share the
// same name-plus-slug shape.
type Taxonomy struct {
	tagStore      *store.TagStore
	categoryStore *store.CategoryStore
}

// NewTaxonomy creates a new Taxonomy handler group.
func NewTaxonomy(tagStore *store.TagStore, categoryStore *store.CategoryStore) *Taxonomy {
	return &Taxonomy{tagStore: tagStore, categoryStore: categoryStore}
}

type taxonomyRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// resolve trims the name and derives the slug when absent. Returns a
// validation message or "".
func (req *taxonomyRequest) resolve() string {
	req.Name = strings.TrimSpace(req.Name)
	if msg := validateName(req.Name); msg != "" {
		return msg
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}
	return ""
}

// ListTags returns all tags.
func (h *Taxonomy) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagStore.List(r.Context())
	if err != nil {
		slog.Error("list tags failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": tags})
}

// CreateTag inserts a new tag.
func (h *Taxonomy) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req taxonomyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.resolve(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := h.tagStore.Create(r.Context(), req.Name, req.Slug)
	if err != nil {
		slog.Error("create tag failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateTag modifies an existing tag.
func (h *Taxonomy) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req taxonomyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.resolve(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if err := h.tagStore.Update(r.Context(), id, req.Name, req.Slug); err != nil {
		slog.Error("update tag failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteTag removes a tag after a type-to-confirm check on its name.
func (h *Taxonomy) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	tag, err := h.tagStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find tag failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if tag == nil {
		respondError(w, http.StatusNotFound, "tag not found")
		return
	}
	if !confirmDelete(w, r, tag.Name) {
		return
	}
	if err := h.tagStore.Delete(r.Context(), id); err != nil {
		slog.Error("delete tag failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListCategories returns all categories.
func (h *Taxonomy) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categoryStore.List(r.Context())
	if err != nil {
		slog.Error("list categories failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": cats})
}

// CreateCategory inserts a new category.
func (h *Taxonomy) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req taxonomyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.resolve(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := h.categoryStore.Create(r.Context(), req.Name, req.Slug)
	if err != nil {
		slog.Error("create category failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateCategory modifies an existing category.
func (h *Taxonomy) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req taxonomyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.resolve(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if err := h.categoryStore.Update(r.Context(), id, req.Name, req.Slug); err != nil {
		slog.Error("update category failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteCategory removes a category after a type-to-confirm check on its
// name. Companies still referencing it fail the foreign key and surface as
// a conflict.
func (h *Taxonomy) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	cat, err := h.categoryStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if cat == nil {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	if !confirmDelete(w, r, cat.Name) {
		return
	}
	if err := h.categoryStore.Delete(r.Context(), id); err != nil {
		respondError(w, http.StatusConflict,
			"category is still in use and cannot be deleted")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
