// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"portalpress/internal/imaging"
	"portalpress/internal/models"
	"portalpress/internal/storage"
	"portalpress/internal/store"
)

// maxBannerUpload caps banner image uploads (10 MB).
const maxBannerUpload = 10 << 20

// allowedBannerTypes are the MIME types accepted for banner images.
var allowedBannerTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Banners groups the banner management handlers, including image upload.
type Banners struct {
	bannerStore *store.BannerStore
	storage     *storage.Client
}

// NewBanners creates a new Banners handler group. storage may be nil when
// object storage is not configured; uploads then return 503.
func NewBanners(bannerStore *store.BannerStore, storageClient *storage.Client) *Banners {
	return &Banners{bannerStore: bannerStore, storage: storageClient}
}

// bannerView decorates a banner with its public image URLs.
func (h *Banners) bannerView(b *models.Banner) *models.Banner {
	if h.storage != nil && b.ImageKey != "" {
		b.ImageURL = h.storage.FileURL(b.ImageKey)
	}
	return b
}

// List returns all banners with resolved image URLs.
func (h *Banners) List(w http.ResponseWriter, r *http.Request) {
	banners, err := h.bannerStore.List(r.Context())
	if err != nil {
		slog.Error("list banners failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	for i := range banners {
		h.bannerView(&banners[i])
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": banners})
}

// Get returns one banner.
func (h *Banners) Get(w http.ResponseWriter, r *http.Request) {
	banner, ok := h.loadBanner(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.bannerView(banner))
}

func (h *Banners) loadBanner(w http.ResponseWriter, r *http.Request) (*models.Banner, bool) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	banner, err := h.bannerStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find banner failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	if banner == nil {
		respondError(w, http.StatusNotFound, "banner not found")
		return nil, false
	}
	return banner, true
}

type bannerRequest struct {
	Title     string     `json:"title"`
	TargetURL string     `json:"target_url"`
	Active    bool       `json:"active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

func (req *bannerRequest) validate() string {
	if msg := validateName(req.Title); msg != "" {
		return msg
	}
	if msg := validateLink(req.TargetURL); msg != "" {
		return msg
	}
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return "End date must be after the start date."
	}
	return ""
}

// Create inserts a new banner. The image is attached afterwards via Upload.
func (h *Banners) Create(w http.ResponseWriter, r *http.Request) {
	var req bannerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := h.bannerStore.Create(r.Context(), &models.Banner{
		Title:     req.Title,
		TargetURL: req.TargetURL,
		Active:    req.Active,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	})
	if err != nil {
		slog.Error("create banner failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update modifies an existing banner's metadata.
func (h *Banners) Update(w http.ResponseWriter, r *http.Request) {
	banner, ok := h.loadBanner(w, r)
	if !ok {
		return
	}

	var req bannerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	banner.Title = req.Title
	banner.TargetURL = req.TargetURL
	banner.Active = req.Active
	banner.StartsAt = req.StartsAt
	banner.EndsAt = req.EndsAt
	if err := h.bannerStore.Update(r.Context(), banner); err != nil {
		slog.Error("update banner failed", "error", err, "id", banner.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, h.bannerView(banner))
}

// Upload receives a multipart banner image, generates the display variants,
// stores them in S3, and records the full-size key on the banner.
func (h *Banners) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	banner, ok := h.loadBanner(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBannerUpload+1024)
	if err := r.ParseMultipartForm(maxBannerUpload); err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "file too large (max 10 MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()
	if header.Size > maxBannerUpload {
		respondError(w, http.StatusRequestEntityTooLarge, "file too large (max 10 MB)")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	if ct := http.DetectContentType(data); !allowedBannerTypes[ct] {
		respondError(w, http.StatusUnsupportedMediaType, "banner images must be JPEG, PNG, or GIF")
		return
	}

	variants, err := imaging.GenerateVariants(data, imaging.BannerVariants)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "could not decode image")
		return
	}

	var fullKey string
	base := uuid.NewString()
	for _, v := range variants {
		key := fmt.Sprintf("banners/%s/%s/%s.jpg", banner.ID, base, v.Name)
		if err := h.storage.Upload(r.Context(), key, v.ContentType,
			bytes.NewReader(v.Data), int64(len(v.Data))); err != nil {
			slog.Error("banner upload failed", "error", err, "key", key)
			respondError(w, http.StatusBadGateway, "storage upload failed")
			return
		}
		if v.Name == "full" || fullKey == "" {
			fullKey = key
		}
	}

	if err := h.bannerStore.SetImageKey(r.Context(), banner.ID, fullKey); err != nil {
		slog.Error("set banner image key failed", "error", err, "id", banner.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	banner.ImageKey = fullKey
	respondJSON(w, http.StatusOK, h.bannerView(banner))
}

// Delete removes a banner and its stored image after a type-to-confirm
// check on the banner title.
func (h *Banners) Delete(w http.ResponseWriter, r *http.Request) {
	banner, ok := h.loadBanner(w, r)
	if !ok {
		return
	}

	var req deleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !confirmMatch(banner.Title, req.ConfirmTitle) {
		respondError(w, http.StatusUnprocessableEntity,
			"confirmation does not match the banner title")
		return
	}

	if err := h.bannerStore.Delete(r.Context(), banner.ID); err != nil {
		slog.Error("delete banner failed", "error", err, "id", banner.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if h.storage != nil && banner.ImageKey != "" {
		if err := h.storage.Delete(r.Context(), banner.ImageKey); err != nil {
			slog.Warn("banner image cleanup failed", "error", err, "key", banner.ImageKey)
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
