// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"portalpress/internal/cache"
	"portalpress/internal/markdown"
	"portalpress/internal/middleware"
	"portalpress/internal/models"
	"portalpress/internal/publish"
	"portalpress/internal/slug"
	"portalpress/internal/store"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	excerptLen      = 280
)

// Articles groups the article workflow handlers: CRUD, moderation,
// multi-portal publishing, and engagement counters.
type Articles struct {
	articleStore *store.ArticleStore
	portalStore  *store.PortalStore
	stats        *cache.StatsCache
}

// NewArticles creates a new Articles handler group.
func NewArticles(articleStore *store.ArticleStore, portalStore *store.PortalStore, stats *cache.StatsCache) *Articles {
	return &Articles{
		articleStore: articleStore,
		portalStore:  portalStore,
		stats:        stats,
	}
}

// List returns a page of articles. Query parameters: status, author_id,
// portal_id, from, to (RFC 3339 dates), page, per_page. Authors see only
// their own articles; moderators see everything.
func (h *Articles) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	q := r.URL.Query()

	filter := store.ArticleFilter{}
	if !sess.CanModerate() {
		filter.AuthorID = &sess.UserID
	} else if raw := q.Get("author_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid author_id")
			return
		}
		filter.AuthorID = &id
	}

	if raw := q.Get("status"); raw != "" {
		status := models.ArticleStatus(raw)
		if !status.Valid() {
			respondError(w, http.StatusBadRequest, "unknown status "+strconv.Quote(raw))
			return
		}
		filter.Status = status
	}
	if raw := q.Get("portal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid portal_id")
			return
		}
		filter.PortalID = &id
	}
	if raw := q.Get("from"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid from date")
			return
		}
		filter.From = &ts
	}
	if raw := q.Get("to"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid to date")
			return
		}
		filter.To = &ts
	}

	perPage := intParam(q.Get("per_page"), defaultPageSize)
	if perPage > maxPageSize {
		perPage = maxPageSize
	}
	page := intParam(q.Get("page"), 1)
	filter.Limit = uint64(perPage)
	filter.Offset = uint64((page - 1) * perPage)

	list, err := h.articleStore.List(r.Context(), filter)
	if err != nil {
		slog.Error("list articles failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func intParam(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Get returns one article with its portal associations and status history.
func (h *Articles) Get(w http.ResponseWriter, r *http.Request) {
	article, ok := h.loadArticle(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, article)
}

// loadArticle fetches the route article and enforces author visibility.
func (h *Articles) loadArticle(w http.ResponseWriter, r *http.Request) (*models.Article, bool) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	article, err := h.articleStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find article failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	if article == nil {
		respondError(w, http.StatusNotFound, "article not found")
		return nil, false
	}

	sess := middleware.SessionFromCtx(r.Context())
	if !sess.CanModerate() && article.AuthorID != sess.UserID {
		respondError(w, http.StatusForbidden, "not your article")
		return nil, false
	}
	return article, true
}

type articleRequest struct {
	Title   string  `json:"title"`
	Slug    string  `json:"slug"`
	Body    string  `json:"body"`
	Excerpt *string `json:"excerpt"`
}

// Create inserts a new draft for the session user. Slug and excerpt are
// derived from the title and body when the request leaves them blank.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req articleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Title)
	}
	if msg := validateArticle(req.Title, req.Slug, req.Body); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if req.Excerpt == nil || *req.Excerpt == "" {
		if ex, err := markdown.Excerpt(req.Body, excerptLen); err == nil && ex != "" {
			req.Excerpt = &ex
		}
	}

	created, err := h.articleStore.Create(r.Context(), &models.Article{
		Title:    req.Title,
		Slug:     req.Slug,
		Body:     req.Body,
		Excerpt:  req.Excerpt,
		Status:   models.ArticleStatusDraft,
		AuthorID: sess.UserID,
	})
	if err != nil {
		slog.Error("create article failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.stats.Invalidate(r.Context())
	respondJSON(w, http.StatusCreated, created)
}

// Update modifies an article's editable fields. Moderation transitions go
// through SetStatus; publishing goes through Publish.
func (h *Articles) Update(w http.ResponseWriter, r *http.Request) {
	article, ok := h.loadArticle(w, r)
	if !ok {
		return
	}

	var req articleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Slug == "" {
		req.Slug = article.Slug
	}
	if msg := validateArticle(req.Title, req.Slug, req.Body); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	article.Title = req.Title
	article.Slug = req.Slug
	article.Body = req.Body
	if req.Excerpt != nil {
		article.Excerpt = req.Excerpt
	}
	if err := h.articleStore.Update(r.Context(), article); err != nil {
		slog.Error("update article failed", "error", err, "id", article.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Re-read rather than echo the patched copy: the store stamps
	// updated_at server-side and moderation may adjust other fields.
	fresh, err := h.articleStore.FindByID(r.Context(), article.ID)
	if err != nil || fresh == nil {
		slog.Error("reload article failed", "error", err, "id", article.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, fresh)
}

type deleteRequest struct {
	ConfirmTitle string `json:"confirm_title"`
}

// Delete hard-deletes an article after a type-to-confirm check: the request
// must repeat the exact title, case and accents included. Articles that
// reached a portal cannot be deleted and must be blocked instead.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	article, ok := h.loadArticle(w, r)
	if !ok {
		return
	}

	var req deleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !confirmMatch(article.Title, req.ConfirmTitle) {
		respondError(w, http.StatusUnprocessableEntity,
			"confirmation does not match the article title")
		return
	}

	err := h.articleStore.Delete(r.Context(), article.ID)
	if errors.Is(err, store.ErrArticleReferenced) {
		respondError(w, http.StatusConflict,
			"article is published to portals; block it instead of deleting")
		return
	}
	if err != nil {
		slog.Error("delete article failed", "error", err, "id", article.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.stats.Invalidate(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type highlightRequest struct {
	Highlight         bool `json:"highlight"`
	HighlightPosition *int `json:"highlight_position"`
}

// UpdateHighlight sets the article-level highlight flag and position.
func (h *Articles) UpdateHighlight(w http.ResponseWriter, r *http.Request) {
	article, ok := h.loadArticle(w, r)
	if !ok {
		return
	}

	var req highlightRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.articleStore.UpdateHighlight(r.Context(), article.ID, req.Highlight, req.HighlightPosition)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type statusRequest struct {
	Status models.ArticleStatus `json:"status"`
	Reason string               `json:"reason"`
}

// SetStatus records a moderation decision. Rejections require a reason;
// the transition and its history entry are atomic.
func (h *Articles) SetStatus(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Status.Valid() {
		respondError(w, http.StatusBadRequest, "unknown status "+strconv.Quote(string(req.Status)))
		return
	}
	if req.Status == models.ArticleStatusRejected {
		if msg := validateRejectReason(req.Reason); msg != "" {
			respondError(w, http.StatusUnprocessableEntity, msg)
			return
		}
	}

	if err := h.articleStore.SetStatus(r.Context(), id, req.Status, req.Reason, sess.UserID); err != nil {
		slog.Error("set status failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.stats.Invalidate(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

type publishRequest struct {
	Portals []publish.PortalConfig `json:"portals"`
}

// Publish runs the multi-portal publishing step: it opens a configuration
// session over the active portals, applies the submitted highlight choices,
// and submits. A highlighted portal missing its display position fails the
// whole request naming that portal, and nothing is persisted.
func (h *Articles) Publish(w http.ResponseWriter, r *http.Request) {
	article, ok := h.loadArticle(w, r)
	if !ok {
		return
	}

	var req publishRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	portals, err := h.portalStore.List(r.Context(), true)
	if err != nil {
		slog.Error("list portals failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	active := make(map[uuid.UUID]bool, len(portals))
	for _, p := range portals {
		active[p.ID] = true
	}

	var targets []models.Portal
	seen := make(map[uuid.UUID]bool, len(req.Portals))
	for _, c := range req.Portals {
		if !active[c.PortalID] {
			respondError(w, http.StatusUnprocessableEntity,
				"portal "+c.PortalID.String()+" is not an active target")
			return
		}
		if seen[c.PortalID] {
			respondError(w, http.StatusUnprocessableEntity,
				"portal "+c.PortalID.String()+" is listed more than once")
			return
		}
		seen[c.PortalID] = true
		for _, p := range portals {
			if p.ID == c.PortalID {
				targets = append(targets, p)
			}
		}
	}

	ps := publish.NewSession(article.ID, targets)
	for _, c := range req.Portals {
		if !c.Highlight {
			continue
		}
		if err := ps.ToggleHighlight(c.PortalID); err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if c.HighlightPosition != nil {
			if err := ps.SetPosition(c.PortalID, *c.HighlightPosition); err != nil {
				respondError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
		}
	}

	if err := ps.Submit(r.Context(), h.articleStore); err != nil {
		var verr *publish.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		slog.Error("publish failed", "error", err, "id", article.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.stats.Invalidate(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "published",
		"portals": ps.Configs(),
	})
}

// Rejection returns the most recent rejection with a reason from the
// article's status history. No rejection on record is a normal answer,
// not an error.
func (h *Articles) Rejection(w http.ResponseWriter, r *http.Request) {
	article, ok := h.loadArticle(w, r)
	if !ok {
		return
	}

	rej, found := models.LatestRejection(article.StatusHistory)
	if !found {
		respondJSON(w, http.StatusOK, map[string]any{"rejection": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"rejection": rej})
}

// Preview renders the article body to HTML for the editor preview pane.
func (h *Articles) Preview(w http.ResponseWriter, r *http.Request) {
	article, ok := h.loadArticle(w, r)
	if !ok {
		return
	}

	html, err := markdown.ToHTML(article.Body)
	if err != nil {
		slog.Error("preview render failed", "error", err, "id", article.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"title": article.Title,
		"html":  html,
	})
}

// RecordView bumps the article's view counter.
func (h *Articles) RecordView(w http.ResponseWriter, r *http.Request) {
	h.recordCounter(w, r, h.articleStore.IncrementViews)
}

// RecordClick bumps the article's click counter.
func (h *Articles) RecordClick(w http.ResponseWriter, r *http.Request) {
	h.recordCounter(w, r, h.articleStore.IncrementClicks)
}

func (h *Articles) recordCounter(w http.ResponseWriter, r *http.Request, inc func(ctx context.Context, id uuid.UUID) error) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := inc(r.Context(), id); err != nil {
		slog.Error("record counter failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}
