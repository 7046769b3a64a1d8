// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"portalpress/internal/cache"
	"portalpress/internal/models"
	"portalpress/internal/store"
)

// Analytics groups the dashboard reporting handlers.
type Analytics struct {
	analyticsStore *store.AnalyticsStore
	stats          *cache.StatsCache
}

// NewAnalytics creates a new Analytics handler group.
func NewAnalytics(analyticsStore *store.AnalyticsStore, stats *cache.StatsCache) *Analytics {
	return &Analytics{analyticsStore: analyticsStore, stats: stats}
}

// Summary returns the dashboard counters, served from Valkey when fresh.
func (h *Analytics) Summary(w http.ResponseWriter, r *http.Request) {
	var cached store.Summary
	if h.stats.Get(r.Context(), &cached) {
		respondJSON(w, http.StatusOK, &cached)
		return
	}

	summary, err := h.analyticsStore.Summary(r.Context())
	if err != nil {
		slog.Error("analytics summary failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.stats.Set(r.Context(), summary)
	respondJSON(w, http.StatusOK, summary)
}

// reportFilter parses the shared report query parameters.
func reportFilter(r *http.Request) (store.ReportFilter, string) {
	q := r.URL.Query()
	f := store.ReportFilter{}

	if raw := q.Get("status"); raw != "" {
		status := models.ArticleStatus(raw)
		if !status.Valid() {
			return f, "unknown status " + strconv.Quote(raw)
		}
		f.Status = status
	}
	if raw := q.Get("portal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, "invalid portal_id"
		}
		f.PortalID = &id
	}
	if raw := q.Get("from"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, "invalid from date"
		}
		f.From = &ts
	}
	if raw := q.Get("to"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, "invalid to date"
		}
		f.To = &ts
	}
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			f.Limit = n
		}
	}
	return f, ""
}

// ArticleReport returns per-article engagement numbers, busiest first.
func (h *Analytics) ArticleReport(w http.ResponseWriter, r *http.Request) {
	filter, msg := reportFilter(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	report, err := h.analyticsStore.ArticleReport(r.Context(), filter)
	if err != nil {
		slog.Error("article report failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": report})
}

// ExportCSV streams the engagement report as a CSV download.
func (h *Analytics) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, msg := reportFilter(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	report, err := h.analyticsStore.ArticleReport(r.Context(), filter)
	if err != nil {
		slog.Error("article report failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="articles-report-`+time.Now().Format("2006-01-02")+`.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"article_id", "title", "status", "views", "clicks", "published_at"})
	for _, row := range report {
		published := ""
		if row.PublishedAt != nil {
			published = row.PublishedAt.Format(time.RFC3339)
		}
		cw.Write([]string{
			row.ArticleID.String(),
			row.Title,
			row.Status,
			strconv.FormatInt(row.Views, 10),
			strconv.FormatInt(row.Clicks, 10),
			published,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("csv export failed", "error", err)
	}
}
