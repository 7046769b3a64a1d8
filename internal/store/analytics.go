// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"portalpress/internal/models"
)

// Summary aggregates the headline numbers shown on the dashboard.
type Summary struct {
	Articles       int64            `json:"articles"`
	ByStatus       map[string]int64 `json:"by_status"`
	Portals        int64            `json:"portals"`
	Companies      int64            `json:"companies"`
	Banners        int64            `json:"banners"`
	WhatsAppGroups int64            `json:"whatsapp_groups"`
	TotalViews     int64            `json:"total_views"`
	TotalClicks    int64            `json:"total_clicks"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

// ArticleReportRow is one line of the engagement report.
type ArticleReportRow struct {
	ArticleID   uuid.UUID  `json:"article_id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Views       int64      `json:"views"`
	Clicks      int64      `json:"clicks"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// AnalyticsStore computes aggregate reporting queries.
type AnalyticsStore struct {
	db *sql.DB
}

// NewAnalyticsStore creates a new AnalyticsStore with the given database
// connection.
func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// Summary gathers the dashboard counters in a single pass. Callers are
// expected to cache the result; see cache.StatsCache.
func (s *AnalyticsStore) Summary(ctx context.Context) (*Summary, error) {
	out := &Summary{
		ByStatus:    make(map[string]int64),
		GeneratedAt: time.Now().UTC(),
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM articles GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("summary status counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out.ByStatus[status] = n
		out.Articles += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summary status counts: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM portals),
			(SELECT COUNT(*) FROM companies),
			(SELECT COUNT(*) FROM banners),
			(SELECT COUNT(*) FROM whatsapp_groups),
			(SELECT COALESCE(SUM(views), 0) FROM articles),
			(SELECT COALESCE(SUM(clicks), 0) FROM articles)
	`).Scan(&out.Portals, &out.Companies, &out.Banners, &out.WhatsAppGroups,
		&out.TotalViews, &out.TotalClicks)
	if err != nil {
		return nil, fmt.Errorf("summary totals: %w", err)
	}
	return out, nil
}

// ReportFilter narrows the engagement report.
type ReportFilter struct {
	Status   models.ArticleStatus
	PortalID *uuid.UUID
	From     *time.Time
	To       *time.Time
	Limit    int
}

// ArticleReport returns engagement numbers per article, busiest first.
func (s *AnalyticsStore) ArticleReport(ctx context.Context, f ReportFilter) ([]ArticleReportRow, error) {
	q := psql.Select("a.id", "a.title", "a.status", "a.views", "a.clicks", "a.published_at").
		From("articles a").
		OrderBy("a.views DESC", "a.clicks DESC")

	if f.Status != "" {
		q = q.Where(sq.Eq{"a.status": f.Status})
	}
	if f.PortalID != nil {
		q = q.Join("article_portals ap ON ap.article_id = a.id").
			Where(sq.Eq{"ap.portal_id": *f.PortalID})
	}
	if f.From != nil {
		q = q.Where(sq.GtOrEq{"a.published_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(sq.LtOrEq{"a.published_at": *f.To})
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q = q.Limit(uint64(limit))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build report query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("article report: %w", err)
	}
	defer rows.Close()

	var report []ArticleReportRow
	for rows.Next() {
		var r ArticleReportRow
		if err := rows.Scan(&r.ArticleID, &r.Title, &r.Status, &r.Views, &r.Clicks, &r.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		report = append(report, r)
	}
	return report, rows.Err()
}
