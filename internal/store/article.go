// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the database access layer. One store per table,
// raw SQL over database/sql, with squirrel building the dynamic listing
// and analytics queries.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"portalpress/internal/models"
	"portalpress/internal/publish"
)

// ErrArticleReferenced is returned by Delete when portal associations still
// reference the article. Such articles are blocked, not hard-deleted.
var ErrArticleReferenced = errors.New("article is published to portals and cannot be deleted")

// psql builds queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ArticleFilter narrows List results. Zero-value fields are ignored.
type ArticleFilter struct {
	AuthorID *uuid.UUID
	Status   models.ArticleStatus
	PortalID *uuid.UUID
	From     *time.Time
	To       *time.Time
	Limit    uint64
	Offset   uint64
}

// ArticleList is the pagination envelope the dashboard tables consume.
// Total counts all rows matching the filter, not just the returned page.
type ArticleList struct {
	Total int              `json:"total"`
	Data  []models.Article `json:"data"`
}

// ArticleStore handles all article-related database operations, including
// portal associations and the status-history log.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = "id, title, slug, body, excerpt, status, highlight, highlight_position, views, clicks, author_id, published_at, created_at, updated_at"

func scanArticle(row interface{ Scan(...any) error }, a *models.Article) error {
	return row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Body, &a.Excerpt, &a.Status,
		&a.Highlight, &a.HighlightPosition, &a.Views, &a.Clicks,
		&a.AuthorID, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
}

// List returns articles matching the filter, newest first, with the total
// row count for pagination.
func (s *ArticleStore) List(ctx context.Context, filter ArticleFilter) (*ArticleList, error) {
	base := psql.Select().From("articles a")
	if filter.AuthorID != nil {
		base = base.Where(sq.Eq{"a.author_id": *filter.AuthorID})
	}
	if filter.Status != "" {
		base = base.Where(sq.Eq{"a.status": filter.Status})
	}
	if filter.PortalID != nil {
		base = base.Where(sq.Expr(
			"EXISTS (SELECT 1 FROM article_portals ap WHERE ap.article_id = a.id AND ap.portal_id = ?)",
			*filter.PortalID,
		))
	}
	if filter.From != nil {
		base = base.Where(sq.GtOrEq{"a.created_at": *filter.From})
	}
	if filter.To != nil {
		base = base.Where(sq.LtOrEq{"a.created_at": *filter.To})
	}

	// Total before limit/offset.
	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	listQ := base.Columns(articleColumns).OrderBy("a.created_at DESC")
	if filter.Limit > 0 {
		listQ = listQ.Limit(filter.Limit).Offset(filter.Offset)
	}
	listSQL, listArgs, err := listQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	list := &ArticleList{Total: total, Data: []models.Article{}}
	for rows.Next() {
		var a models.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list.Data = append(list.Data, a)
	}
	return list, rows.Err()
}

// FindByID retrieves a full article detail including portal associations
// and the status-history log. Returns nil if not found.
func (s *ArticleStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	a := &models.Article{}
	err := scanArticle(s.db.QueryRowContext(ctx,
		"SELECT "+articleColumns+" FROM articles WHERE id = $1", id), a)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}

	if a.Portals, err = s.portalsFor(ctx, id); err != nil {
		return nil, err
	}
	if a.StatusHistory, err = s.historyFor(ctx, id); err != nil {
		return nil, err
	}
	return a, nil
}

// portalsFor loads the article's portal associations with portal names.
func (s *ArticleStore) portalsFor(ctx context.Context, articleID uuid.UUID) ([]models.ArticlePortal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ap.id, ap.article_id, ap.portal_id, p.name,
		       ap.highlight, ap.highlight_position, ap.created_at
		FROM article_portals ap
		JOIN portals p ON p.id = ap.portal_id
		WHERE ap.article_id = $1
		ORDER BY p.name
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list article portals: %w", err)
	}
	defer rows.Close()

	var out []models.ArticlePortal
	for rows.Next() {
		var ap models.ArticlePortal
		if err := rows.Scan(
			&ap.ID, &ap.ArticleID, &ap.PortalID, &ap.PortalName,
			&ap.Highlight, &ap.HighlightPosition, &ap.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan article portal: %w", err)
		}
		out = append(out, ap)
	}
	return out, rows.Err()
}

// historyFor loads the article's status log, newest first.
func (s *ArticleStore) historyFor(ctx context.Context, articleID uuid.UUID) ([]models.StatusHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COALESCE(reason_reject, ''), changed_at
		FROM article_status_history
		WHERE article_id = $1
		ORDER BY changed_at DESC
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	defer rows.Close()

	var out []models.StatusHistoryEntry
	for rows.Next() {
		var e models.StatusHistoryEntry
		if err := rows.Scan(&e.Status, &e.ReasonReject, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan status history: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create inserts a new article in draft (or the given) status and records
// the initial status-history entry.
func (s *ArticleStore) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	if a.Status == "" {
		a.Status = models.ArticleStatusDraft
	}
	if a.Status == models.ArticleStatusPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create article begin: %w", err)
	}
	defer tx.Rollback()

	result := &models.Article{}
	err = scanArticle(tx.QueryRowContext(ctx, `
		INSERT INTO articles (title, slug, body, excerpt, status, highlight,
		                      highlight_position, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+articleColumns,
		a.Title, a.Slug, a.Body, a.Excerpt, a.Status, a.Highlight,
		a.HighlightPosition, a.AuthorID, a.PublishedAt,
	), result)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO article_status_history (article_id, status, changed_by)
		VALUES ($1, $2, $3)
	`, result.ID, result.Status, a.AuthorID); err != nil {
		return nil, fmt.Errorf("create article history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create article commit: %w", err)
	}
	return result, nil
}

// Update modifies an existing article's editable fields. Status changes go
// through SetStatus so the history log stays complete.
func (s *ArticleStore) Update(ctx context.Context, a *models.Article) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE articles SET
			title = $1, slug = $2, body = $3, excerpt = $4,
			updated_at = NOW()
		WHERE id = $5
	`, a.Title, a.Slug, a.Body, a.Excerpt, a.ID)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// UpdateHighlight is the narrow article-level highlight update used by
// single-portal deployments. Disabling the highlight clears the position;
// enabling it requires a position in the valid range.
func (s *ArticleStore) UpdateHighlight(ctx context.Context, id uuid.UUID, highlight bool, position *int) error {
	if !highlight {
		position = nil
	} else if position == nil || !models.ValidHighlightPosition(*position) {
		return fmt.Errorf("highlighted article needs a display position between %d and %d",
			models.MinHighlightPosition, models.MaxHighlightPosition)
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE articles SET highlight = $1, highlight_position = $2, updated_at = NOW()
		WHERE id = $3
	`, highlight, position, id)
	if err != nil {
		return fmt.Errorf("update article highlight: %w", err)
	}
	return nil
}

// SetStatus records a moderation decision: it transitions the article and
// appends to the status-history log in one transaction. reason is stored
// only for rejections.
func (s *ArticleStore) SetStatus(ctx context.Context, id uuid.UUID, status models.ArticleStatus, reason string, changedBy uuid.UUID) error {
	if !status.Valid() {
		return fmt.Errorf("unknown article status %q", status)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set status begin: %w", err)
	}
	defer tx.Rollback()

	publishedAt := "published_at"
	if status == models.ArticleStatusPublished {
		publishedAt = "COALESCE(published_at, NOW())"
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`
		UPDATE articles SET status = $1, published_at = %s, updated_at = NOW()
		WHERE id = $2
	`, publishedAt), status, id); err != nil {
		return fmt.Errorf("set status: %w", err)
	}

	var reasonVal *string
	if status == models.ArticleStatusRejected && reason != "" {
		reasonVal = &reason
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO article_status_history (article_id, status, reason_reject, changed_by)
		VALUES ($1, $2, $3, $4)
	`, id, status, reasonVal, changedBy); err != nil {
		return fmt.Errorf("append status history: %w", err)
	}

	return tx.Commit()
}

// PublishToPortals replaces the article's portal associations with the
// submitted configuration, transitions it to published, and appends the
// status-history entry — all in one transaction. Implements
// publish.Publisher.
func (s *ArticleStore) PublishToPortals(ctx context.Context, articleID uuid.UUID, configs []publish.PortalConfig) error {
	for _, c := range configs {
		if c.Highlight && (c.HighlightPosition == nil || !models.ValidHighlightPosition(*c.HighlightPosition)) {
			return fmt.Errorf("portal %q is highlighted but has no valid display position", c.Name)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("publish begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM article_portals WHERE article_id = $1`, articleID); err != nil {
		return fmt.Errorf("publish clear portals: %w", err)
	}

	for _, c := range configs {
		pos := c.HighlightPosition
		if !c.Highlight {
			pos = nil
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO article_portals (article_id, portal_id, highlight, highlight_position)
			VALUES ($1, $2, $3, $4)
		`, articleID, c.PortalID, c.Highlight, pos); err != nil {
			return fmt.Errorf("publish portal %s: %w", c.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE articles SET status = 'published',
		       published_at = COALESCE(published_at, NOW()), updated_at = NOW()
		WHERE id = $1
	`, articleID); err != nil {
		return fmt.Errorf("publish status: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO article_status_history (article_id, status)
		VALUES ($1, 'published')
	`, articleID); err != nil {
		return fmt.Errorf("publish history: %w", err)
	}

	return tx.Commit()
}

// Delete removes a draft article. Articles still referenced by portal
// associations return ErrArticleReferenced — they must be blocked instead.
func (s *ArticleStore) Delete(ctx context.Context, id uuid.UUID) error {
	var refs int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM article_portals WHERE article_id = $1`, id).Scan(&refs); err != nil {
		return fmt.Errorf("delete article check refs: %w", err)
	}
	if refs > 0 {
		return ErrArticleReferenced
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter for an article.
func (s *ArticleStore) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE articles SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// IncrementClicks bumps the click counter for an article.
func (s *ArticleStore) IncrementClicks(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE articles SET clicks = clicks + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment clicks: %w", err)
	}
	return nil
}

// CountByStatus returns the number of articles per status, for the
// dashboard summary.
func (s *ArticleStore) CountByStatus(ctx context.Context) (map[models.ArticleStatus]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM articles GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ArticleStatus]int)
	for rows.Next() {
		var status models.ArticleStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
