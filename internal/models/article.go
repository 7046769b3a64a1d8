// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the moderation state of an article.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPending   ArticleStatus = "pending"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusRejected  ArticleStatus = "rejected"
	ArticleStatusInactive  ArticleStatus = "inactive"
	ArticleStatusBlocked   ArticleStatus = "blocked"
)

// Valid reports whether s is one of the known moderation states.
func (s ArticleStatus) Valid() bool {
	switch s {
	case ArticleStatusDraft, ArticleStatusPending, ArticleStatusPublished,
		ArticleStatusRejected, ArticleStatusInactive, ArticleStatusBlocked:
		return true
	}
	return false
}

// Display slot bounds for highlighted articles.
const (
	MinHighlightPosition = 1
	MaxHighlightPosition = 4
)

// ValidHighlightPosition reports whether pos is a legal display slot.
func ValidHighlightPosition(pos int) bool {
	return pos >= MinHighlightPosition && pos <= MaxHighlightPosition
}

// Article represents a content item subject to the moderation workflow.
// The article-level Highlight/HighlightPosition pair covers single-portal
// deployments; per-portal highlight state lives on ArticlePortal.
type Article struct {
	ID                uuid.UUID            `json:"id"`
	Title             string               `json:"title"`
	Slug              string               `json:"slug"`
	Body              string               `json:"body"`
	Excerpt           *string              `json:"excerpt,omitempty"`
	Status            ArticleStatus        `json:"status"`
	Highlight         bool                 `json:"highlight"`
	HighlightPosition *int                 `json:"highlight_position,omitempty"`
	Views             int64                `json:"views"`
	Clicks            int64                `json:"clicks"`
	AuthorID          uuid.UUID            `json:"author_id"`
	Portals           []ArticlePortal      `json:"portals,omitempty"`
	StatusHistory     []StatusHistoryEntry `json:"status_history,omitempty"`
	PublishedAt       *time.Time           `json:"published_at,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// IsPublished returns true if the article is in published status.
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}

// Deletable returns true if the article may be hard-deleted. Anything that
// reached a portal is removed via a status transition instead.
func (a *Article) Deletable() bool {
	return len(a.Portals) == 0
}

// ArticlePortal links an article to a portal it is published on, carrying
// that portal's own highlight configuration.
type ArticlePortal struct {
	ID                uuid.UUID `json:"id"`
	ArticleID         uuid.UUID `json:"article_id"`
	PortalID          uuid.UUID `json:"portal_id"`
	PortalName        string    `json:"portal_name,omitempty"`
	Highlight         bool      `json:"highlight"`
	HighlightPosition *int      `json:"highlight_position,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
