// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package publish implements the multi-portal publishing step: collecting,
// validating, and submitting per-portal highlight configuration for an
// article. A Session is the editor's in-progress configuration; nothing is
// persisted until Submit succeeds.
package publish

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"portalpress/internal/models"
)

// PortalConfig is the highlight tuple collected for one target portal.
type PortalConfig struct {
	PortalID          uuid.UUID `json:"portal_id"`
	Name              string    `json:"name"`
	Highlight         bool      `json:"highlight"`
	HighlightPosition *int      `json:"highlight_position,omitempty"`
}

// Publisher persists a complete per-portal configuration in one request.
// Implemented by store.ArticleStore.
type Publisher interface {
	PublishToPortals(ctx context.Context, articleID uuid.UUID, configs []PortalConfig) error
}

// ValidationError reports the first portal that is highlighted without a
// legal display position.
type ValidationError struct {
	PortalName string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("portal %q is highlighted but has no display position (1-%d)",
		e.PortalName, models.MaxHighlightPosition)
}

// Session holds an editor's in-progress highlight configuration for one
// article across a fixed set of target portals. Sessions are not safe for
// concurrent use; each editor request sequence owns its own.
type Session struct {
	articleID uuid.UUID
	configs   []PortalConfig
	byID      map[uuid.UUID]*PortalConfig

	submitting bool
	closed     bool
}

// NewSession starts a configuration session for the given article and
// target portals. Every portal starts un-highlighted with no position;
// any prior in-progress session for the article is simply abandoned —
// opening against a new portal set always discards earlier edits, even
// when the sets overlap.
func NewSession(articleID uuid.UUID, portals []models.Portal) *Session {
	s := &Session{articleID: articleID}
	s.init(portals)
	return s
}

func (s *Session) init(portals []models.Portal) {
	s.configs = make([]PortalConfig, len(portals))
	s.byID = make(map[uuid.UUID]*PortalConfig, len(portals))
	for i, p := range portals {
		s.configs[i] = PortalConfig{PortalID: p.ID, Name: p.Name}
		s.byID[p.ID] = &s.configs[i]
	}
	s.submitting = false
	s.closed = false
}

// ArticleID returns the article this session configures.
func (s *Session) ArticleID() uuid.UUID { return s.articleID }

// Closed reports whether the session finished, via Submit or Cancel.
func (s *Session) Closed() bool { return s.closed }

// Configs returns a snapshot of the current per-portal configuration, in
// portal order.
func (s *Session) Configs() []PortalConfig {
	out := make([]PortalConfig, len(s.configs))
	copy(out, s.configs)
	return out
}

// ToggleHighlight flips the highlight flag for a portal. Toggling off
// clears the position; toggling back on does not restore it — a cleared
// position stays cleared until the editor picks one again.
func (s *Session) ToggleHighlight(portalID uuid.UUID) error {
	c, ok := s.byID[portalID]
	if !ok {
		return fmt.Errorf("portal %s is not a target of this session", portalID)
	}
	c.Highlight = !c.Highlight
	if !c.Highlight {
		c.HighlightPosition = nil
	}
	return nil
}

// SetPosition assigns a display position to a portal. It does not touch
// the highlight flag; setting a position on an un-highlighted portal is
// legal and only matters once highlight is enabled.
func (s *Session) SetPosition(portalID uuid.UUID, position int) error {
	c, ok := s.byID[portalID]
	if !ok {
		return fmt.Errorf("portal %s is not a target of this session", portalID)
	}
	pos := position
	c.HighlightPosition = &pos
	return nil
}

// Validate checks the position-requires-highlight rule for every portal.
// Returns a *ValidationError naming the first offending portal.
func (s *Session) Validate() error {
	for i := range s.configs {
		c := &s.configs[i]
		if !c.Highlight {
			continue
		}
		if c.HighlightPosition == nil || !models.ValidHighlightPosition(*c.HighlightPosition) {
			return &ValidationError{PortalName: c.Name}
		}
	}
	return nil
}

// Submit validates and sends the full configuration to the publisher in a
// single request. A validation failure makes no backend call; a backend
// failure leaves the in-memory configuration untouched so the editor can
// retry. On success the session closes.
func (s *Session) Submit(ctx context.Context, p Publisher) error {
	if s.closed {
		return fmt.Errorf("publish session already closed")
	}
	if s.submitting {
		return fmt.Errorf("publish already in progress")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	s.submitting = true
	defer func() { s.submitting = false }()

	if err := p.PublishToPortals(ctx, s.articleID, s.Configs()); err != nil {
		return fmt.Errorf("publish to portals: %w", err)
	}

	s.closed = true
	return nil
}

// Cancel discards all edits, resetting every portal to the un-highlighted
// default, and closes the session without submitting.
func (s *Session) Cancel() {
	for i := range s.configs {
		s.configs[i].Highlight = false
		s.configs[i].HighlightPosition = nil
	}
	s.closed = true
}

// Reset reopens the session against a (possibly different) portal set,
// discarding all prior edits — including for portals present in both sets.
func (s *Session) Reset(portals []models.Portal) {
	s.init(portals)
}
