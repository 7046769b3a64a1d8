// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Banner is a promotional placement shown on the portals. The image lives
// in S3; ImageKey is empty until an upload succeeds.
type Banner struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	ImageKey  string     `json:"image_key,omitempty"`
	ImageURL  string     `json:"image_url,omitempty"`
	TargetURL string     `json:"target_url"`
	Active    bool       `json:"active"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Live reports whether the banner should be served at the given instant.
func (b *Banner) Live(now time.Time) bool {
	if !b.Active {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && now.After(*b.EndsAt) {
		return false
	}
	return true
}
