// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is a local-business listing ("comércio") managed alongside the
// editorial content.
type Company struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Address     *string    `json:"address,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	WhatsApp    *string    `json:"whatsapp,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// WhatsAppGroup is a community group invite surfaced on the portals.
type WhatsAppGroup struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	InviteLink string    `json:"invite_link"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
