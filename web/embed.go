// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package web embeds the static dashboard shell served at the site root.
package web

import "embed"

// Static holds the dashboard's static assets.
//
//go:embed static
var Static embed.FS
