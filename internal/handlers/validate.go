// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for article and listing fields.
const (
	maxTitleLen      = 300
	maxSlugLen       = 300
	maxBodyLen       = 100_000
	maxExcerptLen    = 1_000
	maxNameLen       = 200
	maxLinkLen       = 2_000
	maxRejectReasons = 2_000
)

// validateArticle checks article inputs and returns the first error found.
func validateArticle(title, slug, body string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "Body is too long (max 100,000 characters)."
	}
	return ""
}

// validateName checks a required short name field (portals, tags,
// categories, companies, groups).
func validateName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	return ""
}

// validateLink checks an optional URL-ish field for length only. The
// portals accept internal paths as well as full URLs, so no scheme check.
func validateLink(link string) string {
	if utf8.RuneCountInString(link) > maxLinkLen {
		return "Link is too long (max 2,000 characters)."
	}
	return ""
}

// validateRejectReason checks the moderation rejection reason.
func validateRejectReason(reason string) string {
	if strings.TrimSpace(reason) == "" {
		return "A rejection reason is required."
	}
	if utf8.RuneCountInString(reason) > maxRejectReasons {
		return "Rejection reason is too long (max 2,000 characters)."
	}
	return ""
}

// confirmMatch reports whether a destructive-action confirmation phrase
// matches the expected title. The comparison is exact: case, spacing, and
// accents must all match, with no trimming. "my Article" does not confirm
// "My Article".
func confirmMatch(expected, provided string) bool {
	return expected == provided
}
