package handlers

import (
	"strings"
	"testing"
)

func TestValidateArticle(t *testing.T) {
	if msg := validateArticle("Title", "title", "body"); msg != "" {
		t.Errorf("valid article rejected: %q", msg)
	}
	if msg := validateArticle("", "slug", "body"); msg == "" {
		t.Error("empty title accepted")
	}
	if msg := validateArticle("   ", "slug", "body"); msg == "" {
		t.Error("whitespace title accepted")
	}
	if msg := validateArticle(strings.Repeat("x", maxTitleLen+1), "s", "b"); msg == "" {
		t.Error("overlong title accepted")
	}
	if msg := validateArticle("ok", "s", strings.Repeat("x", maxBodyLen+1)); msg == "" {
		t.Error("overlong body accepted")
	}
}

func TestValidateRejectReason(t *testing.T) {
	if msg := validateRejectReason("missing sources"); msg != "" {
		t.Errorf("valid reason rejected: %q", msg)
	}
	if msg := validateRejectReason("  "); msg == "" {
		t.Error("blank reason accepted")
	}
}

func TestConfirmMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		provided string
		want     bool
	}{
		{"exact", "My Article", "My Article", true},
		{"case differs", "My Article", "my Article", false},
		{"trailing space", "My Article", "My Article ", false},
		{"leading space", "My Article", " My Article", false},
		{"accented exact", "Comércio no Centro", "Comércio no Centro", true},
		{"accent stripped", "Comércio no Centro", "Comercio no Centro", false},
		{"empty vs empty", "", "", true},
		{"empty provided", "My Article", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := confirmMatch(tt.expected, tt.provided); got != tt.want {
				t.Errorf("confirmMatch(%q, %q) = %v, want %v",
					tt.expected, tt.provided, got, tt.want)
			}
		})
	}
}
