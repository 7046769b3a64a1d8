// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portalpress/internal/handlers"
	"portalpress/internal/session"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// newTestRouter wires the route tree with zero-value handler groups. Good
// enough for routing-level assertions that never reach a store.
func newTestRouter() http.Handler {
	return New(session.NewStore(nil), &Handlers{
		Auth:           &handlers.Auth{},
		Articles:       &handlers.Articles{},
		Portals:        &handlers.Portals{},
		Taxonomy:       &handlers.Taxonomy{},
		Banners:        &handlers.Banners{},
		Companies:      &handlers.Companies{},
		WhatsAppGroups: &handlers.WhatsAppGroups{},
		Users:          &handlers.Users{},
		Analytics:      &handlers.Analytics{},
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/articles/"},
		{"POST", "/api/v1/articles/"},
		{"GET", "/api/v1/portals/"},
		{"GET", "/api/v1/analytics/summary"},
		{"GET", "/api/v1/users/"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without session: got %d, want 401", p.method, p.path, rec.Code)
		}
	}
}
