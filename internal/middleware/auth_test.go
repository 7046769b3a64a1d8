// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"portalpress/internal/session"
)

// withSession injects session data into the request context, bypassing
// LoadSession's Valkey lookup.
func withSession(r *http.Request, data *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), SessionKey, data))
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	next, called := okHandler()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)

	RequireAuth(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", w.Code)
	}
	if *called {
		t.Error("handler must not run for anonymous request")
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q, want application/json", ct)
	}
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	next, called := okHandler()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)
	r = withSession(r, &session.Data{UserID: uuid.New(), Role: "author", TwoFADone: true})

	RequireAuth(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
	if !*called {
		t.Error("handler should run for authenticated request")
	}
}

func TestRequire2FA(t *testing.T) {
	next, called := okHandler()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = withSession(r, &session.Data{UserID: uuid.New(), Role: "editor", TwoFADone: false})

	Require2FA(next).ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", w.Code)
	}
	if *called {
		t.Error("handler must not run before 2FA verification")
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		role       string
		wantStatus int
	}{
		{"admin", http.StatusOK},
		{"editor", http.StatusForbidden},
		{"author", http.StatusForbidden},
	}

	for _, tc := range tests {
		next, _ := okHandler()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = withSession(r, &session.Data{UserID: uuid.New(), Role: tc.role, TwoFADone: true})

		RequireAdmin(next).ServeHTTP(w, r)

		if w.Code != tc.wantStatus {
			t.Errorf("role %s: got %d, want %d", tc.role, w.Code, tc.wantStatus)
		}
	}
}

func TestRequireModerator(t *testing.T) {
	tests := []struct {
		role       string
		wantStatus int
	}{
		{"admin", http.StatusOK},
		{"editor", http.StatusOK},
		{"author", http.StatusForbidden},
	}

	for _, tc := range tests {
		next, _ := okHandler()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r = withSession(r, &session.Data{UserID: uuid.New(), Role: tc.role, TwoFADone: true})

		RequireModerator(next).ServeHTTP(w, r)

		if w.Code != tc.wantStatus {
			t.Errorf("role %s: got %d, want %d", tc.role, w.Code, tc.wantStatus)
		}
	}
}

func TestSessionFromCtxEmpty(t *testing.T) {
	if got := SessionFromCtx(context.Background()); got != nil {
		t.Errorf("expected nil session, got %+v", got)
	}
}

func TestLoadSessionBackendErrorFallsThrough(t *testing.T) {
	// A session backend that cannot be reached must degrade to an
	// unauthenticated request, never a blocked one.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { client.Close() })
	store := session.NewStore(client)

	var sawSession *session.Data
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawSession = SessionFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "deadbeef"})

	LoadSession(store)(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
	if sawSession != nil {
		t.Errorf("session: got %+v, want nil", sawSession)
	}
}
