// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// dashboard API. Routes are grouped by the role required to reach them.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"portalpress/internal/handlers"
	"portalpress/internal/middleware"
	"portalpress/internal/session"
	"portalpress/web"
)

// Handlers bundles the handler groups wired by New.
type Handlers struct {
	Auth           *handlers.Auth
	Articles       *handlers.Articles
	Portals        *handlers.Portals
	Taxonomy       *handlers.Taxonomy
	Banners        *handlers.Banners
	Companies      *handlers.Companies
	WhatsAppGroups *handlers.WhatsAppGroups
	Users          *handlers.Users
	Analytics      *handlers.Analytics
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, h *Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Login attempts are rate limited per client IP.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware)
			r.Post("/auth/login", h.Auth.Login)
		})
		r.Post("/auth/logout", h.Auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/auth/2fa/setup", h.Auth.TwoFASetup)
			r.Post("/auth/2fa/verify", h.Auth.TwoFAVerify)
		})

		// Authenticated + 2FA-verified API.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/auth/me", h.Auth.Me)

			// Articles — authors see their own, moderators everything.
			r.Route("/articles", func(r chi.Router) {
				r.Get("/", h.Articles.List)
				r.Post("/", h.Articles.Create)
				r.Get("/{id}", h.Articles.Get)
				r.Put("/{id}", h.Articles.Update)
				r.Delete("/{id}", h.Articles.Delete)
				r.Get("/{id}/rejection", h.Articles.Rejection)
				r.Get("/{id}/preview", h.Articles.Preview)
				r.Post("/{id}/view", h.Articles.RecordView)
				r.Post("/{id}/click", h.Articles.RecordClick)

				// Moderation and publishing — editors and admins only.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireModerator)
					r.Patch("/{id}/highlight", h.Articles.UpdateHighlight)
					r.Post("/{id}/status", h.Articles.SetStatus)
					r.Post("/{id}/publish", h.Articles.Publish)
				})
			})

			// Portals
			r.Route("/portals", func(r chi.Router) {
				r.Get("/", h.Portals.List)
				r.Get("/{id}", h.Portals.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireModerator)
					r.Post("/", h.Portals.Create)
					r.Put("/{id}", h.Portals.Update)
					r.Delete("/{id}", h.Portals.Delete)
				})
			})

			// Tags and categories
			r.Route("/tags", func(r chi.Router) {
				r.Get("/", h.Taxonomy.ListTags)
				r.Post("/", h.Taxonomy.CreateTag)
				r.Put("/{id}", h.Taxonomy.UpdateTag)
				r.Delete("/{id}", h.Taxonomy.DeleteTag)
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.Taxonomy.ListCategories)
				r.Post("/", h.Taxonomy.CreateCategory)
				r.Put("/{id}", h.Taxonomy.UpdateCategory)
				r.Delete("/{id}", h.Taxonomy.DeleteCategory)
			})

			// Banners
			r.Route("/banners", func(r chi.Router) {
				r.Use(middleware.RequireModerator)
				r.Get("/", h.Banners.List)
				r.Post("/", h.Banners.Create)
				r.Get("/{id}", h.Banners.Get)
				r.Put("/{id}", h.Banners.Update)
				r.Post("/{id}/image", h.Banners.Upload)
				r.Delete("/{id}", h.Banners.Delete)
			})

			// Companies and WhatsApp groups
			r.Route("/companies", func(r chi.Router) {
				r.Get("/", h.Companies.List)
				r.Get("/{id}", h.Companies.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireModerator)
					r.Post("/", h.Companies.Create)
					r.Put("/{id}", h.Companies.Update)
					r.Delete("/{id}", h.Companies.Delete)
				})
			})
			r.Route("/whatsapp-groups", func(r chi.Router) {
				r.Get("/", h.WhatsAppGroups.List)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireModerator)
					r.Post("/", h.WhatsAppGroups.Create)
					r.Put("/{id}", h.WhatsAppGroups.Update)
					r.Delete("/{id}", h.WhatsAppGroups.Delete)
				})
			})

			// Analytics — moderators only.
			r.Route("/analytics", func(r chi.Router) {
				r.Use(middleware.RequireModerator)
				r.Get("/summary", h.Analytics.Summary)
				r.Get("/articles", h.Analytics.ArticleReport)
				r.Get("/articles/export", h.Analytics.ExportCSV)
			})

			// User management — admin only.
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.Users.List)
				r.Post("/", h.Users.Create)
				r.Put("/{id}", h.Users.Update)
				r.Post("/{id}/reset-2fa", h.Users.ResetTwoFA)
				r.Delete("/{id}", h.Users.Delete)
			})
		})
	})

	// The embedded dashboard shell and its assets.
	staticFS, _ := fs.Sub(web.Static, "static")
	r.Handle("/*", http.FileServer(http.FS(staticFS)))

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
