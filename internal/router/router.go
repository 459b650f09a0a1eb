// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// kachel server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kachel/internal/handlers"
	"kachel/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up. A nil limiter disables rate limiting.
func New(api *handlers.API, limiter middleware.Limiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", handlers.Health)

	// Rendering and uploads are the expensive endpoints.
	limited := func(h http.HandlerFunc) http.Handler {
		if limiter == nil {
			return h
		}
		return middleware.RateLimit(limiter)(h)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/colors", api.ListColors)

		// Icons
		r.Route("/icons", func(r chi.Router) {
			r.Get("/", api.ListIcons)
			r.Method(http.MethodPost, "/", limited(api.UploadIcon))
			r.Delete("/{id}", api.DeleteIcon)
			r.Get("/{id}/preview", api.IconPreview)
		})

		// Layout presets
		r.Route("/layout-presets", func(r chi.Router) {
			r.Get("/", api.ListLayoutPresets)
			r.Post("/", api.CreateLayoutPreset)
			r.Get("/{id}", api.GetLayoutPreset)
			r.Put("/{id}", api.UpdateLayoutPreset)
			r.Delete("/{id}", api.DeleteLayoutPreset)
		})

		// Rendering and history
		r.Method(http.MethodPost, "/render", limited(api.Render))
		r.Route("/renders", func(r chi.Router) {
			r.Get("/", api.ListRenders)
			r.Get("/{id}/download", api.DownloadRender)
			r.Get("/{id}/qr", api.RenderQR)
		})
	})

	return r
}
