// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API: icon management, layout and
// color presets, tile rendering and render history.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"kachel/internal/apperr"
	"kachel/internal/storage"
	"kachel/internal/store"
	"kachel/internal/tile"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// API groups the dependencies of all API handlers.
type API struct {
	icons     *store.IconStore
	layouts   *store.LayoutPresetStore
	colors    *store.ColorPresetStore
	renders   *store.RenderStore
	blobs     storage.Blobs
	tiles     *tile.Compositor
	publicURL string
}

// NewAPI creates the API handler group. publicURL is the externally
// reachable base URL used in QR codes; when empty it is derived from each
// request.
func NewAPI(
	icons *store.IconStore,
	layouts *store.LayoutPresetStore,
	colors *store.ColorPresetStore,
	renders *store.RenderStore,
	blobs storage.Blobs,
	tiles *tile.Compositor,
	publicURL string,
) *API {
	return &API{
		icons:     icons,
		layouts:   layouts,
		colors:    colors,
		renders:   renders,
		blobs:     blobs,
		tiles:     tiles,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode json response", "error", err)
	}
}

// writeAPIError writes a coded error response.
func writeAPIError(w http.ResponseWriter, code apperr.Code, msg string) {
	writeJSON(w, apperr.HTTPStatus(code), map[string]string{"error": msg, "code": string(code)})
}

// writeError maps err to a response. Errors without an application code
// are logged and reported as a generic internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if e, ok := apperr.As(err); ok && e.Code != apperr.Internal {
		writeAPIError(w, e.Code, e.Message)
		return
	}
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeAPIError(w, apperr.Internal, "Internal Server Error")
}

func writeNotFound(w http.ResponseWriter) {
	writeAPIError(w, apperr.NotFound, "Not found")
}

// pathID parses the {id} URL parameter. A malformed ID cannot name any
// record, so callers answer it with 404.
func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.Wrap(apperr.PayloadTooLarge, "Request body too large", err)
		}
		return apperr.Wrap(apperr.InvalidRequest, "Invalid JSON body", err)
	}
	return nil
}

// writePNG serves PNG bytes.
func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", storage.ContentTypePNG)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Health reports that the process is serving.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
