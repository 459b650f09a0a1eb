// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"kachel/internal/apperr"
	"kachel/internal/models"
	"kachel/internal/storage"
	"kachel/internal/tile"
)

// maxUploadSize is the largest accepted icon upload.
const maxUploadSize = 10 << 20

// iconView is the JSON shape of an icon in listings.
type iconView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Tags       string    `json:"tags"`
	PreviewURL string    `json:"preview_url"`
	CreatedAt  time.Time `json:"created_at"`
}

func previewURL(id uuid.UUID) string {
	return "/api/icons/" + id.String() + "/preview"
}

// ListIcons returns icons filtered by the optional query (name) and tag
// parameters, newest first.
func (a *API) ListIcons(w http.ResponseWriter, r *http.Request) {
	filter := models.IconFilter{
		Query: strings.TrimSpace(r.URL.Query().Get("query")),
		Tag:   strings.TrimSpace(r.URL.Query().Get("tag")),
	}

	icons, err := a.icons.List(filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]iconView, 0, len(icons))
	for _, icon := range icons {
		views = append(views, iconView{
			ID:         icon.ID,
			Name:       icon.Name,
			Tags:       icon.Tags,
			PreviewURL: previewURL(icon.ID),
			CreatedAt:  icon.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// UploadIcon stores a new SVG or PNG icon together with its preview.
func (a *API) UploadIcon(w http.ResponseWriter, r *http.Request) {
	// Allow some overhead for the text form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+4096)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeAPIError(w, apperr.PayloadTooLarge, "File too large. Maximum size is 10 MB.")
			return
		}
		writeAPIError(w, apperr.MissingField, "Missing file or name")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	tags := strings.TrimSpace(r.FormValue("tags"))
	file, header, err := r.FormFile("file")
	if err != nil || name == "" {
		writeAPIError(w, apperr.MissingField, "Missing file or name")
		return
	}
	defer file.Close()

	if msg := validateIconFields(name, tags); msg != "" {
		writeAPIError(w, apperr.InvalidRequest, msg)
		return
	}
	if !validIconFilename(header.Filename) {
		writeAPIError(w, apperr.UnsupportedFormat, "Only SVG or PNG supported")
		return
	}
	format, _ := tile.FormatFromExt(filepath.Ext(header.Filename))

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	src := tile.IconSource{Data: data, Format: format}

	preview, err := tile.Preview(src)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id := uuid.New()
	icon := &models.Icon{
		ID:         id,
		Name:       name,
		Tags:       tags,
		SourceKey:  storage.IconKey(id, string(format)),
		PreviewKey: storage.PreviewKey(id),
	}

	ctx := r.Context()
	contentType := storage.ContentTypePNG
	if format == tile.FormatSVG {
		contentType = storage.ContentTypeSVG
	}
	if err := a.blobs.Put(ctx, icon.SourceKey, contentType, data); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.blobs.Put(ctx, icon.PreviewKey, storage.ContentTypePNG, preview); err != nil {
		a.deleteBlobs(r, icon.SourceKey)
		writeError(w, r, err)
		return
	}

	if _, err := a.icons.Create(icon); err != nil {
		a.deleteBlobs(r, icon.SourceKey, icon.PreviewKey)
		writeError(w, r, err)
		return
	}

	slog.Info("icon uploaded", "id", id, "name", name, "format", format, "bytes", len(data))
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":          id,
		"preview_url": previewURL(id),
	})
}

// DeleteIcon removes an icon record and its blobs. Renders that reference
// the icon keep their dangling reference.
func (a *API) DeleteIcon(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	// Delete from DB first (returns the row for blob cleanup).
	deleted, err := a.icons.Delete(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if deleted == nil {
		writeNotFound(w)
		return
	}

	a.deleteBlobs(r, deleted.SourceKey, deleted.PreviewKey)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// IconPreview serves the 256x256 preview PNG of an icon.
func (a *API) IconPreview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	icon, err := a.icons.FindByID(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if icon == nil {
		writeNotFound(w)
		return
	}

	data, err := a.blobs.Get(r.Context(), icon.PreviewKey)
	if errors.Is(err, storage.ErrNotFound) {
		writeNotFound(w)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	writePNG(w, data)
}

// deleteBlobs removes blobs best-effort; failures are only logged.
func (a *API) deleteBlobs(r *http.Request, keys ...string) {
	for _, key := range keys {
		if err := a.blobs.Delete(r.Context(), key); err != nil {
			slog.Warn("blob delete failed", "error", err, "key", key)
		}
	}
}
