// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"kachel/internal/apperr"
	"kachel/internal/models"
	"kachel/internal/slug"
	"kachel/internal/storage"
	"kachel/internal/tile"
)

// recentRenders is how many renders the history lists.
const recentRenders = 50

// qrSize is the edge length of QR code images in pixels.
const qrSize = 256

// renderRequest is the body of POST /api/render.
type renderRequest struct {
	Name           string          `json:"name"`
	ColorHex       string          `json:"color_hex"`
	IconID         string          `json:"icon_id"`
	LayoutParams   json.RawMessage `json:"layout_params"`
	LayoutPresetID string          `json:"layout_preset_id"`
	Text           string          `json:"text"`
}

// renderView is the JSON shape of a render in the history.
type renderView struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	ColorHex     string              `json:"color_hex"`
	IconID       *uuid.UUID          `json:"icon_id"`
	LayoutParams models.RenderParams `json:"layout_params"`
	CreatedAt    time.Time           `json:"created_at"`
	DownloadURL  string              `json:"download_url"`
}

func downloadURL(id uuid.UUID) string {
	return "/api/renders/" + id.String() + "/download"
}

// Render composes a tile, stores the PNG and records it in the history.
// Validation failures leave no record and no file behind.
func (a *API) Render(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = models.DefaultRenderName
	}
	colorHex := strings.TrimSpace(req.ColorHex)
	if colorHex == "" {
		writeAPIError(w, apperr.MissingField, "Missing color")
		return
	}
	if !tile.ValidColor(colorHex) {
		writeAPIError(w, apperr.InvalidColor, "Invalid color hex")
		return
	}
	if msg := validateRenderFields(name, req.Text); msg != "" {
		writeAPIError(w, apperr.InvalidRequest, msg)
		return
	}

	params, err := a.layoutFor(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	layout := params.Resolve()

	spec := tile.Spec{Color: colorHex, Text: req.Text, Layout: layout}
	iconID := a.iconFor(r, req.IconID, &spec)

	res, err := a.tiles.Compose(spec)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if res.Icon != nil && res.Icon.RecolorSkipped {
		slog.Warn("icon recolor skipped, keeping original colors", "color", layout.Icon.Color)
	}

	png, err := tile.EncodePNG(res.Image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	renderID := uuid.New()
	key := storage.RenderKey(renderID)
	if err := a.blobs.Put(r.Context(), key, storage.ContentTypePNG, png); err != nil {
		writeError(w, r, err)
		return
	}

	record := &models.Render{
		ID:        renderID,
		Name:      name,
		IconID:    iconID,
		ColorHex:  colorHex,
		Params:    models.RenderParams{Layout: params, Text: req.Text},
		OutputKey: key,
	}
	if _, err := a.renders.Create(record); err != nil {
		slog.Error("render record insert failed, output blob orphaned", "key", key, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("tile rendered",
		"id", renderID,
		"font", res.Font,
		"caption", res.Caption,
		"icon", res.Icon != nil,
	)
	url := downloadURL(renderID)
	writeJSON(w, http.StatusOK, map[string]any{
		"render_id":     renderID,
		"download_url":  url,
		"thumbnail_url": url,
	})
}

// layoutFor picks the layout of a render request: explicit params first,
// then the referenced preset, then the built-in default.
func (a *API) layoutFor(req renderRequest) (models.LayoutParams, error) {
	raw := strings.TrimSpace(string(req.LayoutParams))
	if raw != "" && raw != "null" {
		return models.ParseLayoutParams(req.LayoutParams)
	}

	if req.LayoutPresetID != "" {
		id, err := uuid.Parse(req.LayoutPresetID)
		if err != nil {
			return models.LayoutParams{}, apperr.New(apperr.NotFound, "Layout preset not found")
		}
		preset, err := a.layouts.FindByID(id)
		if err != nil {
			return models.LayoutParams{}, err
		}
		if preset == nil {
			return models.LayoutParams{}, apperr.New(apperr.NotFound, "Layout preset not found")
		}
		if err := preset.Params.Validate(); err != nil {
			return models.LayoutParams{}, err
		}
		return preset.Params, nil
	}

	return models.DefaultLayoutParams(), nil
}

// iconFor loads the referenced icon into spec. An icon that is unknown or
// whose source blob is gone is skipped and the tile renders without it.
// The returned ID is what the render record keeps, dangling or not.
func (a *API) iconFor(r *http.Request, rawID string, spec *tile.Spec) *uuid.UUID {
	if rawID == "" {
		return nil
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		slog.Warn("render icon id malformed, rendering without icon", "icon_id", rawID)
		return nil
	}

	icon, err := a.icons.FindByID(id)
	if err != nil {
		slog.Error("render icon lookup failed, rendering without icon", "icon_id", id, "error", err)
		return &id
	}
	if icon == nil {
		slog.Warn("render icon not found, rendering without icon", "icon_id", id)
		return &id
	}

	data, err := a.blobs.Get(r.Context(), icon.SourceKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.Warn("render icon source missing, rendering without icon", "icon_id", id, "key", icon.SourceKey)
		} else {
			slog.Error("render icon source unreadable, rendering without icon", "icon_id", id, "error", err)
		}
		return &id
	}

	format, ok := tile.FormatFromExt(filepath.Ext(icon.SourceKey))
	if !ok {
		slog.Warn("render icon has unknown format, rendering without icon", "icon_id", id, "key", icon.SourceKey)
		return &id
	}

	spec.Icon = &tile.IconSpec{
		Source:    tile.IconSource{Data: data, Format: format},
		Placement: spec.Layout.Icon,
	}
	return &id
}

// ListRenders returns the most recent renders, newest first.
func (a *API) ListRenders(w http.ResponseWriter, r *http.Request) {
	renders, err := a.renders.ListRecent(recentRenders)
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]renderView, 0, len(renders))
	for _, rec := range renders {
		views = append(views, renderView{
			ID:           rec.ID,
			Name:         rec.Name,
			ColorHex:     rec.ColorHex,
			IconID:       rec.IconID,
			LayoutParams: rec.Params,
			CreatedAt:    rec.CreatedAt,
			DownloadURL:  downloadURL(rec.ID),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// findRender resolves the {id} parameter to a render, writing a 404 when
// there is none.
func (a *API) findRender(w http.ResponseWriter, r *http.Request) (*models.Render, bool) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w)
		return nil, false
	}
	rec, err := a.renders.FindByID(id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	if rec == nil {
		writeNotFound(w)
		return nil, false
	}
	return rec, true
}

// DownloadRender serves a rendered tile. With ?download=1 the response
// asks the browser to save the file.
func (a *API) DownloadRender(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.findRender(w, r)
	if !ok {
		return
	}

	data, err := a.blobs.Get(r.Context(), rec.OutputKey)
	if errors.Is(err, storage.ErrNotFound) {
		writeNotFound(w)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	disposition := "inline"
	if r.URL.Query().Get("download") == "1" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, downloadFilename(rec)))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	writePNG(w, data)
}

// RenderQR serves a QR code that encodes the absolute download URL of a
// render.
func (a *API) RenderQR(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.findRender(w, r)
	if !ok {
		return
	}

	png, err := qrcode.Encode(a.absoluteURL(r, downloadURL(rec.ID)), qrcode.Medium, qrSize)
	if err != nil {
		writeError(w, r, fmt.Errorf("encode qr code: %w", err))
		return
	}
	writePNG(w, png)
}

// absoluteURL prefixes path with the public base URL, or with the scheme
// and host the request arrived on.
func (a *API) absoluteURL(r *http.Request, path string) string {
	if a.publicURL != "" {
		return a.publicURL + path
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}

// downloadFilename is the file name offered for a render download.
func downloadFilename(rec *models.Render) string {
	return slug.Or(rec.Name, models.DefaultRenderName) + "-" + rec.ID.String()[:8] + ".png"
}
