// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"kachel/internal/apperr"
	"kachel/internal/models"
)

// presetRequest is the body of layout preset create and update requests.
type presetRequest struct {
	Name   string          `json:"name"`
	Params json.RawMessage `json:"params"`
}

// parse validates the request and returns the preset name and params.
// A missing name, or params that are absent, null or an empty object,
// are reported as missing.
func (req presetRequest) parse() (string, models.LayoutParams, error) {
	name := strings.TrimSpace(req.Name)
	raw := strings.TrimSpace(string(req.Params))
	if name == "" || raw == "" || raw == "null" {
		return "", models.LayoutParams{}, apperr.New(apperr.MissingField, "Missing name or params")
	}
	if msg := validatePresetName(name); msg != "" {
		return "", models.LayoutParams{}, apperr.New(apperr.InvalidRequest, msg)
	}

	params, err := models.ParseLayoutParams(req.Params)
	if err != nil {
		return "", models.LayoutParams{}, err
	}
	if params.IsEmpty() {
		return "", models.LayoutParams{}, apperr.New(apperr.MissingField, "Missing name or params")
	}
	return name, params, nil
}

// ListLayoutPresets returns all layout presets, newest first.
func (a *API) ListLayoutPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := a.layouts.List()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if presets == nil {
		presets = []models.LayoutPreset{}
	}
	writeJSON(w, http.StatusOK, presets)
}

// CreateLayoutPreset stores a new layout preset.
func (a *API) CreateLayoutPreset(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	name, params, err := req.parse()
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := a.layouts.Create(&models.LayoutPreset{Name: name, Params: params})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": created.ID})
}

// GetLayoutPreset returns one layout preset.
func (a *API) GetLayoutPreset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	preset, err := a.layouts.FindByID(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if preset == nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, preset)
}

// UpdateLayoutPreset replaces the name and params of a layout preset.
func (a *API) UpdateLayoutPreset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	var req presetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	name, params, err := req.parse()
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := a.layouts.Update(id, name, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !updated {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteLayoutPreset removes a layout preset.
func (a *API) DeleteLayoutPreset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	deleted, err := a.layouts.Delete(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !deleted {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
