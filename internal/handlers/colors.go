// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"kachel/internal/models"
)

// ListColors returns the brand color presets.
func (a *API) ListColors(w http.ResponseWriter, r *http.Request) {
	colors, err := a.colors.List()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if colors == nil {
		colors = []models.ColorPreset{}
	}
	writeJSON(w, http.StatusOK, colors)
}
