// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRenderName is used when a render request carries no name.
const DefaultRenderName = "kachel"

// Render is the history record of one generated tile. Records are never
// updated. IconID may point at an icon that has since been deleted.
type Render struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	IconID    *uuid.UUID   `json:"icon_id"`
	ColorHex  string       `json:"color_hex"`
	Params    RenderParams `json:"params"`
	OutputKey string       `json:"-"`
	CreatedAt time.Time    `json:"created_at"`
}

// RenderParams are the inputs a tile was rendered with, stored as JSON.
type RenderParams struct {
	Layout LayoutParams `json:"layout"`
	Text   string       `json:"text"`
}
