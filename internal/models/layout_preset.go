// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kachel/internal/apperr"
	"kachel/internal/tile"
)

// LayoutPreset is a named, reusable set of layout parameters.
type LayoutPreset struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Params    LayoutParams `json:"params"`
	CreatedAt time.Time    `json:"created_at"`
}

// DefaultPresetName is the name of the seeded layout preset.
const DefaultPresetName = "Default"

// LayoutParams is the client-facing layout document. Every field is
// optional; Resolve fills in what is missing from tile.DefaultLayout.
type LayoutParams struct {
	Name           *string     `json:"name,omitempty"`
	CornerRadiusPx *int        `json:"corner_radius_px,omitempty"`
	Icon           *IconParams `json:"icon,omitempty"`
	Text           *TextParams `json:"text,omitempty"`
}

// IconParams places the icon by its center.
type IconParams struct {
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
	Scale *float64 `json:"scale,omitempty"`
	Color *string  `json:"color,omitempty"`
}

// TextParams places the caption by its top-left corner.
type TextParams struct {
	X          *int    `json:"x,omitempty"`
	Y          *int    `json:"y,omitempty"`
	FontSize   *int    `json:"font_size,omitempty"`
	FontWeight *string `json:"font_weight,omitempty"`
	Align      *string `json:"align,omitempty"`
}

// Limits enforced by Validate.
const (
	MaxIconScale = 4.0
	MaxFontSize  = 400
)

// DefaultLayoutParams returns the fully populated parameters of the
// built-in layout, as stored in the seeded preset.
func DefaultLayoutParams() LayoutParams {
	l := tile.DefaultLayout()
	name := DefaultPresetName
	return LayoutParams{
		Name:           &name,
		CornerRadiusPx: &l.CornerRadius,
		Icon: &IconParams{
			X:     &l.Icon.X,
			Y:     &l.Icon.Y,
			Scale: &l.Icon.Scale,
		},
		Text: &TextParams{
			X:          &l.Text.X,
			Y:          &l.Text.Y,
			FontSize:   &l.Text.FontSize,
			FontWeight: &l.Text.FontWeight,
			Align:      &l.Text.Align,
		},
	}
}

// ParseLayoutParams decodes and validates a layout document.
func ParseLayoutParams(data []byte) (LayoutParams, error) {
	var p LayoutParams
	if err := json.Unmarshal(data, &p); err != nil {
		return LayoutParams{}, apperr.Wrap(apperr.InvalidLayout, "Invalid layout params", err)
	}
	if err := p.Validate(); err != nil {
		return LayoutParams{}, err
	}
	return p, nil
}

// IsEmpty reports whether no field is set.
func (p LayoutParams) IsEmpty() bool {
	return p.Name == nil && p.CornerRadiusPx == nil && p.Icon == nil && p.Text == nil
}

// Resolve returns the concrete layout, taking defaults for absent fields.
func (p LayoutParams) Resolve() tile.Layout {
	l := tile.DefaultLayout()
	if p.CornerRadiusPx != nil {
		l.CornerRadius = *p.CornerRadiusPx
	}
	if ip := p.Icon; ip != nil {
		setFloat(&l.Icon.X, ip.X)
		setFloat(&l.Icon.Y, ip.Y)
		setFloat(&l.Icon.Scale, ip.Scale)
		if ip.Color != nil {
			l.Icon.Color = *ip.Color
		}
	}
	if tp := p.Text; tp != nil {
		setInt(&l.Text.X, tp.X)
		setInt(&l.Text.Y, tp.Y)
		setInt(&l.Text.FontSize, tp.FontSize)
		if tp.FontWeight != nil {
			l.Text.FontWeight = *tp.FontWeight
		}
		if tp.Align != nil {
			l.Text.Align = *tp.Align
		}
	}
	return l
}

// Validate checks the fields that are present.
func (p LayoutParams) Validate() error {
	if p.CornerRadiusPx != nil && *p.CornerRadiusPx < 0 {
		return invalidLayout("corner_radius_px must not be negative")
	}
	if ip := p.Icon; ip != nil && ip.Scale != nil {
		if *ip.Scale <= 0 || *ip.Scale > MaxIconScale {
			return invalidLayout(fmt.Sprintf("icon.scale must be in (0, %g]", MaxIconScale))
		}
	}
	if tp := p.Text; tp != nil {
		if tp.FontSize != nil && (*tp.FontSize <= 0 || *tp.FontSize > MaxFontSize) {
			return invalidLayout(fmt.Sprintf("text.font_size must be in [1, %d]", MaxFontSize))
		}
		if tp.FontWeight != nil && !tile.ValidWeight(*tp.FontWeight) {
			return invalidLayout(fmt.Sprintf("unknown text.font_weight %q", *tp.FontWeight))
		}
		if tp.Align != nil && !tile.ValidAlign(*tp.Align) {
			return invalidLayout(fmt.Sprintf("unknown text.align %q", *tp.Align))
		}
	}
	return nil
}

func invalidLayout(msg string) error {
	return apperr.New(apperr.InvalidLayout, msg)
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
