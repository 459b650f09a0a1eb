// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tile renders branded icon tiles: a rounded-square background in a
// brand color, an optional rasterized icon, and an optional caption that is
// truncated to fit. Rendering is deterministic and keeps no state between
// calls; the only long-lived value is the FontSet built at startup.
package tile

const (
	// Size is the edge length of every rendered tile in pixels.
	Size = 450

	// TextMarginRight is the space reserved to the right of the caption.
	TextMarginRight = 40

	// PreviewSize is the edge length of icon preview images.
	PreviewSize = 256
)

// Font weights accepted in layouts.
const (
	WeightRegular  = "regular"
	WeightBold     = "bold"
	WeightSemibold = "semibold"
)

// Caption alignments accepted in layouts.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// IconPlacement positions the icon by its center point. Scale is the icon
// edge length as a fraction of the tile size.
type IconPlacement struct {
	X     float64
	Y     float64
	Scale float64
	// Color optionally recolors the icon silhouette ("#rrggbb").
	Color string
}

// TextPlacement positions the caption by the top-left of its first line.
type TextPlacement struct {
	X          int
	Y          int
	FontSize   int
	FontWeight string
	Align      string
}

// Layout holds the resolved geometry of a tile.
type Layout struct {
	CornerRadius int
	Icon         IconPlacement
	Text         TextPlacement
}

// DefaultLayout returns the layout used when a request carries none.
func DefaultLayout() Layout {
	return Layout{
		CornerRadius: 30,
		Icon:         IconPlacement{X: 300, Y: 170, Scale: 0.45},
		Text: TextPlacement{
			X:          60,
			Y:          360,
			FontSize:   48,
			FontWeight: WeightSemibold,
			Align:      AlignLeft,
		},
	}
}

// ValidWeight reports whether w is a known font weight.
func ValidWeight(w string) bool {
	switch w {
	case WeightRegular, WeightBold, WeightSemibold:
		return true
	}
	return false
}

// ValidAlign reports whether a is a known caption alignment.
func ValidAlign(a string) bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}
