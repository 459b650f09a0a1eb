// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tile

import (
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Ellipsis is appended to captions that had to be shortened.
const Ellipsis = "…"

// FitText returns text unchanged if it fits within maxWidth pixels when
// drawn with face. Otherwise it returns the longest prefix that still fits
// with Ellipsis appended, or Ellipsis alone when nothing else fits.
// Measuring with the drawing face guarantees the result fits at draw time.
// Prefix widths grow with length, so the cut point is found by bisection.
func FitText(face font.Face, text string, maxWidth int) string {
	if text == "" {
		return ""
	}
	limit := fixed.I(maxWidth)
	if font.MeasureString(face, text) <= limit {
		return text
	}

	runes := []rune(text)
	// n is the length of the longest prefix that fits alongside the ellipsis.
	n := sort.Search(len(runes)-1, func(i int) bool {
		return font.MeasureString(face, string(runes[:i+1])+Ellipsis) > limit
	})
	if n == 0 {
		return Ellipsis
	}
	return string(runes[:n]) + Ellipsis
}

// TextWidth returns the advance width of text in whole pixels, rounded up.
func TextWidth(face font.Face, text string) int {
	return font.MeasureString(face, text).Ceil()
}
