// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tile

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"kachel/internal/apperr"
)

// ResolveColor parses a "#rrggbb" string into an opaque color. Leading and
// trailing whitespace is trimmed first, matching how stored colors have
// always been read. Any other shape is rejected with InvalidColor.
func ResolveColor(hex string) (color.RGBA, error) {
	hex = strings.TrimSpace(hex)
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{}, apperr.New(apperr.InvalidColor, fmt.Sprintf("invalid hex color %q: want #RRGGBB", hex))
	}

	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return color.RGBA{}, apperr.Wrap(apperr.InvalidColor, fmt.Sprintf("invalid hex color %q", hex), err)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

// ValidColor reports whether hex resolves.
func ValidColor(hex string) bool {
	_, err := ResolveColor(hex)
	return err == nil
}
