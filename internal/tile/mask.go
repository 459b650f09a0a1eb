// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tile

import (
	"image"
	"image/color"
)

// RoundedMask returns a size x size opacity mask shaped as a rounded
// rectangle. Pixels inside are 255, pixels outside 0. The radius is
// clamped to [0, size/2]; a radius of 0 yields a plain square.
func RoundedMask(size, radius int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	if radius < 0 {
		radius = 0
	}
	if radius > size/2 {
		radius = size / 2
	}

	last := size - 1
	r2 := radius * radius
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Distance to the nearest corner circle center, if the pixel
			// lies within a corner square.
			cx, cy := -1, -1
			switch {
			case x < radius:
				cx = radius
			case x > last-radius:
				cx = last - radius
			}
			switch {
			case y < radius:
				cy = radius
			case y > last-radius:
				cy = last - radius
			}
			if cx >= 0 && cy >= 0 {
				dx, dy := x-cx, y-cy
				if dx*dx+dy*dy > r2 {
					continue
				}
			}
			mask.SetAlpha(x, y, color.Alpha{A: 255})
		}
	}
	return mask
}
