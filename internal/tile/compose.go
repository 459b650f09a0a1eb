// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tile

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// IconSpec is an icon to composite onto a tile.
type IconSpec struct {
	Source    IconSource
	Placement IconPlacement
}

// Spec describes one tile.
type Spec struct {
	Color  string
	Text   string
	Layout Layout
	// Icon is nil when the tile has no icon.
	Icon *IconSpec
}

// Result is a rendered tile plus the soft-fallback branches taken.
type Result struct {
	Image *image.RGBA
	// Font is the typeface source used for the caption, empty without one.
	Font FontSource
	// Caption is the text actually drawn after fitting.
	Caption string
	// Icon is nil when no icon was composited.
	Icon *IconResult
}

// Compositor renders tiles using a fixed FontSet.
type Compositor struct {
	fonts *FontSet
}

// NewCompositor returns a compositor drawing captions with fonts. A nil
// FontSet uses the built-in typefaces.
func NewCompositor(fonts *FontSet) *Compositor {
	if fonts == nil {
		fonts = NewFontSet("", "")
	}
	return &Compositor{fonts: fonts}
}

// Compose renders spec onto a Size x Size canvas: the rounded background
// first, then the icon, then the caption.
func (c *Compositor) Compose(spec Spec) (*Result, error) {
	bg, err := ResolveColor(spec.Color)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, Size, Size))
	mask := RoundedMask(Size, spec.Layout.CornerRadius)
	draw.DrawMask(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, mask, image.Point{}, draw.Src)

	res := &Result{Image: canvas}

	if spec.Icon != nil {
		iconRes, err := c.drawIcon(canvas, spec.Icon)
		if err != nil {
			return nil, fmt.Errorf("composite icon: %w", err)
		}
		res.Icon = iconRes
	}

	if spec.Text != "" {
		res.Font, res.Caption = c.drawText(canvas, spec.Text, spec.Layout.Text)
	}

	return res, nil
}

// IconPixelSize is the icon edge length for a scale fraction, at least 1.
func IconPixelSize(scale float64) int {
	size := int(math.Floor(Size * scale))
	if size < 1 {
		size = 1
	}
	return size
}

// IconOrigin is the top-left corner of a size x size icon centered at (x, y).
func IconOrigin(x, y float64, size int) image.Point {
	half := float64(size) / 2
	return image.Pt(int(math.Floor(x-half)), int(math.Floor(y-half)))
}

func (c *Compositor) drawIcon(canvas *image.RGBA, icon *IconSpec) (*IconResult, error) {
	p := icon.Placement
	size := IconPixelSize(p.Scale)

	res, err := RasterizeIcon(icon.Source, size, p.Color)
	if err != nil {
		return nil, err
	}

	origin := IconOrigin(p.X, p.Y, size)
	rect := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(size, size))}
	draw.Draw(canvas, rect, res.Image, image.Point{}, draw.Over)
	return res, nil
}

func (c *Compositor) drawText(canvas *image.RGBA, text string, tp TextPlacement) (FontSource, string) {
	rf := c.fonts.Resolve(tp.FontSize, tp.FontWeight)
	defer rf.Close()

	right := Size - TextMarginRight
	maxWidth := right - tp.X
	caption := FitText(rf.Face, text, maxWidth)

	x := tp.X
	switch tp.Align {
	case AlignCenter:
		x = tp.X + (maxWidth-TextWidth(rf.Face, caption))/2
	case AlignRight:
		x = right - TextWidth(rf.Face, caption)
	}

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: rf.Face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(tp.Y) + rf.Face.Metrics().Ascent},
	}
	d.DrawString(caption)
	return rf.Source, caption
}
