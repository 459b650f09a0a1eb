// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tile

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"kachel/internal/apperr"
)

// IconFormat is the encoding of an icon source.
type IconFormat string

const (
	FormatSVG IconFormat = "svg"
	FormatPNG IconFormat = "png"
)

// maxIconPixels caps decoded icon dimensions to prevent memory bombs.
// 4096x4096 is ~64 MB decoded in RGBA.
const maxIconPixels = 4096 * 4096

// IconSource is the raw content of an uploaded icon.
type IconSource struct {
	Data   []byte
	Format IconFormat
}

// IconResult is a rasterized icon plus the fallback branches taken.
type IconResult struct {
	Image *image.NRGBA
	// Recolored is true when the silhouette was filled with the recolor value.
	Recolored bool
	// RecolorSkipped is true when a recolor value was given but did not
	// resolve to a color, so the original colors were kept.
	RecolorSkipped bool
}

// FormatFromExt maps a file extension (with or without the dot) to an icon
// format. ok is false for anything but SVG and PNG.
func FormatFromExt(ext string) (IconFormat, bool) {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "svg":
		return FormatSVG, true
	case "png":
		return FormatPNG, true
	}
	return "", false
}

// LoadIconFile reads an icon source from disk, taking the format from the
// file extension.
func LoadIconFile(path string) (IconSource, error) {
	format, ok := FormatFromExt(filepath.Ext(path))
	if !ok {
		return IconSource{}, apperr.New(apperr.UnsupportedFormat, "Only SVG or PNG supported")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return IconSource{}, fmt.Errorf("read icon %s: %w", path, err)
	}
	return IconSource{Data: data, Format: format}, nil
}

// RasterizeIcon converts src into a size x size image. Vector sources are
// rendered at their natural size first. When recolor resolves to a color,
// the icon is refilled with it using its own alpha channel as a stencil;
// an unresolvable recolor value is ignored.
func RasterizeIcon(src IconSource, size int, recolor string) (*IconResult, error) {
	if size < 1 {
		size = 1
	}

	var (
		img image.Image
		err error
	)
	switch src.Format {
	case FormatSVG:
		img, err = renderSVG(src.Data)
	case FormatPNG:
		img, err = decodePNG(src.Data)
	default:
		return nil, apperr.New(apperr.UnsupportedFormat, "Only SVG or PNG supported")
	}
	if err != nil {
		return nil, err
	}

	res := &IconResult{}
	nrgba := imaging.Clone(img)
	if recolor != "" {
		fill, cerr := ResolveColor(recolor)
		if cerr != nil {
			res.RecolorSkipped = true
		} else {
			stencil(nrgba, fill)
			res.Recolored = true
		}
	}

	res.Image = imaging.Resize(nrgba, size, size, imaging.Lanczos)
	return res, nil
}

// renderSVG rasterizes an SVG document at its viewBox size.
func renderSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.RasterizationFailed, "could not parse SVG", err)
	}
	if len(icon.SVGPaths) == 0 {
		return nil, apperr.New(apperr.RasterizationFailed, "SVG contains no drawable paths")
	}

	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		return nil, apperr.New(apperr.RasterizationFailed, "SVG has no size")
	}
	if int64(w)*int64(h) > maxIconPixels {
		return nil, apperr.New(apperr.RasterizationFailed, fmt.Sprintf("SVG too large: %dx%d", w, h))
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}

// decodePNG decodes PNG data after checking its dimensions.
func decodePNG(data []byte) (image.Image, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.RasterizationFailed, "could not decode PNG", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxIconPixels {
		return nil, apperr.New(apperr.RasterizationFailed, fmt.Sprintf("PNG too large: %dx%d", cfg.Width, cfg.Height))
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.RasterizationFailed, "could not decode PNG", err)
	}
	return img, nil
}

// stencil replaces every pixel's color with fill, keeping its alpha.
func stencil(img *image.NRGBA, fill color.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i] = fill.R
		img.Pix[i+1] = fill.G
		img.Pix[i+2] = fill.B
	}
}

// Preview rasterizes src at PreviewSize and encodes it as PNG.
func Preview(src IconSource) ([]byte, error) {
	res, err := RasterizeIcon(src, PreviewSize, "")
	if err != nil {
		return nil, err
	}
	return EncodePNG(res.Image)
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
