// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tile

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tdfont "github.com/tdewolff/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSource records which typeface a caption was measured and drawn with.
type FontSource string

const (
	// SourcePreferred is the configured font file.
	SourcePreferred FontSource = "preferred"
	// SourceBuiltin is the Go font family compiled into the binary.
	SourceBuiltin FontSource = "builtin"
	// SourceBasic is the fixed 7x13 bitmap face, used only when no
	// scalable face can be built.
	SourceBasic FontSource = "basic"
)

// typeface is a parsed scalable font plus where it came from.
type typeface struct {
	font   *opentype.Font
	source FontSource
}

// FontSet holds the regular and bold typefaces. It is built once at startup
// and only read afterwards, so it is safe for concurrent use.
type FontSet struct {
	regular typeface
	bold    typeface
}

// ResolvedFont is a face ready for measuring and drawing. Close releases it.
type ResolvedFont struct {
	Face   font.Face
	Source FontSource
	Size   int
	Bold   bool
}

// Close releases the face.
func (f *ResolvedFont) Close() error {
	if f.Source == SourceBasic {
		return nil
	}
	return f.Face.Close()
}

// NewFontSet loads the preferred typefaces from regularPath and boldPath.
// A path that is empty or cannot be loaded falls back to the built-in Go
// fonts; that degrades fidelity but never blocks rendering.
func NewFontSet(regularPath, boldPath string) *FontSet {
	return &FontSet{
		regular: loadTypeface(regularPath, goregular.TTF),
		bold:    loadTypeface(boldPath, gobold.TTF),
	}
}

func loadTypeface(path string, builtin []byte) typeface {
	if path != "" {
		f, err := parseFontFile(path)
		if err == nil {
			return typeface{font: f, source: SourcePreferred}
		}
		slog.Warn("preferred font unavailable, using built-in", "path", path, "error", err)
	}

	f, err := opentype.Parse(builtin)
	if err != nil {
		slog.Warn("built-in font unusable, using basic face", "error", err)
		return typeface{source: SourceBasic}
	}
	return typeface{font: f, source: SourceBuiltin}
}

// parseFontFile reads a TTF, OTF, WOFF, or WOFF2 file.
func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isWebFont(path, data) {
		data, err = tdfont.ToSFNT(data)
		if err != nil {
			return nil, fmt.Errorf("convert web font: %w", err)
		}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

// isWebFont checks for WOFF/WOFF2 data by extension or magic bytes.
func isWebFont(path string, data []byte) bool {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".woff2") || strings.HasSuffix(lower, ".woff") {
		return true
	}
	if len(data) < 4 {
		return false
	}
	magic := string(data[:4])
	return magic == "wOF2" || magic == "wOFF"
}

// Sources reports where the regular and bold typefaces were loaded from.
func (fs *FontSet) Sources() (regular, bold FontSource) {
	return fs.regular.source, fs.bold.source
}

// Resolve returns a face of the given pixel size. Weights "bold" and
// "semibold" map to the bold typeface, anything else to regular.
func (fs *FontSet) Resolve(size int, weight string) *ResolvedFont {
	if size < 1 {
		size = 1
	}
	bold := weight == WeightBold || weight == WeightSemibold

	tf := fs.regular
	if bold {
		tf = fs.bold
	}

	if tf.font != nil {
		// 72 DPI makes the point size equal to the pixel size.
		face, err := opentype.NewFace(tf.font, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return &ResolvedFont{Face: face, Source: tf.source, Size: size, Bold: bold}
		}
		slog.Warn("font face creation failed, using basic face", "size", size, "error", err)
	}

	return &ResolvedFont{Face: basicfont.Face7x13, Source: SourceBasic, Size: 13, Bold: bold}
}
