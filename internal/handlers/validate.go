// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// Validation limits for user-supplied text fields.
const (
	maxNameLen = 200
	maxTagsLen = 500

	// Captions are fitted to the tile, so this only bounds rendering work.
	maxRenderTextLen = 10000
)

// iconFilePattern matches the upload filenames accepted as icon sources.
const iconFilePattern = "*.{svg,png}"

// validIconFilename reports whether an uploaded filename has an accepted
// extension. Matching ignores case and any client-supplied directories.
func validIconFilename(filename string) bool {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ok, err := doublestar.Match(iconFilePattern, strings.ToLower(base))
	return err == nil && ok
}

// validateIconFields checks the text fields of an icon upload and returns
// the first error found.
func validateIconFields(name, tags string) string {
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(tags) > maxTagsLen {
		return "Tags are too long (max 500 characters)."
	}
	return ""
}

// validateRenderFields checks the free-text fields of a render request.
// Long captions are truncated when drawn, not rejected.
func validateRenderFields(name, text string) string {
	if utf8.RuneCountInString(name) > maxRenderTextLen {
		return fmt.Sprintf("Name is too long (max %d characters).", maxRenderTextLen)
	}
	if utf8.RuneCountInString(text) > maxRenderTextLen {
		return fmt.Sprintf("Text is too long (max %d characters).", maxRenderTextLen)
	}
	return ""
}

// validatePresetName checks a layout preset name.
func validatePresetName(name string) string {
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	return ""
}
