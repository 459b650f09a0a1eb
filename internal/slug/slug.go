// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns render names into file-name-safe slugs.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// separators become hyphens.
	separators = regexp.MustCompile(`[\s/\\_.]+`)
	// nonAlphanumeric matches anything that isn't a letter, digit, or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// maxLen caps slug length in bytes.
const maxLen = 64

// Generate creates a file-name-safe slug from the given string. Accents
// are stripped before other non-ASCII characters are dropped.
// Example: "Überweisung / SEPA" → "uberweisung-sepa"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), result); err == nil {
		result = folded
	}
	result = separators.ReplaceAllString(result, "-")
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	if len(result) > maxLen {
		result = result[:maxLen]
	}
	return strings.Trim(result, "-")
}

// Or returns the slug of s, or fallback when s has no usable characters.
func Or(s, fallback string) string {
	if g := Generate(s); g != "" {
		return g
	}
	return fallback
}
