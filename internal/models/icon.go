// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Icon is an uploaded SVG or PNG graphic. The source file and its 256x256
// preview live in blob storage; the row only records their keys.
type Icon struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Tags       string    `json:"tags"`
	SourceKey  string    `json:"-"`
	PreviewKey string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// IconFilter narrows an icon listing. Empty fields match everything.
type IconFilter struct {
	// Query is a case-insensitive substring of the icon name.
	Query string
	// Tag is a case-insensitive substring of the tags text.
	Tag string
}

// Match reports whether icon passes the filter.
func (f IconFilter) Match(icon *Icon) bool {
	if f.Query != "" && !containsFold(icon.Name, f.Query) {
		return false
	}
	if f.Tag != "" && !containsFold(icon.Tags, f.Tag) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
