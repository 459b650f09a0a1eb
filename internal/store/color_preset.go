// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"kachel/internal/models"
)

// ColorPresetStore reads the brand color presets. Rows are only written by
// the seed.
type ColorPresetStore struct {
	db *sql.DB
}

// NewColorPresetStore creates a new ColorPresetStore.
func NewColorPresetStore(db *sql.DB) *ColorPresetStore {
	return &ColorPresetStore{db: db}
}

// List returns all color presets in insertion order.
func (s *ColorPresetStore) List() ([]models.ColorPreset, error) {
	rows, err := s.db.Query(`SELECT id, name, hex FROM color_presets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list color presets: %w", err)
	}
	defer rows.Close()

	var items []models.ColorPreset
	for rows.Next() {
		var c models.ColorPreset
		if err := rows.Scan(&c.ID, &c.Name, &c.Hex); err != nil {
			return nil, fmt.Errorf("scan color preset: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Count returns the number of color presets.
func (s *ColorPresetStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM color_presets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count color presets: %w", err)
	}
	return count, nil
}
