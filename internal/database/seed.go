// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kachel/internal/models"
)

// Seed populates empty preset tables with the brand colors and the
// default layout. Each table is checked and filled inside one
// transaction, so concurrent or repeated calls never insert twice.
func Seed(db *DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	colors, err := seedColorPresets(tx)
	if err != nil {
		return err
	}
	layouts, err := seedLayoutPresets(tx)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	if colors == 0 && layouts == 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}
	slog.Info("database seeded", "color_presets", colors, "layout_presets", layouts)
	return nil
}

func seedColorPresets(tx *sql.Tx) (int, error) {
	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM color_presets").Scan(&count); err != nil {
		return 0, fmt.Errorf("seed check color presets: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, c := range models.DefaultColorPresets {
		if _, err := tx.Exec(
			"INSERT INTO color_presets (name, hex) VALUES ($1, $2)", c.Name, c.Hex,
		); err != nil {
			return 0, fmt.Errorf("seed insert color %s: %w", c.Name, err)
		}
	}
	return len(models.DefaultColorPresets), nil
}

func seedLayoutPresets(tx *sql.Tx) (int, error) {
	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM layout_presets").Scan(&count); err != nil {
		return 0, fmt.Errorf("seed check layout presets: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	params, err := json.Marshal(models.DefaultLayoutParams())
	if err != nil {
		return 0, fmt.Errorf("seed marshal default layout: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO layout_presets (id, name, params, created_at) VALUES ($1, $2, $3, $4)",
		uuid.New(), models.DefaultPresetName, string(params), time.Now().UTC(),
	); err != nil {
		return 0, fmt.Errorf("seed insert default layout: %w", err)
	}
	return 1, nil
}
