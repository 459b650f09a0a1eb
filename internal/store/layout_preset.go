// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kachel/internal/models"
)

// LayoutPresetStore handles layout preset CRUD. Params are stored as a
// JSON document.
type LayoutPresetStore struct {
	db *sql.DB
}

// NewLayoutPresetStore creates a new LayoutPresetStore.
func NewLayoutPresetStore(db *sql.DB) *LayoutPresetStore {
	return &LayoutPresetStore{db: db}
}

const layoutPresetColumns = `id, name, params, created_at`

func scanLayoutPreset(scanner interface{ Scan(...any) error }) (*models.LayoutPreset, error) {
	var (
		p      models.LayoutPreset
		params []byte
	)
	if err := scanner.Scan(&p.ID, &p.Name, &params, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(params, &p.Params); err != nil {
		return nil, fmt.Errorf("decode layout params of %s: %w", p.ID, err)
	}
	return &p, nil
}

// Create inserts a new preset. A zero ID or CreatedAt is filled in.
func (s *LayoutPresetStore) Create(p *models.LayoutPreset) (*models.LayoutPreset, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	params, err := json.Marshal(p.Params)
	if err != nil {
		return nil, fmt.Errorf("encode layout params: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO layout_presets (id, name, params, created_at)
		VALUES ($1, $2, $3, $4)`,
		p.ID, p.Name, string(params), p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create layout preset: %w", err)
	}
	return p, nil
}

// FindByID retrieves a preset by its UUID. Returns nil if not found.
func (s *LayoutPresetStore) FindByID(id uuid.UUID) (*models.LayoutPreset, error) {
	row := s.db.QueryRow(`SELECT `+layoutPresetColumns+` FROM layout_presets WHERE id = $1`, id)
	p, err := scanLayoutPreset(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find layout preset by id: %w", err)
	}
	return p, nil
}

// List returns all presets, newest first.
func (s *LayoutPresetStore) List() ([]models.LayoutPreset, error) {
	rows, err := s.db.Query(`SELECT ` + layoutPresetColumns + ` FROM layout_presets ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list layout presets: %w", err)
	}
	defer rows.Close()

	var items []models.LayoutPreset
	for rows.Next() {
		p, err := scanLayoutPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan layout preset: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Update replaces the name and params of a preset. It reports false when
// no preset has the given ID.
func (s *LayoutPresetStore) Update(id uuid.UUID, name string, params models.LayoutParams) (bool, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return false, fmt.Errorf("encode layout params: %w", err)
	}

	res, err := s.db.Exec(`UPDATE layout_presets SET name = $1, params = $2 WHERE id = $3`,
		name, string(data), id)
	if err != nil {
		return false, fmt.Errorf("update layout preset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update layout preset: %w", err)
	}
	return n > 0, nil
}

// Delete removes a preset. It reports false when no preset has the given ID.
func (s *LayoutPresetStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM layout_presets WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete layout preset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete layout preset: %w", err)
	}
	return n > 0, nil
}
