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

// RenderStore handles the append-only render history.
type RenderStore struct {
	db *sql.DB
}

// NewRenderStore creates a new RenderStore.
func NewRenderStore(db *sql.DB) *RenderStore {
	return &RenderStore{db: db}
}

const renderColumns = `id, name, icon_id, color_hex, params, output_key, created_at`

func scanRender(scanner interface{ Scan(...any) error }) (*models.Render, error) {
	var (
		r      models.Render
		iconID uuid.NullUUID
		params []byte
	)
	err := scanner.Scan(&r.ID, &r.Name, &iconID, &r.ColorHex, &params, &r.OutputKey, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if iconID.Valid {
		r.IconID = &iconID.UUID
	}
	if err := json.Unmarshal(params, &r.Params); err != nil {
		return nil, fmt.Errorf("decode render params of %s: %w", r.ID, err)
	}
	return &r, nil
}

// Create inserts a render record. A zero ID or CreatedAt is filled in.
func (s *RenderStore) Create(r *models.Render) (*models.Render, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	params, err := json.Marshal(r.Params)
	if err != nil {
		return nil, fmt.Errorf("encode render params: %w", err)
	}
	var iconID uuid.NullUUID
	if r.IconID != nil {
		iconID = uuid.NullUUID{UUID: *r.IconID, Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO renders (id, name, icon_id, color_hex, params, output_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.Name, iconID, r.ColorHex, string(params), r.OutputKey, r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create render: %w", err)
	}
	return r, nil
}

// FindByID retrieves a render by its UUID. Returns nil if not found.
func (s *RenderStore) FindByID(id uuid.UUID) (*models.Render, error) {
	row := s.db.QueryRow(`SELECT `+renderColumns+` FROM renders WHERE id = $1`, id)
	r, err := scanRender(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find render by id: %w", err)
	}
	return r, nil
}

// ListRecent returns up to limit renders, newest first.
func (s *RenderStore) ListRecent(limit int) ([]models.Render, error) {
	rows, err := s.db.Query(`
		SELECT `+renderColumns+`
		FROM renders
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list renders: %w", err)
	}
	defer rows.Close()

	var items []models.Render
	for rows.Next() {
		r, err := scanRender(rows)
		if err != nil {
			return nil, fmt.Errorf("scan render: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// Count returns the number of render records.
func (s *RenderStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM renders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count renders: %w", err)
	}
	return count, nil
}
