// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kachel/internal/models"
)

// IconStore handles all icon-related database operations.
type IconStore struct {
	db *sql.DB
}

// NewIconStore creates a new IconStore with the given database connection.
func NewIconStore(db *sql.DB) *IconStore {
	return &IconStore{db: db}
}

// iconColumns lists the columns selected in icon queries.
const iconColumns = `id, name, tags, source_key, preview_key, created_at`

// scanIcon scans an icon row from the result set.
func scanIcon(scanner interface{ Scan(...any) error }) (*models.Icon, error) {
	var i models.Icon
	err := scanner.Scan(&i.ID, &i.Name, &i.Tags, &i.SourceKey, &i.PreviewKey, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserts a new icon. A zero ID or CreatedAt is filled in.
func (s *IconStore) Create(i *models.Icon) (*models.Icon, error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO icons (id, name, tags, source_key, preview_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		i.ID, i.Name, i.Tags, i.SourceKey, i.PreviewKey, i.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create icon: %w", err)
	}
	return i, nil
}

// FindByID retrieves a single icon by its UUID.
func (s *IconStore) FindByID(id uuid.UUID) (*models.Icon, error) {
	row := s.db.QueryRow(`SELECT `+iconColumns+` FROM icons WHERE id = $1`, id)
	i, err := scanIcon(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find icon by id: %w", err)
	}
	return i, nil
}

// List returns the icons matching filter, newest first.
func (s *IconStore) List(filter models.IconFilter) ([]models.Icon, error) {
	rows, err := s.db.Query(`SELECT ` + iconColumns + ` FROM icons ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list icons: %w", err)
	}
	defer rows.Close()

	var items []models.Icon
	for rows.Next() {
		i, err := scanIcon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan icon: %w", err)
		}
		if filter.Match(i) {
			items = append(items, *i)
		}
	}
	return items, rows.Err()
}

// Delete removes an icon and returns it so the caller can clean up the
// corresponding blobs. It returns nil when no icon has the given ID.
func (s *IconStore) Delete(id uuid.UUID) (*models.Icon, error) {
	row := s.db.QueryRow(`
		DELETE FROM icons WHERE id = $1
		RETURNING `+iconColumns, id)
	i, err := scanIcon(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete icon: %w", err)
	}
	return i, nil
}

// Count returns the total number of icons.
func (s *IconStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM icons`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count icons: %w", err)
	}
	return count, nil
}
