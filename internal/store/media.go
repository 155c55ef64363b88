package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// MediaKind distinguishes photo and video items.
type MediaKind string

const (
	MediaKindPhoto MediaKind = "photo"
	MediaKindVideo MediaKind = "video"
)

// MediaItem is one stored gallery entry.
type MediaItem struct {
	ID        string
	Title     string
	Path      string
	Kind      MediaKind
	CreatedAt time.Time
}

// MediaRepository provides CRUD operations for media items.
type MediaRepository struct {
	db *sql.DB
}

// Media returns the media repository for this store.
func (s *Store) Media() *MediaRepository {
	return &MediaRepository{db: s.db}
}

// Create inserts a new media item.
func (r *MediaRepository) Create(m *MediaItem) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO media_items (id, title, path, kind, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.Path, string(m.Kind), m.CreatedAt,
	)
	return err
}

// GetByID retrieves a media item by its ID.
func (r *MediaRepository) GetByID(id string) (*MediaItem, error) {
	m := &MediaItem{}
	var kind string

	err := r.db.QueryRow(
		`SELECT id, title, path, kind, created_at
		 FROM media_items WHERE id = ?`,
		id,
	).Scan(&m.ID, &m.Title, &m.Path, &kind, &m.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	m.Kind = MediaKind(kind)
	return m, nil
}

// List retrieves all media items, oldest first so the ring layout is
// chronological.
func (r *MediaRepository) List() ([]*MediaItem, error) {
	rows, err := r.db.Query(
		`SELECT id, title, path, kind, created_at
		 FROM media_items ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*MediaItem
	for rows.Next() {
		m := &MediaItem{}
		var kind string

		if err := rows.Scan(&m.ID, &m.Title, &m.Path, &kind, &m.CreatedAt); err != nil {
			return nil, err
		}

		m.Kind = MediaKind(kind)
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Update updates an existing media item.
func (r *MediaRepository) Update(m *MediaItem) error {
	result, err := r.db.Exec(
		`UPDATE media_items SET title = ?, path = ?, kind = ? WHERE id = ?`,
		m.Title, m.Path, string(m.Kind), m.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a media item by its ID.
func (r *MediaRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM media_items WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
