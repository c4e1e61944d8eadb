package session

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const entityColumns = `id, display_name, node_count, edge_count,
	documents, text_nodes, images, websites, total_words,
	created_at, updated_at`

// List returns all sessions ordered by creation time then id, so the
// snapshot handed to the viewer is stable across calls.
func (st *Store) List() ([]Entity, error) {
	rows, err := st.Query("SELECT " + entityColumns + " FROM sessions ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var entities []Entity
	for rows.Next() {
		var e Entity
		err := rows.Scan(&e.ID, &e.DisplayName, &e.NodeCount, &e.EdgeCount,
			&e.Stats.Documents, &e.Stats.TextNodes, &e.Stats.Images,
			&e.Stats.Websites, &e.Stats.TotalWords,
			&e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return entities, nil
}

// Get returns one session by id.
func (st *Store) Get(id string) (Entity, error) {
	var e Entity
	err := st.QueryRow("SELECT "+entityColumns+" FROM sessions WHERE id = ?", id).
		Scan(&e.ID, &e.DisplayName, &e.NodeCount, &e.EdgeCount,
			&e.Stats.Documents, &e.Stats.TextNodes, &e.Stats.Images,
			&e.Stats.Websites, &e.Stats.TotalWords,
			&e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return Entity{}, ErrNotFound
	}
	if err != nil {
		return Entity{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return e, nil
}

// Add inserts a new session. A missing id is generated; timestamps are
// stamped with the current time unless already set (JSON imports keep
// their original timestamps).
func (st *Store) Add(e Entity) (Entity, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UnixMilli()
	if e.CreatedAt == 0 {
		e.CreatedAt = now
	}
	if e.UpdatedAt == 0 {
		e.UpdatedAt = now
	}

	_, err := st.Exec(`
		INSERT INTO sessions (id, display_name, node_count, edge_count,
			documents, text_nodes, images, websites, total_words,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.DisplayName, e.NodeCount, e.EdgeCount,
		e.Stats.Documents, e.Stats.TextNodes, e.Stats.Images,
		e.Stats.Websites, e.Stats.TotalWords,
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return Entity{}, fmt.Errorf("insert session: %w", err)
	}
	return e, nil
}

// Update rewrites a session's display data and stats and bumps its
// modification timestamp.
func (st *Store) Update(e Entity) error {
	e.UpdatedAt = time.Now().UnixMilli()
	result, err := st.Exec(`
		UPDATE sessions SET display_name = ?, node_count = ?, edge_count = ?,
			documents = ?, text_nodes = ?, images = ?, websites = ?, total_words = ?,
			updated_at = ?
		WHERE id = ?
	`, e.DisplayName, e.NodeCount, e.EdgeCount,
		e.Stats.Documents, e.Stats.TextNodes, e.Stats.Images,
		e.Stats.Websites, e.Stats.TotalWords,
		e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("update session %s: %w", e.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove deletes a session by id.
func (st *Store) Remove(id string) error {
	result, err := st.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("remove session %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored sessions.
func (st *Store) Count() (int, error) {
	var n int
	if err := st.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// Import adds all entities from the slice, skipping ids that already
// exist. Returns the number actually inserted.
func (st *Store) Import(entities []Entity) (int, error) {
	inserted := 0
	for _, e := range entities {
		if e.ID != "" {
			if _, err := st.Get(e.ID); err == nil {
				continue
			}
		}
		if _, err := st.Add(e); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
