package persist

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the profiles database. Profiles are stored as JSON documents
// keyed by id; the schema stays trivial on purpose, every read and write
// moves a whole profile.
type Store struct {
	db *sql.DB
}

const createProfiles = `
CREATE TABLE IF NOT EXISTS profiles (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	data       TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open profile db: %w", err)
	}
	// The simulation loop is the only writer; a second connection would just
	// contend on SQLite's file lock.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createProfiles); err != nil {
		db.Close()
		return nil, fmt.Errorf("create profiles table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load fetches one profile by id. The second return is false when no row
// exists.
func (s *Store) Load(id string) (Profile, bool, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM profiles WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, fmt.Errorf("load profile %s: %w", id, err)
	}
	var profile Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return Profile{}, false, fmt.Errorf("decode profile %s: %w", id, err)
	}
	return profile, true, nil
}

// SaveAll upserts every given profile in one transaction, so a crash between
// writes never leaves a partially saved batch.
func (s *Store) SaveAll(profiles []Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin profile save: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO profiles (id, name, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data, updated_at = excluded.updated_at`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare profile save: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range profiles {
		profiles[i].UpdatedAt = now
		data, err := json.Marshal(profiles[i])
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("encode profile %s: %w", profiles[i].ID, err)
		}
		if _, err := stmt.Exec(profiles[i].ID, profiles[i].Name, string(data), now.Format(time.RFC3339)); err != nil {
			tx.Rollback()
			return fmt.Errorf("save profile %s: %w", profiles[i].ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit profile save: %w", err)
	}
	return nil
}
