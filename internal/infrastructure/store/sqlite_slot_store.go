package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteQueryTimeout = 5 * time.Second

// SQLiteSlotStore persists slots in a local SQLite database file
type SQLiteSlotStore struct {
	db *sql.DB
}

// OpenSQLiteSlotStore opens (and creates if needed) the slot database at path
func OpenSQLiteSlotStore(path string) (*SQLiteSlotStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// modernc sqlite serializes writers; a single connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	s := &SQLiteSlotStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSlotStore) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			namespace TEXT NOT NULL,
			slot_key TEXT NOT NULL,
			data BLOB NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (namespace, slot_key)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create slots table: %w", err)
	}
	return nil
}

// Slot returns the slot for namespace/key
func (s *SQLiteSlotStore) Slot(namespace, key string) Slot {
	return SlotFunc{
		LoadFunc: func(ctx context.Context) ([]byte, error) {
			return s.load(ctx, namespace, key)
		},
		SaveFunc: func(ctx context.Context, data []byte) error {
			return s.save(ctx, namespace, key, data)
		},
	}
}

func (s *SQLiteSlotStore) load(ctx context.Context, namespace, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, sqliteQueryTimeout)
	defer cancel()

	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM slots WHERE namespace = ? AND slot_key = ?`,
		namespace, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", slotID(namespace, key), err)
	}
	return data, nil
}

func (s *SQLiteSlotStore) save(ctx context.Context, namespace, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, sqliteQueryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (namespace, slot_key, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (namespace, slot_key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		namespace, key, data, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", slotID(namespace, key), err)
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteSlotStore) Close() error {
	return s.db.Close()
}
