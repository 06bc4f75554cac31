// Package catalog implements the SQLite-backed session catalog: the
// persistent record of capture sessions the gallery lists and resolves
// models from.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/voxel-foundry/orbitcap/pkg/types"
)

// dbFileName is the catalog database file under the data directory.
const dbFileName = "sessions.db"

// schemaSQL is the catalog DDL. Creation is idempotent; the catalog
// persists across runs.
const schemaSQL = `CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    root_dir TEXT NOT NULL,
    state TEXT NOT NULL,
    capture_mode TEXT NOT NULL,
    shot_count INTEGER NOT NULL,
    model_path TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

// Catalog provides session record storage. Attach before use, Detach when
// done.
type Catalog struct {
	mu       sync.RWMutex
	attached bool
	db       *sql.DB
}

// New creates a new catalog instance. The catalog is not attached; call
// Attach with a data directory to initialize.
func New() *Catalog {
	return &Catalog{}
}

// Attach opens (creating if necessary) the catalog database under
// dataDir. Returns ErrAlreadyAttached if called while attached.
func (c *Catalog) Attach(dataDir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attached {
		return types.ErrAlreadyAttached
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("open catalog database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("initialize catalog schema: %w", err)
	}

	c.db = db
	c.attached = true
	return nil
}

// Detach releases the database handle. Idempotent: multiple calls
// succeed. After Detach, operations return ErrCatalogDetached.
func (c *Catalog) Detach() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.attached {
		return nil
	}
	c.attached = false
	err := c.db.Close()
	c.db = nil
	return err
}

// Save creates or updates a session record. When SessionID is empty a
// UUID v7 is generated and CreatedAt is set; UpdatedAt is always bumped.
// Returns the ID actually used.
func (c *Catalog) Save(rec *types.SessionRecord) (string, error) {
	if rec == nil || rec.RootDir == "" {
		return "", types.ErrInvalidData
	}
	if !rec.State.Valid() {
		return "", types.ErrInvalidState
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.attached {
		return "", types.ErrCatalogDetached
	}

	now := time.Now().UTC()
	if rec.SessionID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generating UUID v7: %w", err)
		}
		rec.SessionID = id.String()
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	var exists bool
	err := c.db.QueryRow(
		"SELECT 1 FROM sessions WHERE session_id = ?", rec.SessionID,
	).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("checking session existence: %w", err)
	}

	if exists {
		_, err = c.db.Exec(
			`UPDATE sessions SET root_dir = ?, state = ?, capture_mode = ?,
			 shot_count = ?, model_path = ?, updated_at = ? WHERE session_id = ?`,
			rec.RootDir, string(rec.State), string(rec.CaptureMode),
			rec.ShotCount, rec.ModelPath, rec.UpdatedAt.Format(time.RFC3339), rec.SessionID,
		)
	} else {
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		_, err = c.db.Exec(
			`INSERT INTO sessions (session_id, root_dir, state, capture_mode,
			 shot_count, model_path, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.SessionID, rec.RootDir, string(rec.State), string(rec.CaptureMode),
			rec.ShotCount, rec.ModelPath,
			rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339),
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting session %s: %w", rec.SessionID, err)
	}
	return rec.SessionID, nil
}

// Get retrieves a session record by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if no record exists.
func (c *Catalog) Get(id string) (*types.SessionRecord, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.attached {
		return nil, types.ErrCatalogDetached
	}

	row := c.db.QueryRow(
		`SELECT session_id, root_dir, state, capture_mode, shot_count,
		 model_path, created_at, updated_at FROM sessions WHERE session_id = ?`, id,
	)
	rec, err := hydrateSession(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting session %s: %w", id, err)
	}
	return rec, nil
}

// List returns all session records, newest first.
func (c *Catalog) List() ([]*types.SessionRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.attached {
		return nil, types.ErrCatalogDetached
	}

	rows, err := c.db.Query(
		`SELECT session_id, root_dir, state, capture_mode, shot_count,
		 model_path, created_at, updated_at FROM sessions ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []*types.SessionRecord
	for rows.Next() {
		rec, err := hydrateSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes the session record with the given ID.
// Returns ErrNotFound if no record exists.
func (c *Catalog) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.attached {
		return types.ErrCatalogDetached
	}

	res, err := c.db.Exec("DELETE FROM sessions WHERE session_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateSession scans one sessions row into a SessionRecord.
func hydrateSession(s scanner) (*types.SessionRecord, error) {
	var rec types.SessionRecord
	var state, mode, createdAt, updatedAt string

	if err := s.Scan(&rec.SessionID, &rec.RootDir, &state, &mode,
		&rec.ShotCount, &rec.ModelPath, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	rec.State = types.ApplicationState(state)
	rec.CaptureMode = types.CaptureMode(mode)

	var err error
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &rec, nil
}
