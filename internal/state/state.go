// Package state persists lyrview's per-track sync offsets and session state
// in a SQLite database.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "lyrview"
	dbFileName   = "lyrview.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager owns the state database. Offset writes are debounced so that
// holding a nudge key repeated at tick rate does not hammer the disk.
type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]int64 // track path -> offset ms awaiting flush
}

// Open opens (creating if needed) the state database at the XDG data path.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	return OpenPath(dbPath)
}

// OpenPath opens the database at an explicit path.
func OpenPath(dbPath string) (*Manager, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, pending: make(map[string]int64)}, nil
}

// Close flushes pending offset writes and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = make(map[string]int64)
	m.saveMu.Unlock()

	if len(pending) > 0 {
		_ = saveOffsets(m.db, pending)
	}

	return m.db.Close()
}

// DB exposes the underlying handle.
func (m *Manager) DB() *sql.DB {
	return m.db
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
