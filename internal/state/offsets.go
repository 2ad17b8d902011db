package state

import (
	"database/sql"
	"time"

	"lyrview/internal/db"
	"lyrview/internal/lyrics"
)

// GetOffset returns the persisted sync offset for a track, or zero when none
// has been saved. A pending (not yet flushed) write wins over the database.
func (m *Manager) GetOffset(path string) (lyrics.Offset, error) {
	m.saveMu.Lock()
	if ms, ok := m.pending[path]; ok {
		m.saveMu.Unlock()
		return lyrics.OffsetFromMilliseconds(ms), nil
	}
	m.saveMu.Unlock()

	var ms int64
	row := m.db.QueryRow(`SELECT offset_ms FROM lyric_offsets WHERE path = ?`, path)
	err := row.Scan(&ms)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return lyrics.OffsetFromMilliseconds(ms), nil
}

// SaveOffset schedules a debounced write of the track's sync offset.
func (m *Manager) SaveOffset(path string, offset lyrics.Offset) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending[path] = offset.Milliseconds()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = make(map[string]int64)
		m.saveMu.Unlock()

		if len(pending) > 0 {
			_ = saveOffsets(m.db, pending)
		}
	})
}

// saveOffsets writes a batch of offsets in one transaction. Offsets reset to
// zero are deleted rather than stored.
func saveOffsets(sqldb *sql.DB, offsets map[string]int64) error {
	return db.WithTx(sqldb, func(tx *sql.Tx) error {
		now := time.Now().Unix()
		for path, ms := range offsets {
			if ms == 0 {
				if _, err := tx.Exec(`DELETE FROM lyric_offsets WHERE path = ?`, path); err != nil {
					return err
				}
				continue
			}
			_, err := tx.Exec(`
				INSERT INTO lyric_offsets (path, offset_ms, updated_at)
				VALUES (?, ?, ?)
				ON CONFLICT(path) DO UPDATE SET
					offset_ms = excluded.offset_ms,
					updated_at = excluded.updated_at
			`, path, ms, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetLastTrack returns the path of the last viewed track, or empty string.
func (m *Manager) GetLastTrack() (string, error) {
	var path sql.NullString
	row := m.db.QueryRow(`SELECT last_track FROM session_state WHERE id = 1`)
	err := row.Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !path.Valid {
		return "", nil
	}
	return path.String, nil
}

// SaveLastTrack persists the path of the currently viewed track.
func (m *Manager) SaveLastTrack(path string) error {
	_, err := m.db.Exec(`
		INSERT INTO session_state (id, last_track)
		VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET last_track = excluded.last_track
	`, path)
	return err
}
