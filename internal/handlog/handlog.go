// Package handlog journals finished hands to a local sqlite database
// so operators can audit past pots after the rooms are gone.
package handlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cardhouse/holdem/internal/game"
)

// Entry is one finished hand.
type Entry struct {
	RoomID   string        `json:"room_id"`
	HandNum  int           `json:"hand_num"`
	Board    []string      `json:"board"`
	Results  []game.Result `json:"results"`
	PlayedAt time.Time     `json:"played_at"`
}

// Journal appends hand entries to sqlite. A nil Journal discards
// everything, which is how the server runs with journaling disabled.
type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal database at path. The parent
// directory is created if needed; ":memory:" works for tests.
func Open(path string) (*Journal, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty journal database path")
	}
	if path != ":memory:" {
		if parent := filepath.Dir(path); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, stmt := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS hand_journal (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    room_id TEXT NOT NULL,
    hand_num INTEGER NOT NULL,
    board_json TEXT NOT NULL DEFAULT '[]',
    results_json TEXT NOT NULL DEFAULT '[]',
    played_at_ms INTEGER NOT NULL,
    UNIQUE (room_id, hand_num)
)`,
		`CREATE INDEX IF NOT EXISTS idx_hand_journal_room ON hand_journal(room_id, hand_num)`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

// Close releases the underlying database.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends one finished hand. Recording the same room and hand
// number twice overwrites the earlier row.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if j == nil {
		return nil
	}
	if e.RoomID == "" {
		return fmt.Errorf("entry has no room id")
	}
	if e.PlayedAt.IsZero() {
		e.PlayedAt = time.Now().UTC()
	}
	boardRaw, err := json.Marshal(e.Board)
	if err != nil {
		return err
	}
	resultsRaw, err := json.Marshal(e.Results)
	if err != nil {
		return err
	}

	_, err = j.db.ExecContext(ctx, `
INSERT INTO hand_journal (room_id, hand_num, board_json, results_json, played_at_ms)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (room_id, hand_num) DO UPDATE
SET
    board_json = excluded.board_json,
    results_json = excluded.results_json,
    played_at_ms = excluded.played_at_ms
`, e.RoomID, e.HandNum, string(boardRaw), string(resultsRaw), e.PlayedAt.UTC().UnixMilli())
	return err
}

// Recent returns the newest entries for a room, most recent first.
func (j *Journal) Recent(ctx context.Context, roomID string, limit int) ([]Entry, error) {
	if j == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx, `
SELECT room_id, hand_num, board_json, results_json, played_at_ms
FROM hand_journal
WHERE room_id = ?
ORDER BY hand_num DESC
LIMIT ?
`, roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var boardRaw, resultsRaw []byte
		var playedAtMs int64
		if err := rows.Scan(&e.RoomID, &e.HandNum, &boardRaw, &resultsRaw, &playedAtMs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(boardRaw, &e.Board); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(resultsRaw, &e.Results); err != nil {
			return nil, err
		}
		e.PlayedAt = time.UnixMilli(playedAtMs).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
