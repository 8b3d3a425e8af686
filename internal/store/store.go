// Package store persists match results and server settings in SQLite.
package store

import (
	"database/sql"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// MatchRow represents a completed match
type MatchRow struct {
	ID        int64
	HomeName  string
	AwayName  string
	HomeScore int
	AwayScore int
	Overtime  bool
	Duration  float64 // seconds of game time
	CreatedAt time.Time
}

// PlayerLineRow is one player's stat line in a match
type PlayerLineRow struct {
	MatchID     int64
	PlayerID    string
	Name        string
	Team        string
	Goals       int
	Assists     int
	Shots       int
	FaceoffWins int
	PenaltyMin  int
}

// Open opens (or creates) the SQLite database
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		home_name TEXT NOT NULL DEFAULT '',
		away_name TEXT NOT NULL DEFAULT '',
		home_score INTEGER NOT NULL DEFAULT 0,
		away_score INTEGER NOT NULL DEFAULT 0,
		overtime INTEGER NOT NULL DEFAULT 0,
		duration REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS match_players (
		match_id INTEGER NOT NULL REFERENCES matches(id),
		player_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		team TEXT NOT NULL DEFAULT '',
		goals INTEGER NOT NULL DEFAULT 0,
		assists INTEGER NOT NULL DEFAULT 0,
		shots INTEGER NOT NULL DEFAULT 0,
		faceoff_wins INTEGER NOT NULL DEFAULT 0,
		penalty_min INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (match_id, player_id)
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_match_players_match ON match_players(match_id);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
	}
	return err
}

// SaveMatch records a finished match and returns its ID
func (db *DB) SaveMatch(m MatchRow) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO matches (home_name, away_name, home_score, away_score, overtime, duration) VALUES (?, ?, ?, ?, ?, ?)",
		m.HomeName, m.AwayName, m.HomeScore, m.AwayScore, boolToInt(m.Overtime), m.Duration,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SavePlayerLine records one player's stat line for a match
func (db *DB) SavePlayerLine(l PlayerLineRow) error {
	_, err := db.conn.Exec(
		"INSERT INTO match_players (match_id, player_id, name, team, goals, assists, shots, faceoff_wins, penalty_min) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		l.MatchID, l.PlayerID, l.Name, l.Team, l.Goals, l.Assists, l.Shots, l.FaceoffWins, l.PenaltyMin,
	)
	return err
}

// RecentMatches returns the most recent matches, newest first
func (db *DB) RecentMatches(limit int) ([]MatchRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(
		"SELECT id, home_name, away_name, home_score, away_score, overtime, duration, created_at FROM matches ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MatchRow{}
	for rows.Next() {
		var m MatchRow
		var ot int
		if err := rows.Scan(&m.ID, &m.HomeName, &m.AwayName, &m.HomeScore, &m.AwayScore, &ot, &m.Duration, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Overtime = ot != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

// PlayerLines returns the stat lines for a match
func (db *DB) PlayerLines(matchID int64) ([]PlayerLineRow, error) {
	rows, err := db.conn.Query(
		"SELECT match_id, player_id, name, team, goals, assists, shots, faceoff_wins, penalty_min FROM match_players WHERE match_id = ? ORDER BY goals DESC, assists DESC",
		matchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PlayerLineRow{}
	for rows.Next() {
		var l PlayerLineRow
		if err := rows.Scan(&l.MatchID, &l.PlayerID, &l.Name, &l.Team, &l.Goals, &l.Assists, &l.Shots, &l.FaceoffWins, &l.PenaltyMin); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// GetSetting returns a setting value, or "" if not set
func (db *DB) GetSetting(key string) string {
	var value string
	err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

// SetSetting stores a setting value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
