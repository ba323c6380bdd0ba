// Package store handles SQLite persistence for race history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/typerally/typerally/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for race records.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS races (
			id INTEGER PRIMARY KEY,
			finished_at TEXT NOT NULL,
			player TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			won INTEGER NOT NULL,
			score INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			words_completed INTEGER NOT NULL,
			chars_typed INTEGER NOT NULL,
			chars_correct INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_races_finished_at ON races(finished_at);`,
		`CREATE INDEX IF NOT EXISTS idx_races_score ON races(score DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRace stores a finished race.
func (s *Store) InsertRace(ctx context.Context, rec model.RaceRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO races (finished_at, player, difficulty, won, score, wpm, accuracy, words_completed, chars_typed, chars_correct, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.FinishedAt.Format(time.RFC3339Nano),
		rec.Player,
		rec.Difficulty,
		boolToInt(rec.Won),
		rec.Score,
		rec.WPM,
		rec.Accuracy,
		rec.WordsCompleted,
		rec.CharsTyped,
		rec.CharsCorrect,
		rec.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRaces returns race history oldest first, filtered by stats config.
func (s *Store) ListRaces(ctx context.Context, cfg model.StatsConfig) ([]model.RaceRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Difficulty != "" {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, cfg.Difficulty)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "finished_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, finished_at, player, difficulty, won, score, wpm, accuracy, words_completed, chars_typed, chars_correct, duration_ms
		FROM races
		WHERE %s
		ORDER BY finished_at ASC`, strings.Join(clauses, " AND "))
	races, err := s.queryRaces(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(races) > cfg.Last {
		races = races[len(races)-cfg.Last:]
	}
	return races, nil
}

// TopScores returns the highest-scoring races for the leaderboard.
func (s *Store) TopScores(ctx context.Context, filter model.ScoreFilter) ([]model.RaceRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Difficulty != "" {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, filter.Difficulty)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT id, finished_at, player, difficulty, won, score, wpm, accuracy, words_completed, chars_typed, chars_correct, duration_ms
		FROM races
		WHERE %s
		ORDER BY score DESC, finished_at ASC
		LIMIT ?`, strings.Join(clauses, " AND "))
	return s.queryRaces(ctx, query, args...)
}

func (s *Store) queryRaces(ctx context.Context, query string, args ...any) ([]model.RaceRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var races []model.RaceRecord
	for rows.Next() {
		var rec model.RaceRecord
		var finishedAt string
		var won int
		if err := rows.Scan(&rec.ID, &finishedAt, &rec.Player, &rec.Difficulty, &won, &rec.Score, &rec.WPM, &rec.Accuracy, &rec.WordsCompleted, &rec.CharsTyped, &rec.CharsCorrect, &rec.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, err
		}
		rec.FinishedAt = parsed
		rec.Won = won != 0
		races = append(races, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return races, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
