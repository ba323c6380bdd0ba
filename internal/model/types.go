// Package model defines shared data structures.
package model

import "time"

// Config defines gameplay settings resolved from flags and the config file.
type Config struct {
	Difficulty string
	Sound      bool
	TickMs     int
	Player     string
	WordList   string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Difficulty  string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// ScoreFilter selects leaderboard entries.
type ScoreFilter struct {
	Difficulty string
	Limit      int
}

// RaceRecord captures a finished race for history and the leaderboard.
type RaceRecord struct {
	ID             int64
	FinishedAt     time.Time
	Player         string
	Difficulty     string
	Won            bool
	Score          int
	WPM            int
	Accuracy       int
	WordsCompleted int
	CharsTyped     int
	CharsCorrect   int
	DurationMs     int64
}
