// Package race implements the game session engine: state machine,
// keystroke processing, scoring, and the timer-driven stat updates.
package race

import (
	"fmt"
	"strings"
	"time"

	"github.com/typerally/typerally/internal/words"
)

// Difficulty selects a race configuration.
type Difficulty int

// Difficulties.
const (
	Easy Difficulty = iota
	Normal
	Hard
)

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	default:
		return Normal, fmt.Errorf("unknown difficulty %q (easy, normal, hard)", s)
	}
}

// Settings is the fixed configuration a difficulty maps to.
type Settings struct {
	TimeLimit      time.Duration
	CarSpeedFactor float64
	WordDelay      time.Duration
	Vocabulary     []string
}

// SettingsFor returns the configuration for a difficulty. Harder levels
// mix in the easier vocabularies.
func SettingsFor(d Difficulty) Settings {
	switch d {
	case Easy:
		return Settings{
			TimeLimit:      45 * time.Second,
			CarSpeedFactor: 0.8,
			WordDelay:      120 * time.Millisecond,
			Vocabulary:     words.Easy,
		}
	case Hard:
		return Settings{
			TimeLimit:      75 * time.Second,
			CarSpeedFactor: 1.5,
			WordDelay:      80 * time.Millisecond,
			Vocabulary:     concat(words.Easy, words.Normal, words.Hard),
		}
	default:
		return Settings{
			TimeLimit:      60 * time.Second,
			CarSpeedFactor: 1.0,
			WordDelay:      100 * time.Millisecond,
			Vocabulary:     concat(words.Easy, words.Normal),
		}
	}
}

func concat(lists ...[]string) []string {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	out := make([]string, 0, total)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
