package stats

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/typerally/typerally/internal/model"
)

// Column describes one table column.
type Column struct {
	Title string
	Right bool
}

// RenderSummary prints an aggregate summary for races.
func RenderSummary(w io.Writer, races []model.RaceRecord) error {
	if len(races) == 0 {
		_, err := fmt.Fprintln(w, "No races found.")
		return err
	}
	sum := Summarize(races)
	lines := []string{
		"Summary",
		fmt.Sprintf("Races: %d (won %d)", sum.Races, sum.Wins),
		fmt.Sprintf("Best score: %d", sum.BestScore),
		fmt.Sprintf("Avg score: %.1f", sum.AvgScore),
		fmt.Sprintf("Best WPM: %d", sum.BestWPM),
		fmt.Sprintf("Avg WPM: %.1f", sum.AvgWPM),
		fmt.Sprintf("Avg accuracy: %.1f%%", sum.AvgAccuracy),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderLeaderboard prints the top-score table.
func RenderLeaderboard(w io.Writer, races []model.RaceRecord) error {
	if len(races) == 0 {
		_, err := fmt.Fprintln(w, "No scores yet. Play a race first.")
		return err
	}
	cols := []Column{
		{Title: "#", Right: true},
		{Title: "Player"},
		{Title: "Score", Right: true},
		{Title: "WPM", Right: true},
		{Title: "Accuracy", Right: true},
		{Title: "Difficulty"},
		{Title: "Date"},
	}
	rows := make([][]string, 0, len(races))
	for i, r := range races {
		rows = append(rows, LeaderboardRow(i+1, r))
	}
	for _, line := range FormatTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// LeaderboardRow formats one leaderboard entry.
func LeaderboardRow(rank int, r model.RaceRecord) []string {
	player := r.Player
	if player == "" {
		player = "anonymous"
	}
	return []string{
		fmt.Sprintf("%d", rank),
		player,
		fmt.Sprintf("%d", r.Score),
		fmt.Sprintf("%d", r.WPM),
		fmt.Sprintf("%d%%", r.Accuracy),
		r.Difficulty,
		r.FinishedAt.Format("2006-01-02"),
	}
}

// RenderHistory prints race history, most recent last.
func RenderHistory(w io.Writer, races []model.RaceRecord) error {
	if len(races) == 0 {
		_, err := fmt.Fprintln(w, "No races found.")
		return err
	}
	cols := []Column{
		{Title: "Date"},
		{Title: "Difficulty"},
		{Title: "Result"},
		{Title: "Score", Right: true},
		{Title: "WPM", Right: true},
		{Title: "Accuracy", Right: true},
		{Title: "Words", Right: true},
	}
	rows := make([][]string, 0, len(races))
	for _, r := range races {
		result := "lost"
		if r.Won {
			result = "won"
		}
		rows = append(rows, []string{
			r.FinishedAt.Format("2006-01-02 15:04"),
			r.Difficulty,
			result,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%d", r.WordsCompleted),
		})
	}
	for _, line := range FormatTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatTable lays out rows under column titles, padded to the widest cell.
func FormatTable(cols []Column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = utf8.RuneCountInString(col.Title)
	}
	for _, row := range rows {
		for i := 0; i < len(cols) && i < len(row); i++ {
			if w := utf8.RuneCountInString(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Title
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(cols, widths, header))
	for _, row := range rows {
		lines = append(lines, formatRow(cols, widths, row))
	}
	return lines
}

func formatRow(cols []Column, widths []int, row []string) string {
	var b strings.Builder
	for i := range cols {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		pad := widths[i] - utf8.RuneCountInString(cell)
		if pad < 0 {
			pad = 0
		}
		if cols[i].Right {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
		} else {
			b.WriteString(cell)
			if i < len(cols)-1 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
	}
	return b.String()
}
