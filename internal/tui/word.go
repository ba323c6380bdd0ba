package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E06C"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E06C")).Bold(true)
)

// renderWord styles the target word: the typed prefix, the character
// under the cursor, and the untyped rest. The buffer only ever holds
// matched characters, so the prefix is always the correct one.
func renderWord(word, typed string) string {
	wordRunes := []rune(word)
	typedRunes := []rune(typed)

	var b strings.Builder
	for i, r := range wordRunes {
		switch {
		case i < len(typedRunes):
			b.WriteString(correctStyle.Render(string(typedRunes[i])))
		case i == len(typedRunes):
			b.WriteString(cursorStyle.Render(string(r)))
		default:
			b.WriteString(pendingStyle.Render(string(r)))
		}
	}
	return b.String()
}
