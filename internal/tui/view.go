package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/typerally/typerally/internal/race"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	hudStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	wonStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E06C")).Bold(true)
	lostStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	flashPanelStyle = panelStyle.
			BorderForeground(lipgloss.Color("#95E06C"))
	pausePanelStyle = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
)

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.session.State() {
	case race.StatePlaying:
		content = m.viewGame()
	case race.StatePaused:
		content = m.viewPaused()
	case race.StateFinished:
		content = m.viewResults()
	default:
		content = m.viewMenu()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewMenu() string {
	lines := []string{
		titleStyle.Render("T Y P E R A L L Y"),
		subtitleStyle.Render("type fast, drive faster"),
		"",
	}
	for i, d := range difficulties {
		settings := race.SettingsFor(d)
		label := fmt.Sprintf("%d. %-6s  %2.0fs", i+1, d, settings.TimeLimit.Seconds())
		if i == m.menuIndex {
			lines = append(lines, selectedStyle.Render("> "+label))
		} else {
			lines = append(lines, hudStyle.Render("  "+label))
		}
	}
	lines = append(lines, "", helpStyle.Render("up/down select · enter start · q quit"))
	if m.errMsg != "" {
		lines = append(lines, "", errorStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) trackWidth() int {
	width := m.width - 8
	if width > 60 {
		width = 60
	}
	if width < 20 {
		width = 20
	}
	return width
}

func (m *Model) viewGame() string {
	snap := m.session.Snapshot()
	trackWidth := m.trackWidth()

	hud := hudStyle.Render(fmt.Sprintf(
		"Score %d · WPM %d · Accuracy %d%% · Combo %d · Words %d · Time %.0fs",
		snap.Stats.Score,
		snap.Stats.WPM,
		snap.Stats.Accuracy,
		snap.Stats.Combo,
		snap.Stats.WordsCompleted,
		snap.Stats.TimeRemaining,
	))

	panel := panelStyle
	if m.flashTicks > 0 {
		panel = flashPanelStyle
	}
	word := panel.Render(renderWord(snap.Word, snap.Typed))

	lines := []string{hud, ""}
	lines = append(lines, renderParticleOverlay(trackWidth, m.fx.Live())...)
	lines = append(lines, renderTrack(trackWidth, m.displayProgress), "", word, "")
	lines = append(lines, helpStyle.Render("esc pause"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewPaused() string {
	overlay := pausePanelStyle.Render(strings.Join([]string{
		titleStyle.Render("PAUSED"),
		"",
		helpStyle.Render("space resume · esc abandon"),
	}, "\n"))
	return m.viewGame() + "\n\n" + overlay
}

func (m *Model) viewResults() string {
	snap := m.session.Snapshot()

	headline := lostStyle.Render("TIME'S UP")
	if snap.Won {
		headline = wonStyle.Render("🏆 VICTORY")
	}
	lines := []string{
		headline,
		"",
		hudStyle.Render(fmt.Sprintf("Score     %d", snap.Stats.Score)),
		hudStyle.Render(fmt.Sprintf("WPM       %d", snap.Stats.WPM)),
		hudStyle.Render(fmt.Sprintf("Accuracy  %d%%", snap.Stats.Accuracy)),
		hudStyle.Render(fmt.Sprintf("Words     %d", snap.Stats.WordsCompleted)),
		"",
	}
	if m.nameMode {
		lines = append(lines,
			m.nameInput.View(),
			helpStyle.Render("enter save score · esc skip"),
		)
	} else {
		lines = append(lines, helpStyle.Render("r race again · m menu · q quit"))
	}
	if m.saveErr != "" {
		lines = append(lines, "", errorStyle.Render(m.saveErr))
	}
	if m.errMsg != "" {
		lines = append(lines, "", errorStyle.Render(m.errMsg))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
