package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/typerally/typerally/internal/particles"
)

const (
	carGlyph    = "🚗"
	finishGlyph = "🏁"
	roadGlyph   = "·"

	particleRows = 3
)

var (
	roadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	finishStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDE0FE"))

	celebrationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166"))
	victoryStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166")).Bold(true)
	errorFxStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	sparkleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDE0FE"))
)

// renderTrack draws the road with the car at the given 0..1 progress and
// the finish flag at the end.
func renderTrack(width int, progress float64) string {
	carWidth := runewidth.StringWidth(carGlyph)
	flagWidth := runewidth.StringWidth(finishGlyph)
	road := width - flagWidth
	if road < carWidth {
		road = carWidth
	}
	maxPos := road - carWidth
	pos := int(math.Round(progress * float64(maxPos)))
	if pos < 0 {
		pos = 0
	}
	if pos > maxPos {
		pos = maxPos
	}

	var b strings.Builder
	b.WriteString(roadStyle.Render(strings.Repeat(roadGlyph, pos)))
	b.WriteString(carGlyph)
	b.WriteString(roadStyle.Render(strings.Repeat(roadGlyph, maxPos-pos)))
	b.WriteString(finishStyle.Render(finishGlyph))
	return b.String()
}

// renderParticleOverlay composes the effect rows drawn above the track.
func renderParticleOverlay(width int, live []particles.Particle) []string {
	rows := make([][]rune, particleRows)
	styles := make([][]*lipgloss.Style, particleRows)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", width))
		styles[i] = make([]*lipgloss.Style, width)
	}

	for _, p := range live {
		col := int(math.Round(p.X * float64(width-1)))
		if col < 0 || col >= width {
			continue
		}
		up := int(math.Round(-p.Y))
		if up < 0 {
			up = 0
		}
		row := particleRows - 1 - up
		if row < 0 || row >= particleRows {
			continue
		}
		glyph, style := particleLook(p.Kind)
		rows[row][col] = glyph
		styles[row][col] = style
	}

	out := make([]string, particleRows)
	for i := range rows {
		var b strings.Builder
		for j, r := range rows[i] {
			if styles[i][j] != nil && r != ' ' {
				b.WriteString(styles[i][j].Render(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		out[i] = b.String()
	}
	return out
}

func particleLook(kind particles.Kind) (rune, *lipgloss.Style) {
	switch kind {
	case particles.KindCelebration:
		return '✦', &celebrationStyle
	case particles.KindVictory:
		return '★', &victoryStyle
	case particles.KindError:
		return '✗', &errorFxStyle
	default:
		return '·', &sparkleStyle
	}
}
