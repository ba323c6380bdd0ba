package tui

import (
	"strings"
	"testing"

	"github.com/typerally/typerally/internal/particles"
)

func TestRenderWordMarksCursor(t *testing.T) {
	out := renderWord("cat", "c")
	for _, needle := range []string{"c", "a", "t"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("rendered word missing %q: %s", needle, out)
		}
	}
}

func TestRenderWordKeepsTypedCase(t *testing.T) {
	out := renderWord("cat", "C")
	if !strings.Contains(out, "C") {
		t.Fatalf("expected typed character as entered, got %s", out)
	}
}

func TestRenderTrackPositions(t *testing.T) {
	start := renderTrack(20, 0)
	if !strings.HasPrefix(stripSpaces(start), carGlyph) {
		t.Fatalf("expected car at track start: %s", start)
	}
	if !strings.HasSuffix(start, finishGlyph) {
		t.Fatalf("expected finish flag at track end: %s", start)
	}

	end := renderTrack(20, 1)
	if !strings.HasSuffix(end, carGlyph+finishGlyph) {
		t.Fatalf("expected car at the flag: %s", end)
	}

	mid := renderTrack(20, 0.5)
	before := strings.Index(mid, carGlyph)
	if before <= 0 {
		t.Fatalf("expected car in the middle of the track: %s", mid)
	}
	// The road length is constant regardless of car position.
	for _, out := range []string{start, mid, end} {
		if got := strings.Count(out, roadGlyph); got != 16 {
			t.Fatalf("expected 16 road cells, got %d in %s", got, out)
		}
	}
}

func TestRenderTrackClampsProgress(t *testing.T) {
	low := renderTrack(20, -0.5)
	high := renderTrack(20, 1.5)
	if low != renderTrack(20, 0) {
		t.Fatalf("expected negative progress clamped to start")
	}
	if high != renderTrack(20, 1) {
		t.Fatalf("expected excess progress clamped to finish")
	}
}

func TestRenderParticleOverlay(t *testing.T) {
	live := []particles.Particle{
		{Kind: particles.KindCelebration, X: 0.5, Y: 0},
		{Kind: particles.KindVictory, X: 1, Y: -2},
		{Kind: particles.KindError, X: 0, Y: 0},
	}
	rows := renderParticleOverlay(20, live)
	if len(rows) != particleRows {
		t.Fatalf("expected %d rows, got %d", particleRows, len(rows))
	}
	joined := strings.Join(rows, "\n")
	for _, needle := range []string{"✦", "★", "✗"} {
		if !strings.Contains(joined, needle) {
			t.Fatalf("overlay missing %q:\n%s", needle, joined)
		}
	}
	// The celebration particle sits on the bottom row, the lifted victory
	// particle two rows higher.
	if !strings.Contains(rows[particleRows-1], "✦") {
		t.Fatalf("expected celebration on the track row:\n%s", joined)
	}
	if !strings.Contains(rows[0], "★") {
		t.Fatalf("expected victory two rows up:\n%s", joined)
	}
}

func TestRenderParticleOverlayDropsOutOfRange(t *testing.T) {
	live := []particles.Particle{
		{Kind: particles.KindSparkle, X: 2, Y: 0},
		{Kind: particles.KindSparkle, X: 0.5, Y: -10},
	}
	rows := renderParticleOverlay(20, live)
	joined := strings.Join(rows, "")
	if strings.Contains(joined, "·") {
		t.Fatalf("expected out-of-range particles dropped:\n%q", joined)
	}
}

func stripSpaces(s string) string {
	return strings.TrimLeft(s, " ")
}
