package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Test Plot", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
	}, 5, 4, false)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "A: min=1.0 max=3.0") {
		t.Fatalf("expected series range in output:\n%s", out)
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend in output")
	}
	// Title, 2 range lines, 4 plot rows, legend.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 8 {
		t.Fatalf("expected at least 8 lines of output, got %d", len(lines))
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Empty", []Series{{Name: "A"}}, 5, 4, false)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty series, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-axisLabelWidth-3 {
		t.Fatalf("unexpected plot width: %d", got)
	}
	if got := PlotWidthFor(5); got != minPlotWidth {
		t.Fatalf("expected minimum width, got %d", got)
	}
}

func TestRenderCurves(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCurves(&buf, sampleRaces(), 2, 60, 6, false); err != nil {
		t.Fatalf("render curves: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Learning Curves") {
		t.Fatalf("expected plot title:\n%s", out)
	}
	if !strings.Contains(out, "WPM") || !strings.Contains(out, "Accuracy") {
		t.Fatalf("expected both series:\n%s", out)
	}
}

func TestResample(t *testing.T) {
	down := resample([]float64{1, 2, 3, 4}, 2)
	if len(down) != 2 || down[0] != 1.5 || down[1] != 3.5 {
		t.Fatalf("unexpected downsample: %v", down)
	}
	up := resample([]float64{0, 10}, 3)
	if len(up) != 3 || up[0] != 0 || math.Abs(up[1]-5) > 1e-9 || up[2] != 10 {
		t.Fatalf("unexpected upsample: %v", up)
	}
	if got := resample(nil, 4); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}
