package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/typerally/typerally/internal/model"
)

// Series is a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight = 10
	minPlotWidth      = 10
	axisLabelWidth    = 4
	axisSeparator     = " │ "
	fallbackTermWidth = 80
	colorReset        = "\x1b[0m"
)

var plotColors = []string{
	"\x1b[36m", // cyan
	"\x1b[35m", // magenta
	"\x1b[33m", // yellow
	"\x1b[32m", // green
}

// RenderCurves plots WPM and accuracy learning curves for races.
func RenderCurves(w io.Writer, races []model.RaceRecord, window, totalWidth, height int, useColor bool) error {
	if len(races) == 0 {
		return nil
	}
	wpms := MovingAverage(WPMSeries(races), window)
	accs := MovingAverage(AccuracySeries(races), window)
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeries(w, "Learning Curves", []Series{
		{Name: "WPM", Values: wpms},
		{Name: "Accuracy", Values: accs},
	}, width, height, useColor)
}

// PlotSeries renders a braille line plot, one color per series. Each
// series is scaled to its own min/max; the ranges are printed above the
// plot.
func PlotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	plotted := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			plotted = append(plotted, s)
		}
	}
	if len(plotted) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	grids := make([]*brailleGrid, len(plotted))
	ranges := make([][2]float64, len(plotted))
	for i, s := range plotted {
		grids[i] = newBrailleGrid(width, height)
		values := resample(s.Values, width)
		lo, hi := minMax(values)
		if math.Abs(hi-lo) < 1e-9 {
			lo--
			hi++
		}
		ranges[i] = [2]float64{lo, hi}
		grids[i].plotLine(values, lo, hi)
	}

	color := useColor(w, forceColor)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, s := range plotted {
		if _, err := fmt.Fprintf(w, "%s: min=%.1f max=%.1f\n", s.Name, ranges[i][0], ranges[i][1]); err != nil {
			return err
		}
	}
	labels := axisLabels(height)
	for y := 0; y < height; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", axisLabelWidth, labels[y], axisSeparator)
		for x := 0; x < width; x++ {
			mask, owner := composeCell(grids, x, y)
			ch := rune(0x2800 + int(mask))
			if color && owner >= 0 {
				row.WriteString(plotColors[owner%len(plotColors)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, legend(plotted, color)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	width := totalWidth - axisLabelWidth - utf8.RuneCountInString(axisSeparator)
	if width < minPlotWidth {
		return minPlotWidth
	}
	return width
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

func useColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func axisLabels(height int) []string {
	labels := make([]string, height)
	if height == 0 {
		return labels
	}
	labels[0] = "max"
	if height > 1 {
		labels[height-1] = "min"
	}
	return labels
}

func legend(series []Series, color bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := "⠁ " + s.Name
		if color {
			label = plotColors[i%len(plotColors)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// brailleGrid maps a width×height cell grid onto 2×4 braille dots.
type brailleGrid struct {
	width  int
	height int
	cells  []uint8
}

func newBrailleGrid(width, height int) *brailleGrid {
	return &brailleGrid{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
	}
}

var brailleDots = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func (g *brailleGrid) set(x, y int) {
	cx, cy := x/2, y/4
	if cx < 0 || cx >= g.width || cy < 0 || cy >= g.height {
		return
	}
	g.cells[cy*g.width+cx] |= brailleDots[y%4][x%2]
}

func (g *brailleGrid) at(x, y int) uint8 {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0
	}
	return g.cells[y*g.width+x]
}

// plotLine draws the series as a connected line in dot coordinates.
func (g *brailleGrid) plotLine(values []float64, lo, hi float64) {
	dotHeight := g.height * 4
	prevX, prevY := -1, -1
	for i, v := range values {
		pos := (v - lo) / (hi - lo)
		y := int(math.Round((1 - pos) * float64(dotHeight-1)))
		if y < 0 {
			y = 0
		}
		if y >= dotHeight {
			y = dotHeight - 1
		}
		x := i * 2
		if prevX >= 0 {
			g.line(prevX, prevY, x, y)
		} else {
			g.set(x, y)
		}
		prevX, prevY = x, y
	}
}

// line is Bresenham in dot coordinates.
func (g *brailleGrid) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy
	for {
		g.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

func composeCell(grids []*brailleGrid, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, g := range grids {
		cell := g.at(x, y)
		if cell == 0 {
			continue
		}
		if owner == -1 {
			owner = i
		}
		mask |= cell
	}
	return mask, owner
}

// resample stretches or shrinks values to exactly width points.
func resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	if len(values) == width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	if len(values) > width {
		// Downsample by averaging buckets.
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			if end > len(values) {
				end = len(values)
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	if len(values) == 1 || width == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	// Upsample with linear interpolation.
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(pos)
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

func minMax(values []float64) (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if math.IsInf(lo, 1) {
		lo = 0
	}
	if math.IsInf(hi, -1) {
		hi = 0
	}
	return lo, hi
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
