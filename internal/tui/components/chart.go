package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/finboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as a one-line unicode sparkline.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := maxOf(values)
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// Series is one colored set of bars in a BarChart.
type Series struct {
	Values []float64
	Color  lipgloss.Color
}

// BarChart renders vertical bars with a y axis and optional x labels.
// Several series are drawn as adjacent bars per slot (income next to
// expense, for instance); all series must have the same length.
func BarChart(series []Series, labels []string, width, height int) string {
	if len(series) == 0 || len(series[0].Values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(series[0].Values, series[0].Color)
	}

	t := theme.Active
	n := len(series[0].Values)
	k := len(series)

	maxVal := 0.0
	for _, s := range series {
		maxVal = math.Max(maxVal, maxOf(s.Values))
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y axis: a round tick step with at most height/2 intervals.
	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)

	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := max(width-yLabelW-1, 5)

	// Each slot holds k bars of barW plus a one-column gap between slots.
	gap := 1
	if n == 1 || n*k+(n-1) > chartW {
		gap = 0
	}
	if n*k > chartW {
		return Sparkline(series[0].Values, series[0].Color)
	}
	barW := (chartW - (n-1)*gap) / (n * k)
	if barW < 1 {
		barW = 1
	}
	if barW > 5 {
		barW = 5
	}
	slotW := barW * k
	axisLen := n*slotW + (n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i := 0; i < n; i++ {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			for _, s := range series {
				v := s.Values[i]
				style := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface)
				switch {
				case v >= rowTop:
					b.WriteString(style.Render(strings.Repeat("█", barW)))
				case v > rowBottom:
					idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
					idx = max(1, min(idx, 8))
					b.WriteString(style.Render(strings.Repeat(string(blocks[idx]), barW)))
				default:
					b.WriteString(blank.Render(strings.Repeat(" ", barW)))
				}
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(placeLabels(labels, slotW, gap, axisLen)))
	}

	return b.String()
}

// placeLabels lays labels under their slots, skipping any that would
// overlap the previous one.
func placeLabels(labels []string, slotW, gap, axisLen int) string {
	buf := []rune(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, lbl := range labels {
		pos := i * (slotW + gap)
		r := []rune(lbl)
		if pos <= lastEnd || pos >= axisLen {
			continue
		}
		end := min(pos+len(r), axisLen)
		copy(buf[pos:end], r[:end-pos])
		lastEnd = end
	}
	return strings.TrimRight(string(buf), " ")
}

// HBar is one row of a horizontal bar list.
type HBar struct {
	Label   string
	Value   float64
	Caption string
}

// HBarList renders labeled horizontal bars scaled to the largest value.
func HBarList(rows []HBar, color lipgloss.Color, width int) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	peak := 0.0
	captionW := 0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r.Label))
		captionW = max(captionW, lipgloss.Width(r.Caption))
		peak = math.Max(peak, r.Value)
	}
	labelW = min(labelW, 18)
	if peak == 0 {
		peak = 1
	}
	barMax := max(width-labelW-captionW-2, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	captionStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		barLen := int(r.Value / peak * float64(barMax))
		barLen = max(0, min(barLen, barMax))
		if barLen == 0 && r.Value > 0 {
			barLen = 1
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(r.Label, labelW))))
		b.WriteString(blank.Render(" "))
		b.WriteString(barStyle.Render(strings.Repeat("█", barLen)))
		b.WriteString(blank.Render(strings.Repeat(" ", barMax-barLen+1)))
		b.WriteString(captionStyle.Render(fmt.Sprintf("%*s", captionW, r.Caption)))
	}
	return b.String()
}

func maxOf(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// chartTickStep picks a 1/2/5 step giving about five ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatChartLabel shortens an axis amount: 1500 -> "1.5k", 2000000 -> "2M".
func formatChartLabel(v float64) string {
	short := func(scaled float64, suffix string) string {
		if scaled == math.Trunc(scaled) {
			return fmt.Sprintf("%.0f%s", scaled, suffix)
		}
		return fmt.Sprintf("%.1f%s", scaled, suffix)
	}
	switch {
	case v >= 1e6:
		return short(v/1e6, "M")
	case v >= 1e3:
		return short(v/1e3, "k")
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
