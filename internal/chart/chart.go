// Package chart renders wrist-temperature entries as a colour-coded point
// chart, a compact sparkline, and a date timeline. Points at or above the
// 36 °C threshold are drawn warm, the rest cool.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/wristtemp/internal/temperature"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	colorCool  = lipgloss.Color("75")  // blue
	colorWarm  = lipgloss.Color("208") // orange
	colorDim   = lipgloss.Color("236")
	colorTick  = lipgloss.Color("239")
	colorAxis  = lipgloss.Color("243")
	colorGuide = lipgloss.Color("238")
)

// TempColor returns the point colour for a temperature.
func TempColor(v float64) lipgloss.Color {
	if v >= temperature.Threshold {
		return colorWarm
	}
	return colorCool
}

func level(v, rangeMin, rangeMax float64, steps int) int {
	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}
	norm := (v - rangeMin) / span
	norm = math.Max(0, math.Min(1, norm))
	idx := int(math.Round(norm * float64(steps-1)))
	if idx > steps-1 {
		idx = steps - 1
	}
	return idx
}

// window keeps the most recent width entries.
func window(entries []temperature.Entry, width int) []temperature.Entry {
	if len(entries) > width {
		return entries[len(entries)-width:]
	}
	return entries
}

// RenderSparkline renders one block per entry, oldest on the left.
// Entries must be in chronological order.
func RenderSparkline(entries []temperature.Entry, width int, rangeMin, rangeMax float64) string {
	if width <= 0 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(colorDim)
	if len(entries) == 0 {
		return dim.Render(strings.Repeat("╌", width))
	}

	entries = window(entries, width)

	var sb strings.Builder
	for i := 0; i < width-len(entries); i++ {
		sb.WriteString(dim.Render("╌"))
	}
	for _, e := range entries {
		idx := level(e.Temperature, rangeMin, rangeMax, len(sparkBlocks))
		style := lipgloss.NewStyle().Foreground(TempColor(e.Temperature))
		sb.WriteString(style.Render(string(sparkBlocks[idx])))
	}
	return sb.String()
}

// RenderChart renders a point chart of height rows with a value axis on
// the left. A dotted guide marks the threshold when it falls inside the
// range. Entries must be in chronological order.
func RenderChart(entries []temperature.Entry, width, height int, rangeMin, rangeMax float64) []string {
	const axisW = 7
	if height < 2 {
		height = 2
	}
	plotW := width - axisW
	if plotW <= 0 {
		return nil
	}

	entries = window(entries, plotW)
	offset := plotW - len(entries)

	grid := make([][]string, height)
	guide := lipgloss.NewStyle().Foreground(colorGuide).Render("·")
	threshRow := -1
	if temperature.Threshold >= rangeMin && temperature.Threshold <= rangeMax {
		threshRow = height - 1 - level(temperature.Threshold, rangeMin, rangeMax, height)
	}
	for r := range grid {
		grid[r] = make([]string, plotW)
		for c := range grid[r] {
			if r == threshRow {
				grid[r][c] = guide
			} else {
				grid[r][c] = " "
			}
		}
	}

	for i, e := range entries {
		row := height - 1 - level(e.Temperature, rangeMin, rangeMax, height)
		style := lipgloss.NewStyle().Foreground(TempColor(e.Temperature)).Bold(true)
		grid[row][offset+i] = style.Render("●")
	}

	axis := lipgloss.NewStyle().Foreground(colorAxis)
	frame := lipgloss.NewStyle().Foreground(colorTick).Render("│")
	rows := make([]string, height)
	for r := range grid {
		label := strings.Repeat(" ", axisW-1)
		switch r {
		case 0:
			label = fmt.Sprintf("%5.1f°", rangeMax)
		case height - 1:
			label = fmt.Sprintf("%5.1f°", rangeMin)
		case threshRow:
			label = fmt.Sprintf("%5.1f°", temperature.Threshold)
		}
		rows[r] = axis.Render(label) + frame + strings.Join(grid[r], "")
	}
	return rows
}

// RenderTimeline renders date labels under a chart of the same width,
// one label at each month change. Entries must be in chronological order.
func RenderTimeline(entries []temperature.Entry, width int) string {
	if len(entries) == 0 || width <= 0 {
		return ""
	}

	entries = window(entries, width)
	padLen := width - len(entries)

	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}

	type tick struct {
		pos   int
		label string
	}
	var ticks []tick

	for i, e := range entries {
		if e.StartDate.IsZero() {
			continue
		}
		switch {
		case i == 0:
			ticks = append(ticks, tick{pos: padLen, label: e.StartDate.Format("Jan 2")})
		case e.StartDate.Month() != entries[i-1].StartDate.Month():
			ticks = append(ticks, tick{pos: padLen + i, label: e.StartDate.Format("Jan")})
		}
	}

	lastEnd := -1
	for _, t := range ticks {
		start := t.pos
		end := start + len(t.label)
		if end > width {
			continue
		}
		if start <= lastEnd+1 && lastEnd >= 0 {
			continue
		}
		for j, ch := range t.label {
			line[start+j] = ch
		}
		lastEnd = end
	}

	return lipgloss.NewStyle().Foreground(colorTick).Render(string(line))
}

// RenderTempValue renders a temperature with colour coding.
func RenderTempValue(temp float64) string {
	s := fmt.Sprintf("%5.2f°C", temp)
	return lipgloss.NewStyle().Foreground(TempColor(temp)).Render(s)
}
