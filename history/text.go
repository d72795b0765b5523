package history

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/poundbot/gamewatch/types"
)

const (
	textBuckets   = 10
	textTolerance = time.Minute
	maxYStep      = 10
	maxTextRows   = 10

	barFull  = "█"
	barEmpty = " "
)

// YStep is the row height of the text chart: the smallest integer in
// [ceil(max/10), 10) that divides max, else 10.
func YStep(max int) int {
	if max <= 0 {
		max = 1
	}
	lo := (max + maxYStep - 1) / maxYStep
	if lo < 1 {
		lo = 1
	}
	for step := lo; step < maxYStep; step++ {
		if max%step == 0 {
			return step
		}
	}
	return maxYStep
}

// Buckets samples the history at textBuckets evenly spaced points ending at
// now. Each point takes the nearest sample within a minute, else 0.
func Buckets(samples []types.HistoricSample, now time.Time, window time.Duration) []int {
	if window <= 0 {
		window = DefaultTextWindow
	}
	step := window / (textBuckets - 1)

	values := make([]int, textBuckets)
	for i := range values {
		at := now.Add(-time.Duration(textBuckets-1-i) * step)

		best := textTolerance + 1
		for _, s := range samples {
			d := s.At.Sub(at)
			if d < 0 {
				d = -d
			}
			if d <= textTolerance && d < best {
				best = d
				values[i] = s.Players
			}
		}
	}
	return values
}

// textStep is YStep widened so the chart never has more than maxTextRows
// rows.
func textStep(max int) int {
	step := YStep(max)
	if (max+step-1)/step > maxTextRows {
		step = (max + maxTextRows - 1) / maxTextRows
	}
	return step
}

// RenderText draws the trailing window of samples as a bar chart made of
// block and box-drawing characters, highest row first. A column is filled up
// to its bucket value rounded to the row step.
func RenderText(samples []types.HistoricSample, now time.Time, max int, window time.Duration) string {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = DefaultTextWindow
	}
	values := Buckets(Prune(samples, now.Add(-window)), now, window)
	step := textStep(max)
	rows := (max + step - 1) / step
	width := len(fmt.Sprint(rows * step))

	heights := make([]int, len(values))
	for i, v := range values {
		heights[i] = int(math.Round(float64(v) / float64(step)))
	}

	var sb strings.Builder
	for row := rows; row >= 1; row-- {
		level := row * step
		fmt.Fprintf(&sb, "%*d┤", width, level)
		for _, h := range heights {
			if h >= row {
				sb.WriteString(barFull)
			} else {
				sb.WriteString(barEmpty)
			}
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "%*d└%s\n", width, 0, strings.Repeat("─", textBuckets))

	left := fmt.Sprintf("-%dm", int(window.Minutes()))
	gap := textBuckets + 1 - len(left) - len("now")
	if gap < 1 {
		gap = 1
	}
	fmt.Fprintf(&sb, "%s%s%s%s", strings.Repeat(" ", width), left, strings.Repeat(" ", gap), "now")
	return sb.String()
}
