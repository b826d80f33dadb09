package view

import (
	"math"
	"strings"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// shareBar draws a horizontal bar width cells wide, filled in proportion to
// pct (0 to 100).
func shareBar(pct float64, width int) (filled, empty string) {
	if width <= 0 {
		return "", ""
	}

	pct = math.Max(0, math.Min(100, pct))
	n := int(math.Round(pct / 100 * float64(width)))

	return strings.Repeat("█", n), strings.Repeat("░", width-n)
}

// sparkline scales values between their minimum and maximum onto eight block
// heights. A flat series sits in the middle.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder

	top := len(sparkRunes) - 1

	for _, v := range values {
		idx := top / 2
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}

		b.WriteRune(sparkRunes[idx])
	}

	return b.String()
}
