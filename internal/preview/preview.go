// Package preview summarizes a mode offline: how many bulbs are lit on each
// tick of one animation cycle, drawn as an ASCII chart.
package preview

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/garland/internal/garland"
)

// Cycle is the number of ticks after which m repeats for n bulbs. Random
// modes have no period; they get 2n ticks like Filling.
func Cycle(m garland.Mode, n int) int {
	switch m {
	case garland.Static:
		return 1
	case garland.BlinkAll, garland.OddEven:
		return 2
	case garland.Blinking:
		return 8
	case garland.Running, garland.Flipping:
		return n
	default:
		return 2 * n
	}
}

// LitCounts runs m for ticks frames and counts lit bulbs per frame.
func LitCounts(m garland.Mode, base []garland.Color, p garland.Palette, r garland.Random, ticks int) []float64 {
	out := make([]float64, ticks)
	for tick := 0; tick < ticks; tick++ {
		lit := 0
		for _, b := range m.Generate(tick, base, p, r) {
			if b.Lit {
				lit++
			}
		}
		out[tick] = float64(lit)
	}
	return out
}

// Plot charts lit counts for one cycle of m (at least two ticks so the
// chart has a line).
func Plot(m garland.Mode, base []garland.Color, p garland.Palette, r garland.Random) string {
	ticks := Cycle(m, len(base))
	if ticks < 2 {
		ticks = 2
	}
	data := LitCounts(m, base, p, r, ticks)

	return asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(float64(len(base))),
		asciigraph.Caption(fmt.Sprintf("%s: lit bulbs per tick (%d bulbs, %s/frame)", m.Name(), len(base), m.Delay())),
	)
}
