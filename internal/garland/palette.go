package garland

// Color is an ANSI color code as accepted by lipgloss ("1" is red).
type Color string

// Palette is the ordered set of colors bulbs are drawn from.
type Palette []Color

// DefaultPalette is the normal and bright ANSI foreground colors without
// black, gray and white.
var DefaultPalette = Palette{
	"1", "2", "3", "4", "5", "6", // red green yellow blue magenta cyan
	"9", "10", "11", "12", "13", "14", // bright variants
}

// Random is the subset of *rand.Rand the generators consume.
type Random interface {
	Intn(n int) int
}

// Pick returns a uniformly chosen palette entry.
func (p Palette) Pick(r Random) Color {
	return p[r.Intn(len(p))]
}

// without returns the entries different from c.
func (p Palette) without(c Color) Palette {
	out := make(Palette, 0, len(p))
	for _, pc := range p {
		if pc != c {
			out = append(out, pc)
		}
	}
	return out
}

// Assign returns n base colors where no bulb shares a color with the one
// before it.
func Assign(n int, p Palette, r Random) ([]Color, error) {
	if n < 1 {
		return nil, &ConfigError{Field: "bulb count", Value: n, Reason: "must be at least 1"}
	}
	if len(p) < 2 {
		return nil, &ConfigError{Field: "palette size", Value: len(p), Reason: "need at least 2 colors"}
	}

	colors := make([]Color, n)
	colors[0] = p.Pick(r)
	for i := 1; i < n; i++ {
		rest := p.without(colors[i-1])
		if len(rest) == 0 {
			return nil, &ConfigError{Field: "palette size", Value: len(p), Reason: "need at least 2 distinct colors"}
		}
		colors[i] = rest.Pick(r)
	}
	return colors, nil
}
