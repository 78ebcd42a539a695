// Package garland holds the animation model for a terminal string of lights.
//
// The package is built from a few small pieces:
//
//   - [Palette]: the display colors a bulb may take
//   - [Assign]: per-bulb base colors with no two neighbours alike
//   - [Mode]: the closed set of animation patterns and their frame delays
//   - [State]: mode, tick counter and UI flags owned by a render loop
//
// # Example
//
//	rng := rand.New(rand.NewSource(seed))
//	colors, _ := garland.Assign(40, garland.DefaultPalette, rng)
//	st, _ := garland.NewState(colors, time.Now)
//	bulbs := st.Frame(garland.DefaultPalette, rng)
//	st.Advance()
//
// # Purity
//
// [Mode.Generate] reads only its arguments. Modes that need randomness take
// it from the [Random] passed in, so a seeded source gives repeatable frames.
//
// State instances are NOT thread-safe; a single loop owns each one.
package garland
