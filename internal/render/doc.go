// Package render formats garland frames and writes them to the terminal.
//
// [Painter] produces the styled header and garland strings using a lipgloss
// renderer. [Screen] overwrites the same two terminal lines every frame
// instead of appending, so the scrollback does not grow.
package render
