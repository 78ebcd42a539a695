package input

import "unicode"

// Key is a decoded key press.
type Key rune

const (
	// KeyNone is returned alongside ok=false.
	KeyNone Key = 0

	// KeyInterrupt is Ctrl+C delivered as a byte (raw consoles).
	KeyInterrupt Key = 0x03

	// KeyEnter covers both carriage return and line feed.
	KeyEnter Key = '\r'
)

// Poller is a non-blocking key source bound to the process terminal.
type Poller interface {
	// Acquire switches the terminal into single-key mode.
	Acquire() error
	// Release restores the settings saved by Acquire. Safe to call more than once.
	Release() error
	// Poll returns the next pending key, or ok=false if none is waiting.
	Poll() (k Key, ok bool, err error)
}

// Decode maps a raw input byte to a Key.
func Decode(b byte) Key {
	switch b {
	case '\r', '\n':
		return KeyEnter
	case 0x03:
		return KeyInterrupt
	}
	return Key(unicode.ToLower(rune(b)))
}

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyEnter:
		return "enter"
	case KeyInterrupt:
		return "ctrl+c"
	}
	return string(rune(k))
}
