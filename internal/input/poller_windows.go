//go:build windows

package input

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Acquire when stdin is redirected.
var ErrNotTerminal = errors.New("stdin is not a console")

type consolePoller struct {
	in      *os.File
	out     windows.Handle
	outMode uint32
	saved   *term.State
	keys    chan byte
	started bool
}

// New returns the poller for the process console.
func New() Poller {
	return &consolePoller{
		in:   os.Stdin,
		out:  windows.Handle(os.Stdout.Fd()),
		keys: make(chan byte, 64),
	}
}

// Acquire switches the console input to raw mode and enables escape
// sequence processing on the output handle.
func (p *consolePoller) Acquire() error {
	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("make raw: %w", err)
	}

	if err := windows.GetConsoleMode(p.out, &p.outMode); err != nil {
		return errors.Join(fmt.Errorf("get console mode: %w", err), term.Restore(fd, saved))
	}
	if err := windows.SetConsoleMode(p.out, p.outMode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		return errors.Join(fmt.Errorf("enable vt output: %w", err), term.Restore(fd, saved))
	}

	p.saved = saved
	if !p.started {
		p.started = true
		go p.readLoop()
	}
	return nil
}

// readLoop feeds key bytes to Poll. It blocks in Read and exits with the process.
func (p *consolePoller) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := p.in.Read(buf)
		if err != nil {
			close(p.keys)
			return
		}
		if n == 1 {
			p.keys <- buf[0]
		}
	}
}

func (p *consolePoller) Release() error {
	if p.saved == nil {
		return nil
	}
	err := term.Restore(int(p.in.Fd()), p.saved)
	if merr := windows.SetConsoleMode(p.out, p.outMode); err == nil {
		err = merr
	}
	p.saved = nil
	return err
}

// Poll is the console key-hit check: a receive that never waits.
func (p *consolePoller) Poll() (Key, bool, error) {
	select {
	case b, ok := <-p.keys:
		if !ok {
			return KeyNone, false, errors.New("console input closed")
		}
		return Decode(b), true, nil
	default:
		return KeyNone, false, nil
	}
}
