//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package input

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Acquire when stdin is redirected.
var ErrNotTerminal = errors.New("stdin is not a terminal")

type posixPoller struct {
	fd    int
	saved *term.State
	buf   [1]byte
}

// New returns the poller for the process stdin.
func New() Poller {
	return &posixPoller{fd: int(os.Stdin.Fd())}
}

// Acquire puts the terminal in cbreak mode: no line buffering, no echo.
// Output processing and signal keys keep working.
func (p *posixPoller) Acquire() error {
	if !isatty.IsTerminal(uintptr(p.fd)) {
		return ErrNotTerminal
	}

	saved, err := term.GetState(p.fd)
	if err != nil {
		return fmt.Errorf("get state: %w", err)
	}

	tio, err := unix.IoctlGetTermios(p.fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("read termios: %w", err)
	}
	tio.Lflag &^= unix.ICANON | unix.ECHO
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(p.fd, ioctlWriteTermios, tio); err != nil {
		return fmt.Errorf("set cbreak: %w", err)
	}

	p.saved = saved
	return nil
}

func (p *posixPoller) Release() error {
	if p.saved == nil {
		return nil
	}
	err := term.Restore(p.fd, p.saved)
	p.saved = nil
	return err
}

func (p *posixPoller) Poll() (Key, bool, error) {
	fds := []unix.PollFd{{Fd: int32(p.fd), Events: unix.POLLIN}}

	n, err := unix.Poll(fds, 0)
	if err != nil {
		if err == unix.EINTR {
			return KeyNone, false, nil
		}
		return KeyNone, false, err
	}
	if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
		return KeyNone, false, nil
	}

	rn, err := unix.Read(p.fd, p.buf[:])
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return KeyNone, false, nil
		}
		return KeyNone, false, err
	}
	if rn == 0 {
		return KeyNone, false, nil
	}
	return Decode(p.buf[0]), true, nil
}
