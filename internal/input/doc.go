// Package input reads single key presses from the terminal without blocking.
//
// A [Poller] is acquired once before the frame loop, polled once per frame
// and released on every exit path. [New] picks the implementation for the
// build platform: cbreak mode with a readiness check on POSIX terminals, a
// raw console with a key-hit channel on Windows.
package input
