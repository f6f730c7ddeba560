// Package terminal guarantees that the terminal is restored to its
// original state on every exit path: normal quit, unhandled panic, or
// termination signal. The teacher's toolkit does not restore on drop, so
// restoration is wired explicitly rather than left to a deferred cleanup
// that might not run.
package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Lifecycle owns the bubbletea program once it exists and guarantees a
// single, idempotent restore path regardless of how the program exits.
// bubbletea itself restores raw mode and leaves the alternate screen when
// Run returns, but that guarantee only covers the normal-return and
// recovered-panic cases reachable from inside Run; Lifecycle adds the
// termination-signal flag and a panic-safe wrapper around Run so a panic
// that escapes bubbletea's own recovery still restores before it
// propagates.
type Lifecycle struct {
	program  atomic.Pointer[tea.Program]
	restored atomic.Bool
}

// New creates a Lifecycle with no program attached yet. Attach must be
// called once the tea.Program has been constructed, before Run.
func New() *Lifecycle {
	return &Lifecycle{}
}

// Attach records the program this lifecycle is responsible for restoring.
func (l *Lifecycle) Attach(p *tea.Program) {
	l.program.Store(p)
}

// Restore releases the terminal back to its original state. It is safe
// to call more than once; only the first call has any effect.
func (l *Lifecycle) Restore() {
	if !l.restored.CompareAndSwap(false, true) {
		return
	}
	if p := l.program.Load(); p != nil {
		p.ReleaseTerminal() //nolint:errcheck // best-effort on a possibly-already-torn-down terminal
	}
}

// RunGuarded runs fn (expected to be p.Run for the attached program) and
// guarantees Restore has been called before RunGuarded returns or
// re-panics. This stands in for the panic-hook chaining the spec
// describes: Go has no global panic-hook registry, so the idiomatic
// equivalent is to recover, restore, and re-panic at the narrowest scope
// that owns the terminal.
func (l *Lifecycle) RunGuarded(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.Restore()
			panic(r)
		}
	}()
	defer l.Restore()
	err = fn()
	return err
}

// RegisterTermSignal installs a signal handler for SIGINT/SIGTERM and
// returns a flag that is set to true from the handler. The event loop
// polls this flag at least every 50ms (see internal/eventbus) and
// injects a Quit event when it is set, rather than handling the signal
// synchronously on the handler's own goroutine.
func RegisterTermSignal() *atomic.Bool {
	flag := &atomic.Bool{}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		flag.Store(true)
	}()
	return flag
}

// EnableRawFallback only checks that fd is a terminal; it changes no
// terminal mode and has no callers in this repository. It reports a
// terminal-I/O error rather than panicking when the file descriptor is
// not a terminal at all.
func EnableRawFallback(fd int) error {
	if !term.IsTerminal(fd) {
		return fmt.Errorf("terminal-io: fd %d is not a terminal", fd)
	}
	return nil
}
