package store

import (
	"context"
)

// Async pins a Store to a background goroutine and accepts closures from
// any caller, running them serially against the pinned connection and
// returning results via the closure's own channel. This is the async
// façade the spec calls for: the underlying database/sql handle stays
// on one goroutine's call path, so nothing about sqlite's per-connection
// state needs to be reasoned about as shared-mutable.
type Async struct {
	store *Store
	tasks chan func()
	done  chan struct{}
}

// NewAsync starts the background goroutine and returns the façade.
func NewAsync(s *Store) *Async {
	a := &Async{
		store: s,
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) run() {
	defer close(a.done)
	for task := range a.tasks {
		task()
	}
}

// Close stops accepting new tasks and waits for the queue to drain.
func (a *Async) Close() {
	close(a.tasks)
	<-a.done
}

// submit enqueues fn to run on the background goroutine. It is safe to
// call from multiple caller goroutines concurrently; tasks run in the
// order they were submitted.
func (a *Async) submit(fn func()) {
	a.tasks <- fn
}

// Go runs fn against the pinned Store on the background goroutine and
// delivers its result to done once fn returns. Callers typically wrap
// this in a bubbletea tea.Cmd that blocks on the returned channel and
// translates the result into an eventbus.DbResultMsg.
func Go[T any](a *Async, fn func(ctx context.Context, s *Store) (T, error)) <-chan asyncResult[T] {
	out := make(chan asyncResult[T], 1)
	a.submit(func() {
		v, err := fn(context.Background(), a.store)
		out <- asyncResult[T]{value: v, err: err}
	})
	return out
}

type asyncResult[T any] struct {
	value T
	err   error
}

// Value returns the completed result's value and error.
func (r asyncResult[T]) Value() (T, error) {
	return r.value, r.err
}
