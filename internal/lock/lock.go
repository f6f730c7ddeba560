// Package lock serializes the review terminal's startup WAL checkpoint
// against concurrent `airev` launches against the same repository.
// Grounded on the teacher's internal/doltserver.Start, which takes a
// gofrs/flock.TryLock around its own server-start race before touching
// shared on-disk state.
package lock

import (
	"fmt"

	"github.com/gofrs/flock"
)

// AcquireStartup tries to take an exclusive, non-blocking lock on
// <dbPath>.lock, the same file every `airev` process launched against
// this repository's database contends for. A second, concurrently
// launched airev skips its own startup checkpoint rather than blocking,
// since a checkpoint is an optimization (keeping the WAL file small),
// not a correctness requirement — the database itself handles
// concurrent readers/writers regardless of checkpoint timing.
func AcquireStartup(dbPath string) (release func(), acquired bool, err error) {
	fl := flock.New(dbPath + ".lock")
	locked, err := fl.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("acquiring startup lock: %w", err)
	}
	if !locked {
		return nil, false, nil
	}
	return func() { _ = fl.Unlock() }, true, nil
}
