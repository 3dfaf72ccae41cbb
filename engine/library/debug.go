package library

import (
	"fmt"
	"time"

	"github.com/sasha-s/go-deadlock"
)

// ConfigureWatchdog sets how long a lock or a watched unit of work may block before it is
// reported. Reports are logged instead of ending the process. A timeout of zero turns the
// check off.
func ConfigureWatchdog(timeout time.Duration) {
	deadlock.Opts.DeadlockTimeout = timeout
	deadlock.Opts.OnPotentialDeadlock = func() {
		LogCLI(fmt.Sprintf("work blocked for more than %s, see the goroutine dump above", timeout), 1)
	}
}

// WatchExecution returns a done func for a unit of work. If done is not called before the
// watchdog timeout elapses, go-deadlock reports the goroutine that is stuck.
func WatchExecution() (done func()) {
	mu := deadlock.Mutex{}
	mu.Lock()
	go func() {
		mu.Lock()
		mu.Unlock()
	}()
	return func() {
		mu.Unlock()
	}
}
