package relays

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nbd-wtf/go-nostr"

	"etch/engine/library"
)

// Publisher sends one event somewhere. Errors cause the event to stay in the backlog.
type Publisher func(ctx context.Context, e nostr.Event) error

// Connect dials every relay and returns a Publisher that sends to all of them in parallel.
// Relays that cannot be reached are logged and skipped; it is an error if none can be reached.
func Connect(ctx context.Context, urls []string) (Publisher, func(), error) {
	var connected []*nostr.Relay
	for _, url := range urls {
		relay, err := nostr.RelayConnect(ctx, url)
		if err != nil {
			library.LogCLI(fmt.Sprintf("could not connect to relay %s: %s", url, err), 2)
			continue
		}
		connected = append(connected, relay)
	}
	if len(connected) == 0 {
		return nil, func() {}, fmt.Errorf("none of %d relays could be reached", len(urls))
	}
	closer := func() {
		for _, relay := range connected {
			relay.Close()
		}
	}
	return fanOut(connected), closer, nil
}

func fanOut(relays []*nostr.Relay) Publisher {
	return func(ctx context.Context, e nostr.Event) error {
		var wg sync.WaitGroup
		errs := make([]error, len(relays))
		for i, relay := range relays {
			wg.Add(1)
			go func(i int, relay *nostr.Relay) {
				defer wg.Done()
				ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
				defer cancel()
				if _, err := relay.Publish(ctx, e); err != nil {
					errs[i] = fmt.Errorf("publishing %s to %s: %w", e.ID, relay.URL, err)
				}
			}(i, relay)
		}
		wg.Wait()
		// one relay accepting the event is enough, the rest are best effort
		var failed []error
		for _, err := range errs {
			if err != nil {
				failed = append(failed, err)
			}
		}
		if len(failed) == len(relays) {
			return failed[0]
		}
		for _, err := range failed {
			library.LogCLI(err.Error(), 2)
		}
		return nil
	}
}
