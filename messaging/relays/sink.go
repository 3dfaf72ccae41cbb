package relays

import (
	"context"
	"fmt"
	"time"

	"github.com/sasha-s/go-deadlock"

	"etch/engine/library"
	"etch/messaging/nostrevent"
	"etch/state/audit"
)

// Sink is an audit sink that republishes the nostr event behind each record. Records are queued
// so that the write path never waits on the network.
type Sink struct {
	publish    Publisher
	backlog    *library.Backlog
	mutex      *deadlock.Mutex
	wake       chan struct{}
	retryAfter time.Duration
	timeout    time.Duration
}

func NewSink(publish Publisher) *Sink {
	return &Sink{
		publish:    publish,
		backlog:    library.NewBacklog(16),
		mutex:      &deadlock.Mutex{},
		wake:       make(chan struct{}, 1),
		retryAfter: 5 * time.Second,
		timeout:    30 * time.Second,
	}
}

// Receive queues the event behind r. Events that do not verify are refused.
func (s *Sink) Receive(r audit.Record) error {
	if err := nostrevent.VerifyPayload(r.Payload); err != nil {
		return err
	}
	e, err := nostrevent.ToEvent(r.Payload)
	if err != nil {
		return err
	}
	s.mutex.Lock()
	s.backlog.Push(e)
	s.mutex.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// Pending is the number of events waiting to be published.
func (s *Sink) Pending() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.backlog.Len()
}

// Run publishes queued events until terminate is closed, then makes one last attempt to drain the backlog.
func (s *Sink) Run(terminate chan struct{}) {
	for {
		select {
		case <-s.wake:
			s.drain()
		case <-time.After(s.retryAfter):
			s.drain()
		case <-terminate:
			s.drain()
			if n := s.Pending(); n > 0 {
				library.LogCLI(fmt.Sprintf("relay sink shutting down with %d unpublished events", n), 2)
			}
			return
		}
	}
}

// drain publishes from the head of the backlog and pops an event only once a relay accepted it.
// Only one goroutine drains.
func (s *Sink) drain() {
	for {
		s.mutex.Lock()
		e, ok := s.backlog.Peek()
		s.mutex.Unlock()
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		done := library.WatchExecution()
		err := s.publish(ctx, e)
		done()
		cancel()
		if err != nil {
			library.LogCLI(err.Error(), 2)
			return
		}
		s.mutex.Lock()
		s.backlog.Pop()
		s.mutex.Unlock()
		library.LogCLI(fmt.Sprintf("published event %s", e.ID), 3)
	}
}
