package audit

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"

	"etch/engine/library"
)

// Emitter numbers records and hands them to every sink in registration order.
type Emitter struct {
	sinks    []Sink
	sequence uint64
	mutex    *deadlock.Mutex
}

func NewEmitter(sinks ...Sink) *Emitter {
	return &Emitter{
		sinks: sinks,
		mutex: &deadlock.Mutex{},
	}
}

func (e *Emitter) Register(s Sink) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.sinks = append(e.sinks, s)
}

// Emit assigns the next sequence number and delivers the record. A sink that fails is logged
// and skipped; the write has already happened and cannot be undone here.
func (e *Emitter) Emit(r Record) Record {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.sequence++
	r.Sequence = e.sequence
	for _, s := range e.sinks {
		if err := s.Receive(r); err != nil {
			library.LogCLI(fmt.Sprintf("audit sink %T rejected record %d: %s", s, r.Sequence, err.Error()), 2)
		}
	}
	return r
}

// Sequence is the number of the last emitted record.
func (e *Emitter) Sequence() uint64 {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.sequence
}

// Resume continues numbering after seq, used when a registry is restored from disk.
func (e *Emitter) Resume(seq uint64) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.sequence = seq
}
