package audit

import (
	"etch/engine/library"
)

// Payload is the signed event that accompanies a write. It is stored and re-emitted exactly as
// supplied; nothing here is parsed, checked or normalised.
type Payload struct {
	EventID   string `json:"event_id"`
	Pubkey    string `json:"pubkey"`
	CreatedAt int64  `json:"created_at"`
	Kind      int    `json:"kind"`
	Content   string `json:"content"`
	Tags      string `json:"tags"`
	Signature string `json:"sig"`
}

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
)

// Record is one PubEvent. TokenID and URI are only set by sequential registries, where the
// caller cannot know the id before the write.
type Record struct {
	Sequence  uint64           `json:"sequence"`
	Operation Operation        `json:"operation"`
	TokenID   *library.TokenID `json:"token_id,omitempty"`
	URI       string           `json:"uri,omitempty"`
	Payload
}

// Sink receives records after the write they describe has committed.
type Sink interface {
	Receive(Record) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Record) error

func (f SinkFunc) Receive(r Record) error {
	return f(r)
}
