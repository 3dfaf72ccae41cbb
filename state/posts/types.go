package posts

import (
	"etch/engine/library"
	"etch/state/audit"
	"etch/state/capability"
	"etch/state/registry"
)

type CreatePostRequest struct {
	URI string
	// TokenID is ignored by sequential registries.
	TokenID library.TokenID
	Payload audit.Payload
	// Quantity and AllowMultiple only apply to supplied registries; sequential ones always issue one instance.
	Quantity      uint64
	AllowMultiple bool
}

type UpdatePostRequest struct {
	TokenID library.TokenID
	URI     string
	Payload audit.Payload
}

// Snapshot is everything a Service needs to resume after a restart.
type Snapshot struct {
	Registry      registry.Snapshot `json:"registry"`
	Roles         capability.Roles  `json:"roles"`
	AuditSequence uint64            `json:"audit_sequence"`
}

// Store persists snapshots. Load reports ok=false when nothing has been saved yet.
type Store interface {
	Load() (s Snapshot, ok bool, err error)
	Save(Snapshot) error
}

type Options struct {
	Variant registry.Variant
	// Admin receives the admin and minter roles when no snapshot exists.
	Admin library.Account
	Sinks []audit.Sink
	Store Store
}
