package posts

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"

	"etch/engine/library"
	"etch/state/audit"
	"etch/state/capability"
	"etch/state/registry"
)

// Service is the only way to write to the registry. Every write checks the minter role,
// mutates the registry and emits exactly one audit record, all under one lock.
type Service struct {
	roles    *capability.Store
	registry *registry.Registry
	emitter  *audit.Emitter
	log      *audit.Log
	store    Store
	mutex    *deadlock.Mutex
}

func New(opts Options) (*Service, error) {
	s := &Service{
		registry: registry.New(opts.Variant),
		log:      audit.NewLog(),
		store:    opts.Store,
		mutex:    &deadlock.Mutex{},
	}
	s.emitter = audit.NewEmitter(s.log)
	for _, sink := range opts.Sinks {
		s.emitter.Register(sink)
	}
	if s.store != nil {
		snap, ok, err := s.store.Load()
		if err != nil {
			return nil, fmt.Errorf("loading registry snapshot: %w", err)
		}
		if ok {
			if err = s.registry.Restore(snap.Registry); err != nil {
				return nil, err
			}
			s.roles = capability.New("")
			s.roles.Restore(snap.Roles)
			s.emitter.Resume(snap.AuditSequence)
			library.LogCLI(fmt.Sprintf("restored %s registry with %d posts", opts.Variant, snap.Registry.TotalPosts), 4)
			return s, nil
		}
	}
	if len(opts.Admin) == 0 {
		return nil, fmt.Errorf("a new registry needs an admin account")
	}
	s.roles = capability.New(opts.Admin)
	s.persist()
	return s, nil
}

// CreatePost records a post for caller and returns its token id.
func (s *Service) CreatePost(caller library.Account, req CreatePostRequest) (library.TokenID, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := s.roles.RequireRole(capability.MinterRole, caller); err != nil {
		return 0, err
	}
	id, err := s.registry.CreatePost(caller, req.TokenID, req.URI, req.Quantity, req.AllowMultiple)
	if err != nil {
		return 0, err
	}
	record := audit.Record{Operation: audit.OpCreate, Payload: req.Payload}
	if s.registry.Variant() == registry.Sequential {
		record.TokenID = &id
		record.URI = req.URI
	}
	record = s.emitter.Emit(record)
	library.LogCLI(fmt.Sprintf("post %d created by %s for event %s (record %d)", id, caller, req.Payload.EventID, record.Sequence), 4)
	s.persist()
	return id, nil
}

// UpdatePost replaces the uri of an existing post.
func (s *Service) UpdatePost(caller library.Account, req UpdatePostRequest) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := s.roles.RequireRole(capability.MinterRole, caller); err != nil {
		return err
	}
	if err := s.registry.UpdatePost(req.TokenID, req.URI); err != nil {
		return err
	}
	record := s.emitter.Emit(audit.Record{Operation: audit.OpUpdate, Payload: req.Payload})
	library.LogCLI(fmt.Sprintf("post %d updated by %s for event %s (record %d)", req.TokenID, caller, req.Payload.EventID, record.Sequence), 4)
	s.persist()
	return nil
}

func (s *Service) GrantRole(caller library.Account, role capability.Role, account library.Account) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := s.roles.GrantRole(caller, role, account); err != nil {
		return err
	}
	s.persist()
	return nil
}

func (s *Service) RevokeRole(caller library.Account, role capability.Role, account library.Account) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := s.roles.RevokeRole(caller, role, account); err != nil {
		return err
	}
	s.persist()
	return nil
}

// persist must be called with s.mutex held. A failed save is logged; the in-memory state stays authoritative.
func (s *Service) persist() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.snapshot()); err != nil {
		library.LogCLI(fmt.Sprintf("saving registry snapshot: %s", err.Error()), 1)
	}
}

func (s *Service) snapshot() Snapshot {
	return Snapshot{
		Registry:      s.registry.Snapshot(),
		Roles:         s.roles.Snapshot(),
		AuditSequence: s.emitter.Sequence(),
	}
}
