package posts

import (
	"fmt"

	"etch/engine/library"
	"etch/state/audit"
	"etch/state/capability"
	"etch/state/registry"
)

func (s *Service) Variant() registry.Variant {
	return s.registry.Variant()
}

func (s *Service) TotalPosts() uint64 {
	return s.registry.TotalPosts()
}

func (s *Service) BalanceOf(owner library.Account, id library.TokenID) uint64 {
	return s.registry.BalanceOf(owner, id)
}

// URI returns the metadata uri of id, empty if the post does not exist.
func (s *Service) URI(id library.TokenID) string {
	return s.registry.URI(id)
}

// TokenURI is URI for callers that need to tell a missing post apart from an empty uri.
func (s *Service) TokenURI(id library.TokenID) (string, error) {
	post, ok := s.registry.Post(id)
	if !ok {
		return "", fmt.Errorf("token %d: %w", id, registry.ErrNotFound)
	}
	return post.URI, nil
}

// CurrentTokenID is the id the next create on a sequential registry will receive.
func (s *Service) CurrentTokenID() library.TokenID {
	return s.registry.CurrentTokenID()
}

func (s *Service) Post(id library.TokenID) (registry.Post, bool) {
	return s.registry.Post(id)
}

func (s *Service) TokenIDs() []library.TokenID {
	return s.registry.TokenIDs()
}

func (s *Service) Holders(id library.TokenID) []library.Account {
	return s.registry.Holders(id)
}

func (s *Service) StateHash() library.Sha256 {
	return s.registry.StateHash()
}

func (s *Service) HasRole(role capability.Role, account library.Account) bool {
	return s.roles.HasRole(role, account)
}

func (s *Service) Members(role capability.Role) []library.Account {
	return s.roles.Members(role)
}

// AuditLog returns the records emitted by this process, oldest first.
func (s *Service) AuditLog() []audit.Record {
	return s.log.Records()
}
