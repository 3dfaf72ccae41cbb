package capability

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"
	"golang.org/x/exp/slices"

	"etch/engine/library"
)

// Store tracks which accounts hold which roles.
type Store struct {
	data  map[Role]map[library.Account]struct{}
	mutex *deadlock.Mutex
}

// New returns a store in which admin holds DefaultAdminRole and MinterRole.
func New(admin library.Account) *Store {
	s := &Store{
		data:  make(map[Role]map[library.Account]struct{}),
		mutex: &deadlock.Mutex{},
	}
	s.add(DefaultAdminRole, admin)
	s.add(MinterRole, admin)
	return s
}

func (s *Store) HasRole(role Role, account library.Account) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.has(role, account)
}

// RequireRole returns an error wrapping ErrUnauthorized when account does not hold role.
func (s *Store) RequireRole(role Role, account library.Account) error {
	if !s.HasRole(role, account) {
		return fmt.Errorf("account %s is missing role %s: %w", account, role, ErrUnauthorized)
	}
	return nil
}

// GrantRole gives role to account. caller must hold DefaultAdminRole. Granting a role that is already held is a no-op.
func (s *Store) GrantRole(caller library.Account, role Role, account library.Account) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.has(DefaultAdminRole, caller) {
		return fmt.Errorf("account %s is missing role %s: %w", caller, DefaultAdminRole, ErrUnauthorized)
	}
	s.add(role, account)
	return nil
}

// RevokeRole removes role from account. caller must hold DefaultAdminRole.
func (s *Store) RevokeRole(caller library.Account, role Role, account library.Account) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.has(DefaultAdminRole, caller) {
		return fmt.Errorf("account %s is missing role %s: %w", caller, DefaultAdminRole, ErrUnauthorized)
	}
	delete(s.data[role], account)
	return nil
}

// Members returns the accounts holding role in ascending order.
func (s *Store) Members(role Role) []library.Account {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.members(role)
}

func (s *Store) Snapshot() Roles {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	r := make(Roles)
	for role := range s.data {
		if m := s.members(role); len(m) > 0 {
			r[role] = m
		}
	}
	return r
}

// Restore replaces every grant with the content of r.
func (s *Store) Restore(r Roles) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = make(map[Role]map[library.Account]struct{})
	for role, accounts := range r {
		for _, account := range accounts {
			s.add(role, account)
		}
	}
}

func (s *Store) has(role Role, account library.Account) bool {
	_, ok := s.data[role][account]
	return ok
}

func (s *Store) add(role Role, account library.Account) {
	if _, ok := s.data[role]; !ok {
		s.data[role] = make(map[library.Account]struct{})
	}
	s.data[role][account] = struct{}{}
}

func (s *Store) members(role Role) []library.Account {
	var m []library.Account
	for account := range s.data[role] {
		m = append(m, account)
	}
	slices.Sort(m)
	return m
}
