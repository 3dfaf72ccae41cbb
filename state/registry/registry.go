package registry

import (
	"fmt"
	"math"

	"github.com/sasha-s/go-deadlock"

	"etch/engine/library"
)

// Registry owns every post and balance. Each method call is atomic: a failing call leaves no trace.
type Registry struct {
	variant    Variant
	posts      map[library.TokenID]Post
	balances   map[library.TokenID]map[library.Account]uint64
	next       library.TokenID
	totalPosts uint64
	mutex      *deadlock.Mutex
}

func New(variant Variant) *Registry {
	return &Registry{
		variant:  variant,
		posts:    make(map[library.TokenID]Post),
		balances: make(map[library.TokenID]map[library.Account]uint64),
		mutex:    &deadlock.Mutex{},
	}
}

func (r *Registry) Variant() Variant {
	return r.variant
}

// CreatePost issues a post to caller and returns its token id.
//
// Sequential registries ignore id, quantity and allowMultiple: the next id is assigned and one
// instance is issued. Supplied registries create id if it is absent. If it exists the call fails
// with ErrDuplicateToken unless allowMultiple is set, in which case quantity more instances are
// issued and the stored uri is kept.
func (r *Registry) CreatePost(caller library.Account, id library.TokenID, uri string, quantity uint64, allowMultiple bool) (library.TokenID, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.variant == Sequential {
		return r.createNext(caller, uri)
	}
	return r.createSupplied(caller, id, uri, quantity, allowMultiple)
}

func (r *Registry) createNext(caller library.Account, uri string) (library.TokenID, error) {
	id := r.next
	if id == math.MaxUint64 {
		return 0, fmt.Errorf("token id space exhausted: %w", ErrQuantityOverflow)
	}
	r.posts[id] = Post{URI: uri, Exists: true, TotalIssued: 1}
	r.credit(id, caller, 1)
	r.next++
	r.totalPosts++
	return id, nil
}

func (r *Registry) createSupplied(caller library.Account, id library.TokenID, uri string, quantity uint64, allowMultiple bool) (library.TokenID, error) {
	post, exists := r.posts[id]
	if !exists || !post.Exists {
		r.posts[id] = Post{URI: uri, Exists: true, TotalIssued: quantity}
		r.credit(id, caller, quantity)
		r.totalPosts++
		return id, nil
	}
	if !allowMultiple {
		return 0, fmt.Errorf("token %d: %w", id, ErrDuplicateToken)
	}
	// every balance is bounded by TotalIssued so this also guards the caller's balance
	if post.TotalIssued > math.MaxUint64-quantity {
		return 0, fmt.Errorf("token %d: issuing %d more to %d: %w", id, quantity, post.TotalIssued, ErrQuantityOverflow)
	}
	post.TotalIssued += quantity
	r.posts[id] = post
	r.credit(id, caller, quantity)
	return id, nil
}

// UpdatePost replaces the uri of an existing post. Balances and counters are untouched.
func (r *Registry) UpdatePost(id library.TokenID, uri string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	post, exists := r.posts[id]
	if !exists || !post.Exists {
		return fmt.Errorf("token %d: %w", id, ErrNotFound)
	}
	post.URI = uri
	r.posts[id] = post
	return nil
}

func (r *Registry) credit(id library.TokenID, owner library.Account, quantity uint64) {
	if _, ok := r.balances[id]; !ok {
		r.balances[id] = make(map[library.Account]uint64)
	}
	r.balances[id][owner] += quantity
}

func (r *Registry) Snapshot() Snapshot {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	s := Snapshot{
		Variant:     r.variant,
		NextTokenID: r.next,
		TotalPosts:  r.totalPosts,
		Posts:       make(map[library.TokenID]Post, len(r.posts)),
		Balances:    make(map[library.TokenID]map[library.Account]uint64, len(r.balances)),
	}
	for id, post := range r.posts {
		s.Posts[id] = post
	}
	for id, holders := range r.balances {
		s.Balances[id] = make(map[library.Account]uint64, len(holders))
		for account, quantity := range holders {
			s.Balances[id][account] = quantity
		}
	}
	return s
}

// Restore replaces the registry content with s. The snapshot must come from a registry of the same
// variant, hold only existing posts, and issue to holders exactly what each post records as issued.
func (r *Registry) Restore(s Snapshot) error {
	if s.Variant != r.variant {
		return fmt.Errorf("snapshot is for a %s registry, this registry is %s", s.Variant, r.variant)
	}
	for id, post := range s.Posts {
		if !post.Exists {
			return fmt.Errorf("snapshot holds token %d that does not exist", id)
		}
		var issued uint64
		for account, quantity := range s.Balances[id] {
			if issued > math.MaxUint64-quantity {
				return fmt.Errorf("token %d: balance of %s: %w", id, account, ErrQuantityOverflow)
			}
			issued += quantity
		}
		if issued != post.TotalIssued {
			return fmt.Errorf("token %d: snapshot issues %d but balances sum to %d", id, post.TotalIssued, issued)
		}
	}
	for id := range s.Balances {
		if _, ok := s.Posts[id]; !ok {
			return fmt.Errorf("snapshot holds balances for unknown token %d", id)
		}
	}
	if uint64(len(s.Posts)) != s.TotalPosts {
		return fmt.Errorf("snapshot counts %d posts but holds %d", s.TotalPosts, len(s.Posts))
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.posts = make(map[library.TokenID]Post, len(s.Posts))
	r.balances = make(map[library.TokenID]map[library.Account]uint64, len(s.Balances))
	for id, post := range s.Posts {
		r.posts[id] = post
	}
	for id, holders := range s.Balances {
		for account, quantity := range holders {
			r.credit(id, account, quantity)
		}
	}
	r.next = s.NextTokenID
	r.totalPosts = s.TotalPosts
	return nil
}
