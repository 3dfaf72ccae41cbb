package registry

import (
	"bytes"
	"fmt"

	"golang.org/x/exp/slices"

	"etch/engine/library"
)

func (r *Registry) Post(id library.TokenID) (Post, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	post, ok := r.posts[id]
	return post, ok
}

// URI returns the metadata uri of id, or an empty string if the post does not exist.
func (r *Registry) URI(id library.TokenID) string {
	post, _ := r.Post(id)
	return post.URI
}

func (r *Registry) BalanceOf(owner library.Account, id library.TokenID) uint64 {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.balances[id][owner]
}

// TotalPosts is the number of distinct token ids that exist.
func (r *Registry) TotalPosts() uint64 {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.totalPosts
}

// CurrentTokenID is the id the next sequential create will assign. It stays 0 for Supplied registries.
func (r *Registry) CurrentTokenID() library.TokenID {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.next
}

// TokenIDs returns every existing id in ascending order.
func (r *Registry) TokenIDs() []library.TokenID {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.tokenIDs()
}

// Holders returns the accounts with a non-zero balance of id in ascending order.
func (r *Registry) Holders(id library.TokenID) []library.Account {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.holders(id)
}

// StateHash digests every post and balance in a fixed order so two registries can be compared.
func (r *Registry) StateHash() library.Sha256 {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	b := bytes.Buffer{}
	fmt.Fprintf(&b, "%s:%d:%d\n", r.variant, r.next, r.totalPosts)
	for _, id := range r.tokenIDs() {
		post := r.posts[id]
		fmt.Fprintf(&b, "%d:%q:%d\n", id, post.URI, post.TotalIssued)
		for _, account := range r.holders(id) {
			fmt.Fprintf(&b, " %s:%d\n", account, r.balances[id][account])
		}
	}
	return library.Sha256Sum(b.Bytes())
}

func (r *Registry) tokenIDs() []library.TokenID {
	ids := make([]library.TokenID, 0, len(r.posts))
	for id, post := range r.posts {
		if post.Exists {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (r *Registry) holders(id library.TokenID) []library.Account {
	var accounts []library.Account
	for account, quantity := range r.balances[id] {
		if quantity > 0 {
			accounts = append(accounts, account)
		}
	}
	slices.Sort(accounts)
	return accounts
}
