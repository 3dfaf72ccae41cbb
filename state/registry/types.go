package registry

import (
	"errors"
	"fmt"

	"etch/engine/library"
)

// Variant selects how token ids are chosen.
type Variant int

const (
	// Supplied lets the caller choose the token id and, with allowMultiple, issue more instances of an existing post.
	Supplied Variant = iota
	// Sequential assigns ids 0, 1, 2... and issues exactly one instance per post.
	Sequential
)

func (v Variant) String() string {
	switch v {
	case Supplied:
		return "supplied"
	case Sequential:
		return "sequential"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

func ParseVariant(s string) (Variant, error) {
	switch s {
	case "supplied", "multi":
		return Supplied, nil
	case "sequential", "single":
		return Sequential, nil
	}
	return 0, fmt.Errorf("unknown registry variant %q", s)
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

var (
	ErrDuplicateToken   = errors.New("token already exists")
	ErrNotFound         = errors.New("post does not exist")
	ErrQuantityOverflow = errors.New("quantity overflows issued supply")
)

type Post struct {
	URI         string `json:"uri"`
	Exists      bool   `json:"exists"`
	TotalIssued uint64 `json:"total_issued"`
}

// Snapshot is a copy of the whole registry, used for persistence.
type Snapshot struct {
	Variant     Variant                                        `json:"variant"`
	NextTokenID library.TokenID                                `json:"next_token_id"`
	TotalPosts  uint64                                         `json:"total_posts"`
	Posts       map[library.TokenID]Post                       `json:"posts"`
	Balances    map[library.TokenID]map[library.Account]uint64 `json:"balances"`
}
