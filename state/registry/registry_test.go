package registry

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "c3cea60c7e452527daae9d5eb78805f44aac272a8075eeb6779be011e572fff2"
	bob   = "301de8ee9925fb0b5eb5f2e23a2c06019846f57430cbd0b1b1a8555e9c0e8e56"
)

func TestSupplied_CreateThenDuplicate(t *testing.T) {
	r := New(Supplied)

	id, err := r.CreatePost(alice, 1, "https://example.com/1.json", 1, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
	before := r.StateHash()

	_, err = r.CreatePost(alice, 1, "https://example.com/2.json", 1, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateToken))

	assert.Equal(t, before, r.StateHash(), "rejected create must not change state")
	assert.Equal(t, uint64(1), r.BalanceOf(alice, 1))
	assert.Equal(t, "https://example.com/1.json", r.URI(1))
	assert.Equal(t, uint64(1), r.TotalPosts())
}

func TestSupplied_AllowMultipleAccumulates(t *testing.T) {
	r := New(Supplied)

	_, err := r.CreatePost(alice, 5, "https://example.com/multi.json", 2, true)
	require.NoError(t, err)
	_, err = r.CreatePost(alice, 5, "https://example.com/other.json", 3, true)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), r.BalanceOf(alice, 5))
	assert.Equal(t, uint64(1), r.TotalPosts())
	post, ok := r.Post(5)
	require.True(t, ok)
	assert.Equal(t, uint64(5), post.TotalIssued)
	assert.Equal(t, "https://example.com/multi.json", post.URI, "re-issue keeps the first uri")
}

func TestSupplied_AllowMultipleOnFirstCreate(t *testing.T) {
	r := New(Supplied)

	_, err := r.CreatePost(alice, 1, "https://example.com/multi.json", 2, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), r.BalanceOf(alice, 1))
}

func TestSupplied_TotalIssuedMatchesBalances(t *testing.T) {
	r := New(Supplied)

	_, err := r.CreatePost(alice, 7, "u", 4, false)
	require.NoError(t, err)
	_, err = r.CreatePost(bob, 7, "u", 6, true)
	require.NoError(t, err)
	_, err = r.CreatePost(alice, 7, "u", 1, true)
	require.NoError(t, err)

	post, _ := r.Post(7)
	var sum uint64
	for _, holder := range r.Holders(7) {
		sum += r.BalanceOf(holder, 7)
	}
	assert.Equal(t, post.TotalIssued, sum)
	assert.Equal(t, uint64(11), sum)
	assert.Equal(t, []string{bob, alice}, r.Holders(7))
}

func TestSupplied_TotalPostsCountsDistinctIDs(t *testing.T) {
	r := New(Supplied)

	for _, id := range []uint64{3, 1, 3, 9, 1} {
		_, _ = r.CreatePost(alice, id, "u", 1, true)
	}
	_, _ = r.CreatePost(alice, 9, "u", 1, false)

	assert.Equal(t, uint64(3), r.TotalPosts())
	assert.Equal(t, []uint64{1, 3, 9}, r.TokenIDs())
	assert.Equal(t, uint64(0), r.CurrentTokenID())
}

func TestSupplied_Overflow(t *testing.T) {
	r := New(Supplied)

	_, err := r.CreatePost(alice, 1, "u", math.MaxUint64, false)
	require.NoError(t, err)
	before := r.StateHash()

	_, err = r.CreatePost(bob, 1, "u", 1, true)
	assert.True(t, errors.Is(err, ErrQuantityOverflow))
	assert.Equal(t, before, r.StateHash())
	assert.Equal(t, uint64(0), r.BalanceOf(bob, 1))
}

func TestSequential_AssignsIDsInOrder(t *testing.T) {
	r := New(Sequential)
	assert.Equal(t, uint64(0), r.CurrentTokenID())

	for want := uint64(0); want < 3; want++ {
		// supplied id, quantity and allowMultiple are ignored
		id, err := r.CreatePost(alice, 42, "https://example.com/metadata.json", 9, true)
		require.NoError(t, err)
		assert.Equal(t, want, id)
		assert.Equal(t, want+1, r.CurrentTokenID())
		assert.Equal(t, uint64(1), r.BalanceOf(alice, id))
	}
	assert.Equal(t, uint64(3), r.TotalPosts())
	_, ok := r.Post(42)
	assert.False(t, ok)
}

func TestUpdatePost(t *testing.T) {
	r := New(Supplied)
	_, err := r.CreatePost(alice, 1, "A", 1, false)
	require.NoError(t, err)

	require.NoError(t, r.UpdatePost(1, "B"))
	assert.Equal(t, "B", r.URI(1))
	assert.Equal(t, uint64(1), r.TotalPosts())
	assert.Equal(t, uint64(1), r.BalanceOf(alice, 1))
}

func TestUpdatePost_NotFound(t *testing.T) {
	r := New(Supplied)

	err := r.UpdatePost(999, "https://example.com/nonexistent.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "", r.URI(999))
	assert.Equal(t, uint64(0), r.TotalPosts())
}

func TestSnapshotRestore(t *testing.T) {
	r := New(Supplied)
	_, _ = r.CreatePost(alice, 1, "A", 2, false)
	_, _ = r.CreatePost(bob, 1, "A", 3, true)
	_, _ = r.CreatePost(bob, 2, "B", 1, false)

	b, err := json.Marshal(r.Snapshot())
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(b, &snap))

	restored := New(Supplied)
	require.NoError(t, restored.Restore(snap))
	assert.Equal(t, r.StateHash(), restored.StateHash())
	assert.Equal(t, uint64(3), restored.BalanceOf(bob, 1))

	// restored registry keeps enforcing the duplicate policy
	_, err = restored.CreatePost(alice, 2, "C", 1, false)
	assert.True(t, errors.Is(err, ErrDuplicateToken))
}

func TestRestore_RejectsOtherVariant(t *testing.T) {
	snap := New(Sequential).Snapshot()

	err := New(Supplied).Restore(snap)
	assert.Error(t, err)
}

func TestRestore_RejectsInconsistentCounter(t *testing.T) {
	snap := Snapshot{
		Variant:    Supplied,
		TotalPosts: 2,
		Posts:      map[uint64]Post{1: {URI: "A", Exists: true, TotalIssued: 1}},
	}

	assert.Error(t, New(Supplied).Restore(snap))
}

func TestRestore_RejectsInconsistentPosts(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{
			name: "post marked absent",
			snap: Snapshot{
				Variant:    Supplied,
				TotalPosts: 0,
				Posts:      map[uint64]Post{1: {URI: "A", Exists: false}},
			},
		},
		{
			name: "issued differs from balances",
			snap: Snapshot{
				Variant:    Supplied,
				TotalPosts: 1,
				Posts:      map[uint64]Post{1: {URI: "A", Exists: true, TotalIssued: 5}},
				Balances:   map[uint64]map[string]uint64{1: {alice: 2, bob: 2}},
			},
		},
		{
			name: "balances for unknown token",
			snap: Snapshot{
				Variant:    Supplied,
				TotalPosts: 1,
				Posts:      map[uint64]Post{1: {URI: "A", Exists: true, TotalIssued: 1}},
				Balances:   map[uint64]map[string]uint64{1: {alice: 1}, 2: {bob: 1}},
			},
		},
		{
			name: "balances overflow",
			snap: Snapshot{
				Variant:    Supplied,
				TotalPosts: 1,
				Posts:      map[uint64]Post{1: {URI: "A", Exists: true, TotalIssued: 1}},
				Balances:   map[uint64]map[string]uint64{1: {alice: math.MaxUint64, bob: 2}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(Supplied)
			_, err := r.CreatePost(alice, 9, "kept", 1, false)
			require.NoError(t, err)
			before := r.StateHash()

			assert.Error(t, r.Restore(tt.snap))
			assert.Equal(t, before, r.StateHash(), "failed restore must not touch the registry")
		})
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{in: "supplied", want: Supplied},
		{in: "multi", want: Supplied},
		{in: "sequential", want: Sequential},
		{in: "single", want: Sequential},
		{in: "erc721", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
