package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mek/internal/primitives"
)

func TestCaptureThenRevalidateSameStateSucceeds(t *testing.T) {
	s := NewStore(primitives.NewFixedClock(0), nil)
	view := GrantView{AuthorityEpoch: 1, ExpiresAt: 0, UsesLeft: 5, Revoked: false}
	snap := s.Capture("s1", "g1", view)
	require.NotEmpty(t, snap.Hash)

	err := s.Revalidate("s1", view)
	assert.NoError(t, err)
}

func TestRevalidateDetectsDrift(t *testing.T) {
	s := NewStore(primitives.NewFixedClock(0), nil)
	view := GrantView{AuthorityEpoch: 1, ExpiresAt: 0, UsesLeft: 5, Revoked: false}
	s.Capture("s1", "g1", view)

	drifted := view
	drifted.Revoked = true
	err := s.Revalidate("s1", drifted)
	assert.ErrorIs(t, err, ErrSnapshotDrift)
}

func TestRevalidateRejectsReuse(t *testing.T) {
	s := NewStore(primitives.NewFixedClock(0), nil)
	view := GrantView{AuthorityEpoch: 1, ExpiresAt: 0, UsesLeft: 5, Revoked: false}
	s.Capture("s1", "g1", view)

	require.NoError(t, s.Revalidate("s1", view))
	err := s.Revalidate("s1", view)
	assert.ErrorIs(t, err, ErrSnapshotAlreadyConsumed)
}

func TestRevalidateUnknownSnapshot(t *testing.T) {
	s := NewStore(primitives.NewFixedClock(0), nil)
	err := s.Revalidate("missing", GrantView{})
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestStoreIsAppendOnly(t *testing.T) {
	s := NewStore(primitives.NewFixedClock(0), nil)
	s.Capture("s1", "g1", GrantView{})
	s.Capture("s2", "g1", GrantView{})
	assert.Equal(t, 2, s.Count())
}
