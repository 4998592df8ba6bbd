// Package snapshot implements the reality-binding layer: a point-in-time,
// content-addressed capture of a grant's state taken right before
// execution, and a re-validation check immediately before the capability
// actually runs. Binding admission to a frozen Snapshot, then re-checking
// that nothing drifted in the gap before execution, is what closes the
// kernel's TOCTOU window.
package snapshot

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"mek/internal/logging"
	"mek/internal/primitives"
)

// ErrSnapshotNotFound is returned when revalidation targets an unknown
// snapshot id.
var ErrSnapshotNotFound = errors.New("snapshot: not found")

// ErrSnapshotAlreadyConsumed is returned when a Snapshot already used for
// one execution is presented again.
var ErrSnapshotAlreadyConsumed = errors.New("snapshot: already consumed")

// ErrSnapshotDrift is returned when a grant's live state no longer
// matches the snapshot captured for it.
var ErrSnapshotDrift = errors.New("snapshot: live state diverged from capture")

// GrantView is the minimal live-state read a Store needs from the
// Authority Store to capture and revalidate a snapshot, without the
// snapshot package importing authority directly and creating a cycle
// (the Guard wires the two together).
type GrantView struct {
	AuthorityEpoch int64
	ExpiresAt      int64
	UsesLeft       int64
	Revoked        bool
}

// Store is the append-only snapshot ledger. Snapshots are never removed
// or overwritten; a Snapshot's Hash is computed once at Capture and never
// recomputed, so Revalidate always compares against the original capture.
type Store struct {
	mu        sync.Mutex
	snapshots map[string]*primitives.Snapshot
	order     []string
	log       *zap.Logger
	clock     primitives.Clock
}

// NewStore constructs an empty snapshot store.
func NewStore(clock primitives.Clock, base *zap.Logger) *Store {
	if clock == nil {
		clock = primitives.RealClock{}
	}
	return &Store{
		snapshots: make(map[string]*primitives.Snapshot),
		log:       logging.For(base, logging.CategorySnapshot),
		clock:     clock,
	}
}

// Capture appends a new Snapshot for grantID built from view, and returns
// it. The hash is computed over every field the Revalidate call will
// later re-derive and compare. If id is already recorded, the existing
// Snapshot is returned unchanged and nothing is appended.
func (s *Store) Capture(id, grantID string, view GrantView) *primitives.Snapshot {
	snap := &primitives.Snapshot{
		ID:             id,
		GrantID:        grantID,
		CapturedAt:     s.clock.Now(),
		AuthorityEpoch: view.AuthorityEpoch,
		GrantExpiresAt: view.ExpiresAt,
		GrantUsesLeft:  view.UsesLeft,
		GrantRevoked:   view.Revoked,
	}
	snap.Hash = hashSnapshot(snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.snapshots[id]; ok {
		return existing
	}
	s.snapshots[id] = snap
	s.order = append(s.order, id)
	s.log.Debug("snapshot captured", zap.String("snapshot_id", id), zap.String("grant_id", grantID), zap.String("hash", snap.Hash))
	return snap
}

// Revalidate checks that the live view presented still matches the
// snapshot originally captured for id, and that the snapshot has not
// already been consumed by a prior execution. On success it marks the
// snapshot consumed, atomically closing the window between revalidation
// and execution against reuse.
func (s *Store) Revalidate(id string, live GrantView) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[id]
	if !ok {
		return ErrSnapshotNotFound
	}
	if snap.Consumed() {
		return ErrSnapshotAlreadyConsumed
	}

	liveSnap := &primitives.Snapshot{
		ID:             snap.ID,
		GrantID:        snap.GrantID,
		CapturedAt:     snap.CapturedAt,
		AuthorityEpoch: live.AuthorityEpoch,
		GrantExpiresAt: live.ExpiresAt,
		GrantUsesLeft:  live.UsesLeft,
		GrantRevoked:   live.Revoked,
	}
	if hashSnapshot(liveSnap) != snap.Hash {
		s.log.Warn("snapshot drift detected", zap.String("snapshot_id", id))
		return ErrSnapshotDrift
	}

	snap.MarkConsumed()
	return nil
}

// Get returns the snapshot recorded for id, if any.
func (s *Store) Get(id string) (*primitives.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snapshots[id]
	return snap, ok
}

// Count returns the number of snapshots ever captured.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

func hashSnapshot(s *primitives.Snapshot) string {
	return primitives.Hash(map[string]any{
		"id":              s.ID,
		"grant_id":        s.GrantID,
		"captured_at":     s.CapturedAt,
		"authority_epoch": s.AuthorityEpoch,
		"grant_expires_at": s.GrantExpiresAt,
		"grant_uses_left": s.GrantUsesLeft,
		"grant_revoked":   s.GrantRevoked,
	})
}
