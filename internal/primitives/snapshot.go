package primitives

// Snapshot is a content-addressed, point-in-time capture of the reality
// an admission decision was made against: the grant's state and the
// authority_version it was read at. Its Hash is the canonical digest of
// its fields, computed once at construction and never recomputed, so a
// re-validation step can detect drift by comparing hashes rather than
// re-deriving one from live state that may have since changed again.
type Snapshot struct {
	ID             string
	GrantID        string
	CapturedAt     int64
	AuthorityEpoch int64
	GrantExpiresAt int64
	GrantUsesLeft  int64
	GrantRevoked   bool
	Hash           string
	consumed       bool
}

// MarkConsumed flags this snapshot as spent. A consumed Snapshot must
// never be accepted again by the Guard's re-validation step
// (SNAPSHOT_REUSE_ATTEMPT).
func (s *Snapshot) MarkConsumed() { s.consumed = true }

// Consumed reports whether this snapshot has already been used for one
// admission.
func (s *Snapshot) Consumed() bool { return s.consumed }
