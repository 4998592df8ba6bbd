package authority

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"mek/internal/logging"
	"mek/internal/primitives"
)

// LookupFailure classifies why a grant could not be used, mirroring the
// closed FailureType vocabulary the Guard maps these onto.
type LookupFailure int

const (
	LookupOK LookupFailure = iota
	LookupMissingGrant
	LookupExpiredGrant
	LookupRevokedGrant
	LookupExhaustedGrant
)

// Store is the kernel's authoritative record of grants and revocations.
// It is safe for concurrent use; every exported mutator holds the same
// mutex for its whole critical section so authority_version only ever
// advances alongside the mutation it describes, never ahead of or behind
// it.
type Store struct {
	mu        sync.RWMutex
	grants    map[string]*primitives.Grant
	revoked   map[string]primitives.RevocationEvent
	version   int64
	log       *zap.Logger
	clock     primitives.Clock
}

// NewStore constructs an empty authority store. A nil clock defaults to
// primitives.RealClock{}; a nil logger silences logging.
func NewStore(clock primitives.Clock, base *zap.Logger) *Store {
	if clock == nil {
		clock = primitives.RealClock{}
	}
	return &Store{
		grants:  make(map[string]*primitives.Grant),
		revoked: make(map[string]primitives.RevocationEvent),
		clock:   clock,
		log:     logging.For(base, logging.CategoryAuthority),
	}
}

// Version returns the current authority_version.
func (s *Store) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Issue records a new grant and bumps authority_version in the same
// critical section.
func (s *Store) Issue(g *primitives.Grant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.grants[g.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrGrantAlreadyExists, g.ID())
	}
	s.grants[g.ID()] = g
	s.version++
	s.log.Debug("grant issued", zap.String("grant_id", g.ID()), zap.String("principal", g.Principal()), zap.Int64("authority_version", s.version))
	return nil
}

// Lookup evaluates a grant's usability for an admission attempt without
// consuming a use. Callers that intend to proceed must still call Consume
// to spend the use atomically; Lookup alone never mutates state.
func (s *Store) Lookup(grantID string) (*primitives.Grant, LookupFailure) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.grants[grantID]
	if !ok {
		return nil, LookupMissingGrant
	}
	if g.IsExpired(s.clock.Now()) {
		return g, LookupExpiredGrant
	}
	if _, revoked := s.revoked[grantID]; revoked {
		return g, LookupRevokedGrant
	}
	if !g.HasUsesRemaining() {
		return g, LookupExhaustedGrant
	}
	return g, LookupOK
}

// Consume atomically spends one use of grantID, re-validating all the
// same conditions Lookup checks so a grant cannot be revoked or expired
// in the gap between Lookup and Consume and still be spent. Returns
// LookupOK only when a use was actually taken. Spending the last use of a
// bounded grant bumps authority_version in the same critical section.
func (s *Store) Consume(grantID string) (*primitives.Grant, LookupFailure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.grants[grantID]
	if !ok {
		return nil, LookupMissingGrant
	}
	if g.IsExpired(s.clock.Now()) {
		return g, LookupExpiredGrant
	}
	if _, revoked := s.revoked[grantID]; revoked {
		return g, LookupRevokedGrant
	}
	if !g.TryConsumeUse() {
		return g, LookupExhaustedGrant
	}
	if g.RemainingUses() == 0 {
		s.version++
		s.log.Info("grant exhausted", zap.String("grant_id", grantID), zap.Int64("authority_version", s.version))
	}
	return g, LookupOK
}

// Revoke marks grantID revoked, bumping authority_version in the same
// critical section. Revoking an already-revoked or unknown grant id
// returns ErrGrantNotFound only for the unknown case; re-revoking is a
// no-op that still returns nil, since revocation is idempotent by nature.
func (s *Store) Revoke(grantID string, reason primitives.RevocationReason, at int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.grants[grantID]; !ok {
		return fmt.Errorf("%w: %s", ErrGrantNotFound, grantID)
	}
	if _, already := s.revoked[grantID]; already {
		return nil
	}
	s.version++
	s.revoked[grantID] = primitives.RevocationEvent{
		GrantID:        grantID,
		Reason:         reason,
		RevokedAt:      at,
		AuthorityEpoch: s.version,
	}
	s.log.Info("grant revoked", zap.String("grant_id", grantID), zap.String("reason", string(reason)), zap.Int64("authority_version", s.version))
	return nil
}

// IsRevoked reports whether grantID has a recorded revocation.
func (s *Store) IsRevoked(grantID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[grantID]
	return ok
}

// RevocationFor returns the revocation event recorded for grantID, if any.
func (s *Store) RevocationFor(grantID string) (primitives.RevocationEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.revoked[grantID]
	return ev, ok
}

// GrantsForPrincipal returns every grant issued to principal, sorted by
// id for deterministic iteration order.
func (s *Store) GrantsForPrincipal(principal string) []*primitives.Grant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*primitives.Grant
	for _, g := range s.grants {
		if g.Principal() == principal {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
