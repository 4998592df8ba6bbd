package primitives

import (
	"bytes"
	"sync/atomic"
)

// Scope is opaque to the Guard's own code: the Guard never parses scope
// bytes itself. Interpretation is delegated to a Codec such as
// PrefixScopeCodec below.
type Scope []byte

// ScopeCodec interprets Scope bytes for one family of capabilities. The
// Guard holds one configured ScopeCodec and, for a capability whose
// contract requires scope, calls Allows during admission to check the
// requested scope against the grant's scope.
type ScopeCodec interface {
	// Allows reports whether requested falls within granted according to
	// this codec's interpretation.
	Allows(granted, requested Scope) bool
}

// PrefixScopeCodec treats Scope as a filesystem-shaped path prefix: a
// grant for "/workspace" allows a request for "/workspace/report.md".
// This mirrors the directory-scoped tool permissions the reference file
// capabilities use.
type PrefixScopeCodec struct{}

// Allows implements ScopeCodec.
func (PrefixScopeCodec) Allows(granted, requested Scope) bool {
	if len(granted) == 0 {
		return false
	}
	if bytes.Equal(granted, requested) {
		return true
	}
	prefix := append(append(Scope{}, granted...), '/')
	return bytes.HasPrefix(requested, prefix)
}

// Grant is the single unit of delegated authority: one principal, one
// capability, an optional scope, an expiry, and a use budget. remaining_uses
// is represented as an atomic counter because the Authority Store must
// decrement it linearizably under concurrent admissions without giving
// two callers the same "last use" (see internal/authority).
type Grant struct {
	id             string
	principal      string
	capability     string
	scope          Scope
	issuedAt       int64
	expiresAt      int64 // 0 means never expires
	maxUses        int64 // 0 means unlimited
	remainingUses  atomic.Int64
	authorityEpoch int64 // authority_version at issuance
}

// NewGrant constructs a Grant. maxUses <= 0 means unlimited use; the
// remaining-uses counter is only consulted by the Authority Store when
// maxUses > 0.
func NewGrant(id, principal, capability string, scope Scope, issuedAt, expiresAt, maxUses, authorityEpoch int64) *Grant {
	g := &Grant{
		id:             id,
		principal:      principal,
		capability:     capability,
		scope:          append(Scope{}, scope...),
		issuedAt:       issuedAt,
		expiresAt:      expiresAt,
		maxUses:        maxUses,
		authorityEpoch: authorityEpoch,
	}
	g.remainingUses.Store(maxUses)
	return g
}

// ID returns the grant identifier.
func (g *Grant) ID() string { return g.id }

// Principal returns the principal this grant was issued to.
func (g *Grant) Principal() string { return g.principal }

// Capability returns the capability this grant authorizes.
func (g *Grant) Capability() string { return g.capability }

// Scope returns the scope bytes carried by this grant.
func (g *Grant) Scope() Scope { return append(Scope{}, g.scope...) }

// IssuedAt returns the issuance timestamp in Unix nanoseconds.
func (g *Grant) IssuedAt() int64 { return g.issuedAt }

// ExpiresAt returns the expiry timestamp in Unix nanoseconds, or 0 if the
// grant never expires.
func (g *Grant) ExpiresAt() int64 { return g.expiresAt }

// IsExpired reports whether now is at or past the grant's expiry.
func (g *Grant) IsExpired(now int64) bool {
	return g.expiresAt != 0 && now >= g.expiresAt
}

// HasUsesRemaining reports whether the grant still has a use to spend. A
// grant with unlimited uses (maxUses <= 0) always has uses remaining.
func (g *Grant) HasUsesRemaining() bool {
	if g.maxUses <= 0 {
		return true
	}
	return g.remainingUses.Load() > 0
}

// TryConsumeUse atomically decrements the remaining-use counter if and
// only if a use is available, returning false without mutating state
// when the grant is already exhausted. Unlimited-use grants always
// succeed without touching the counter.
func (g *Grant) TryConsumeUse() bool {
	if g.maxUses <= 0 {
		return true
	}
	for {
		cur := g.remainingUses.Load()
		if cur <= 0 {
			return false
		}
		if g.remainingUses.CompareAndSwap(cur, cur-1) {
			return true
		}
	}
}

// RemainingUses returns the current remaining-use count. For unlimited
// grants this returns -1.
func (g *Grant) RemainingUses() int64 {
	if g.maxUses <= 0 {
		return -1
	}
	return g.remainingUses.Load()
}

// AuthorityEpoch returns the authority_version in effect when this grant
// was issued.
func (g *Grant) AuthorityEpoch() int64 { return g.authorityEpoch }
