// Package guard implements the admission pipeline: the single,
// non-bypassable sequence every capability invocation passes through
// before its execute function ever runs. Steps are evaluated strictly in
// order and the first one that fails halts the whole evaluation — later
// steps are never reached once an earlier one refuses.
package guard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mek/internal/authority"
	"mek/internal/failure"
	"mek/internal/friction"
	"mek/internal/logging"
	"mek/internal/observer"
	"mek/internal/primitives"
	"mek/internal/snapshot"
)

// Per-consequence confidence floors. A capability whose consequence is
// LOW has no floor at all: any declared confidence in [0, 1] is
// admissible. HIGH and MEDIUM each require a minimum declared confidence
// before the request is even allowed to pay the friction wait.
const (
	confidenceThresholdHigh   = 0.7
	confidenceThresholdMedium = 0.5
)

// thresholdFor returns the minimum declared confidence consequence
// requires, and whether a floor is enforced at all.
func thresholdFor(consequence primitives.Consequence) (threshold float64, enforced bool) {
	switch consequence {
	case primitives.ConsequenceHigh:
		return confidenceThresholdHigh, true
	case primitives.ConsequenceMedium:
		return confidenceThresholdMedium, true
	default:
		return 0, false
	}
}

// Guard is the kernel's sole admission authority. Capabilities register a
// Contract with it once at startup; every invocation after that goes
// through Execute, which is the only code path able to call a
// registered Contract's execute function.
type Guard struct {
	mu             sync.RWMutex
	contracts      map[string]*Contract
	authorityStore *authority.Store
	snapshotStore  *snapshot.Store
	hub            *observer.Hub
	clock          primitives.Clock
	waiter         friction.Waiter
	scopeCodec     primitives.ScopeCodec
	log            *zap.Logger
}

// Config bundles the collaborators a Guard needs. Every field is
// optional; nil collaborators get reasonable defaults (a real clock, a
// real sleeping friction waiter, a no-op observer hub, and prefix scope
// matching). The confidence floor is not configurable: it is fixed per
// consequence level by thresholdFor.
type Config struct {
	AuthorityStore *authority.Store
	SnapshotStore  *snapshot.Store
	Hub            *observer.Hub
	Clock          primitives.Clock
	Waiter         friction.Waiter
	ScopeCodec     primitives.ScopeCodec
	Logger         *zap.Logger
}

// New constructs a Guard from cfg.
func New(cfg Config) *Guard {
	clock := cfg.Clock
	if clock == nil {
		clock = primitives.RealClock{}
	}
	waiter := cfg.Waiter
	if waiter == nil {
		waiter = friction.RealWaiter{}
	}
	codec := cfg.ScopeCodec
	if codec == nil {
		codec = primitives.PrefixScopeCodec{}
	}
	authStore := cfg.AuthorityStore
	if authStore == nil {
		authStore = authority.NewStore(clock, cfg.Logger)
	}
	snapStore := cfg.SnapshotStore
	if snapStore == nil {
		snapStore = snapshot.NewStore(clock, cfg.Logger)
	}
	hub := cfg.Hub
	if hub == nil {
		hub = observer.NewHub(0, cfg.Logger)
	}
	return &Guard{
		contracts:      make(map[string]*Contract),
		authorityStore: authStore,
		snapshotStore:  snapStore,
		hub:            hub,
		clock:          clock,
		waiter:         waiter,
		scopeCodec:     codec,
		log:            logging.For(cfg.Logger, logging.CategoryGuard),
	}
}

// Register records a capability's Contract. It must be called before any
// Intent names that capability; registering the same name twice is a
// programmer error, reported as a Go error rather than a FailureEvent.
func (g *Guard) Register(c *Contract) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	name := c.Descriptor().Name()
	if _, exists := g.contracts[name]; exists {
		return fmt.Errorf("%w: %s", ErrCapabilityAlreadyRegistered, name)
	}
	g.contracts[name] = c
	return nil
}

// AuthorityStore exposes the underlying authority store so embedding
// clients can issue and revoke grants. The Guard itself only ever reads
// from it through Lookup/Consume during Execute.
func (g *Guard) AuthorityStore() *authority.Store { return g.authorityStore }

// Hub exposes the observer hub for subscription.
func (g *Guard) Hub() *observer.Hub { return g.hub }

// Execute runs the full twelve-step admission sequence for one request,
// binding grantID's authority to ctx and intent. It returns exactly one
// of a *primitives.Result or a *primitives.FailureResult, never both and
// never neither.
func (g *Guard) Execute(ctx primitives.Context, intent primitives.Intent, grantID string, requestedScope primitives.Scope) (*primitives.Result, *primitives.FailureResult) {
	b := failure.NewBuilder(ctx.ID())
	now := g.clock.Now()

	// Step 1: context validity.
	if ctx.IsZero() {
		b.Record(primitives.FailureMissingContext, primitives.PhaseMEK0, primitives.ConditionContextMissing, intent.Capability(), now, "context not constructed")
		return g.refuse(b)
	}

	// Step 2: intent declaration.
	if intent.IsZero() {
		b.Record(primitives.FailureMissingIntent, primitives.PhaseMEK0, primitives.ConditionIntentMissing, "", now, "intent not declared")
		return g.refuse(b)
	}

	g.mu.RLock()
	contract, known := g.contracts[intent.Capability()]
	g.mu.RUnlock()
	if !known {
		b.Record(primitives.FailureUnknownCapability, primitives.PhaseMEK0, primitives.ConditionCapabilityUnknown, intent.Capability(), now, "no contract registered")
		return g.refuse(b)
	}

	if mismatch := fieldMismatch(contract.Descriptor().RequiredFields(), intent.Fields()); mismatch != "" {
		b.Record(primitives.FailureInvalidIntent, primitives.PhaseMEK0, primitives.ConditionIntentFieldMismatch, intent.Capability(), now, mismatch)
		return g.refuse(b)
	}

	// Step 3: principal presence.
	if ctx.Principal() == "" {
		b.Record(primitives.FailureMissingPrincipal, primitives.PhaseMEK2, primitives.ConditionPrincipalEmpty, intent.Capability(), now, "context carries no principal")
		return g.refuse(b)
	}

	// Steps 4-7: grant existence, not expired, not revoked, remaining uses.
	grant, lookupFailure := g.authorityStore.Lookup(grantID)
	switch lookupFailure {
	case authority.LookupMissingGrant:
		b.Record(primitives.FailureMissingGrant, primitives.PhaseMEK2, primitives.ConditionGrantNotFound, intent.Capability(), now, grantID)
		return g.refuse(b)
	case authority.LookupExpiredGrant:
		b.Record(primitives.FailureExpiredGrant, primitives.PhaseMEK2, primitives.ConditionGrantExpired, intent.Capability(), now, grantID)
		return g.refuse(b)
	case authority.LookupRevokedGrant:
		b.Record(primitives.FailureRevokedGrant, primitives.PhaseMEK2, primitives.ConditionGrantRevoked, intent.Capability(), now, grantID)
		return g.refuse(b)
	case authority.LookupExhaustedGrant:
		b.Record(primitives.FailureExhaustedGrant, primitives.PhaseMEK2, primitives.ConditionGrantExhausted, intent.Capability(), now, grantID)
		return g.refuse(b)
	}

	if grant.Capability() != intent.Capability() {
		b.Record(primitives.FailureInvalidGrantScope, primitives.PhaseMEK2, primitives.ConditionGrantScopeInvalid, intent.Capability(), now, "grant capability mismatch")
		return g.refuse(b)
	}
	if contract.Descriptor().RequiresScope() && !g.scopeCodec.Allows(grant.Scope(), requestedScope) {
		b.Record(primitives.FailureInvalidGrantScope, primitives.PhaseMEK2, primitives.ConditionGrantScopeInvalid, intent.Capability(), now, "requested scope exceeds grant")
		return g.refuse(b)
	}

	// Step 8: confidence gate.
	if !intent.HasConfidence() {
		b.Record(primitives.FailureMissingConfidence, primitives.PhaseMEK0, primitives.ConditionConfidenceAbsent, intent.Capability(), now, "confidence not declared")
		return g.refuse(b)
	}
	if intent.Confidence() < 0 || intent.Confidence() > 1 {
		b.Record(primitives.FailureInvalidConfidence, primitives.PhaseMEK0, primitives.ConditionConfidenceOutOfRange, intent.Capability(), now, "confidence out of [0,1]")
		return g.refuse(b)
	}
	if threshold, enforced := thresholdFor(contract.Descriptor().Consequence()); enforced && intent.Confidence() < threshold {
		b.Record(primitives.FailureConfidenceThresholdExceeded, primitives.PhaseMEK0, primitives.ConditionConfidenceBelowThreshold, intent.Capability(), now, "confidence below floor")
		return g.refuse(b)
	}

	// Step 9: friction gate. A genuine blocking wait; the duration is
	// deterministic from consequence and confidence alone.
	friction.Observe(g.waiter, contract.Descriptor().Consequence(), intent.Confidence())

	// Step 10: snapshot creation.
	snapID := uuid.NewString()
	gv := snapshotViewOf(grant, g.authorityStore.IsRevoked(grant.ID()), g.authorityStore.Version())
	snap := g.snapshotStore.Capture(snapID, grant.ID(), gv)

	// Step 11: snapshot re-validation immediately before execution, and
	// the atomic use-consumption that closes the TOCTOU window between
	// capture and execute.
	liveGV := snapshotViewOf(grant, g.authorityStore.IsRevoked(grant.ID()), g.authorityStore.Version())
	if err := g.snapshotStore.Revalidate(snap.ID, liveGV); err != nil {
		if errors.Is(err, snapshot.ErrSnapshotAlreadyConsumed) {
			b.Record(primitives.FailureSnapshotReuseAttempt, primitives.PhaseMEK3, primitives.ConditionSnapshotReuse, intent.Capability(), g.clock.Now(), err.Error())
			return g.refuse(b)
		}
		b.Record(primitives.FailureSnapshotHashMismatch, primitives.PhaseMEK3, primitives.ConditionSnapshotHashMismatch, intent.Capability(), g.clock.Now(), err.Error())
		return g.refuse(b)
	}

	if _, consumeFailure := g.authorityStore.Consume(grant.ID()); consumeFailure != authority.LookupOK {
		switch consumeFailure {
		case authority.LookupExpiredGrant:
			b.Record(primitives.FailureExpiredGrant, primitives.PhaseMEK2, primitives.ConditionGrantExpired, intent.Capability(), g.clock.Now(), "grant expired during friction wait")
		case authority.LookupRevokedGrant:
			b.Record(primitives.FailureRevokedGrant, primitives.PhaseMEK2, primitives.ConditionGrantRevoked, intent.Capability(), g.clock.Now(), "grant revoked during friction wait")
		default:
			b.Record(primitives.FailureExhaustedGrant, primitives.PhaseMEK2, primitives.ConditionGrantExhausted, intent.Capability(), g.clock.Now(), "use consumed concurrently")
		}
		return g.refuse(b)
	}

	// Step 12: execute. This is the only call site in the whole module
	// that can reach Contract.run.
	output, err := contract.run(ctx, intent)
	if err != nil {
		b.Record(primitives.FailureExecutionError, primitives.PhaseMEK0, primitives.ConditionCapabilityExecutionPanic, intent.Capability(), g.clock.Now(), err.Error())
		return g.refuse(b)
	}

	result := &primitives.Result{
		ContextID:   ctx.ID(),
		SnapshotID:  snap.ID,
		Capability:  intent.Capability(),
		Output:      output,
		CompletedAt: g.clock.Now(),
	}
	g.hub.Emit(observer.Event{Kind: "result", ContextID: ctx.ID(), Payload: *result})
	return result, nil
}

func (g *Guard) refuse(b *failure.Builder) (*primitives.Result, *primitives.FailureResult) {
	res := b.Result()
	g.hub.Emit(observer.Event{Kind: "failure", ContextID: res.ContextID, Payload: res})
	return nil, &res
}

// fieldMismatch reports the first discrepancy between an Intent's declared
// fields and a Contract's required fields — either direction, no extra and
// no missing — or "" if they match exactly.
func fieldMismatch(required []string, declared map[string]string) string {
	req := make(map[string]struct{}, len(required))
	for _, f := range required {
		req[f] = struct{}{}
		if _, ok := declared[f]; !ok {
			return fmt.Sprintf("missing required field %q", f)
		}
	}
	for f := range declared {
		if _, ok := req[f]; !ok {
			return fmt.Sprintf("unexpected field %q", f)
		}
	}
	return ""
}

func snapshotViewOf(g *primitives.Grant, revoked bool, authorityVersion int64) snapshot.GrantView {
	return snapshot.GrantView{
		AuthorityEpoch: authorityVersion,
		ExpiresAt:      g.ExpiresAt(),
		UsesLeft:       g.RemainingUses(),
		Revoked:        revoked,
	}
}
