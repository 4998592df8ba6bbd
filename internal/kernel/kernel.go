// Package kernel wires every component — authority, snapshots, the
// observer hub, the guard, composition, and evidence — into one explicit
// handle. There is no global singleton anywhere in this module: every
// package above takes its collaborators as constructor arguments, and
// Kernel is simply the place that constructs and holds all of them
// together for an embedding client.
package kernel

import (
	"go.uber.org/zap"

	"mek/internal/authority"
	"mek/internal/composition"
	"mek/internal/config"
	"mek/internal/evidence"
	"mek/internal/friction"
	"mek/internal/guard"
	"mek/internal/logging"
	"mek/internal/observer"
	"mek/internal/primitives"
	"mek/internal/snapshot"
)

// Kernel is the fully wired runtime: one Guard, its Authority and
// Snapshot stores, one Observer Hub, and a Composition Engine built on
// top of the same Guard. Construct one per embedding process; nothing in
// this package reaches for ambient/global state.
type Kernel struct {
	cfg       *config.KernelConfig
	guard     *guard.Guard
	engine    *composition.Engine
	evidence  *evidence.Builder
	log       *zap.Logger
}

// Option customizes kernel construction.
type Option func(*options)

type options struct {
	clock  primitives.Clock
	waiter friction.Waiter
	codec  primitives.ScopeCodec
}

// WithClock overrides the kernel's time source. Intended for tests.
func WithClock(c primitives.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithFrictionWaiter overrides the friction wait implementation. Intended
// for tests that cannot afford to block for the real ladder durations.
func WithFrictionWaiter(w friction.Waiter) Option {
	return func(o *options) { o.waiter = w }
}

// WithScopeCodec overrides the scope interpretation codec.
func WithScopeCodec(c primitives.ScopeCodec) Option {
	return func(o *options) { o.codec = c }
}

// New constructs a Kernel from an ambient KernelConfig, a structured
// logger, and a bundle identifier used to seed the evidence chain. A nil
// cfg falls back to config.DefaultConfig(); a nil logger silences all
// logging.
func New(cfg *config.KernelConfig, base *zap.Logger, bundleID string, bundleCreatedAt int64, opts ...Option) *Kernel {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	clock := o.clock
	if clock == nil {
		clock = primitives.RealClock{}
	}
	waiter := o.waiter
	if waiter == nil {
		waiter = friction.RealWaiter{}
	}
	codec := o.codec
	if codec == nil {
		codec = primitives.PrefixScopeCodec{}
	}

	authStore := authority.NewStore(clock, base)
	snapStore := snapshot.NewStore(clock, base)
	hub := observer.NewHub(cfg.Observer.QueueSize, base)

	g := guard.New(guard.Config{
		AuthorityStore: authStore,
		SnapshotStore:  snapStore,
		Hub:            hub,
		Clock:          clock,
		Waiter:         waiter,
		ScopeCodec:     codec,
		Logger:         base,
	})

	k := &Kernel{
		cfg:      cfg,
		guard:    g,
		engine:   composition.New(g, base),
		evidence: evidence.NewBuilder(bundleID, bundleCreatedAt, base),
		log:      logging.For(base, logging.CategoryKernel),
	}
	return k
}

// Guard returns the kernel's single admission authority.
func (k *Kernel) Guard() *guard.Guard { return k.guard }

// Engine returns the composition engine built over this kernel's Guard.
func (k *Kernel) Engine() *composition.Engine { return k.engine }

// Execute runs one admission through the Guard and appends the outcome
// to the kernel's evidence chain before returning it.
func (k *Kernel) Execute(ctx primitives.Context, intent primitives.Intent, grantID string, scope primitives.Scope) (*primitives.Result, *primitives.FailureResult) {
	result, failureResult := k.guard.Execute(ctx, intent, grantID, scope)
	if failureResult != nil {
		k.evidence.Append("failure", *failureResult)
		return nil, failureResult
	}
	k.evidence.Append("result", *result)
	return result, nil
}

// Run executes an ordered composition and appends every step outcome to
// the evidence chain in order, stopping where the engine itself stops.
func (k *Kernel) Run(steps []composition.Step) composition.Result {
	result := k.engine.Run(steps)
	for _, outcome := range result.Outcomes {
		if outcome.Failure != nil {
			k.evidence.Append("composition_step_failure", *outcome.Failure)
		} else {
			k.evidence.Append("composition_step_result", *outcome.Result)
		}
	}
	return result
}

// EvidenceBundle returns a snapshot of the kernel's evidence chain as it
// stands right now.
func (k *Kernel) EvidenceBundle() primitives.EvidenceBundle {
	return k.evidence.Bundle()
}
