// Package failure provides construction helpers for FailureEvents and
// FailureCompositions. The types themselves live in internal/primitives
// as frozen value types; this package is where the Guard and Composition
// Engine build them up in detection order without duplicating that
// ordering logic at every call site.
package failure

import "mek/internal/primitives"

// Builder accumulates FailureEvents for one context in detection order.
// It is not safe for concurrent use by design: a single admission
// evaluation is strictly serial, so a Builder never needs a mutex.
type Builder struct {
	contextID string
	events    []primitives.FailureEvent
}

// NewBuilder starts a Builder for contextID.
func NewBuilder(contextID string) *Builder {
	return &Builder{contextID: contextID}
}

// Record appends a new FailureEvent built from the given fields.
func (b *Builder) Record(typ primitives.FailureType, phase primitives.Phase, condition primitives.TriggeringCondition, capability string, detectedAt int64, detail string) {
	b.events = append(b.events, primitives.FailureEvent{
		Type:                typ,
		Phase:               phase,
		TriggeringCondition: condition,
		ContextID:           b.contextID,
		CapabilityName:      capability,
		DetectedAt:          detectedAt,
		Detail:              detail,
	})
}

// HasFailed reports whether any event has been recorded.
func (b *Builder) HasFailed() bool { return len(b.events) > 0 }

// Build finalizes the accumulated events into a FailureComposition. The
// events are not deduplicated or reordered: the composition preserves
// exactly the sequence Record was called in.
func (b *Builder) Build() primitives.FailureComposition {
	events := make([]primitives.FailureEvent, len(b.events))
	copy(events, b.events)
	return primitives.FailureComposition{ContextID: b.contextID, Events: events}
}

// Result finalizes the Builder into a FailureResult.
func (b *Builder) Result() primitives.FailureResult {
	return primitives.FailureResult{ContextID: b.contextID, Composition: b.Build()}
}
