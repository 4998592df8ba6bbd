// Package negative asserts what the kernel must never do by making the
// prohibited behaviors exist as functions that unconditionally panic.
// Nothing in the kernel calls these; their only purpose is to give a
// reviewer (or a test asserting on recover()) a concrete symbol to point
// at for "the kernel does not learn, adapt, retry, escalate, bypass
// friction under urgency, optimize past its own invariants, or infer an
// Intent the caller did not declare."
package negative

import "fmt"

// ProhibitedBehaviorError identifies which forbidden behavior was
// attempted.
type ProhibitedBehaviorError struct {
	Behavior string
}

// Error implements the error interface.
func (e *ProhibitedBehaviorError) Error() string {
	return fmt.Sprintf("negative: prohibited behavior invoked: %s", e.Behavior)
}

func prohibit(behavior string) {
	panic(&ProhibitedBehaviorError{Behavior: behavior})
}

// Learn would let the kernel adjust its own admission behavior from past
// outcomes. Admission logic is fixed by its contract, not by history.
func Learn(...any) { prohibit("learn") }

// Adapt would let the kernel change its invariants in response to
// context. Invariants are constant across every request.
func Adapt(...any) { prohibit("adapt") }

// Retry would let the kernel re-attempt a refused admission on the
// caller's behalf. A refusal is terminal; the caller decides whether to
// try again with a new request.
func Retry(...any) { prohibit("retry") }

// Escalate would let the kernel grant itself broader authority than a
// Grant actually carries. Authority only ever narrows through admission,
// never widens.
func Escalate(...any) { prohibit("escalate") }

// UrgencyBypass would let a caller-asserted urgency skip the friction
// ladder. Friction duration depends only on consequence and confidence.
func UrgencyBypass(...any) { prohibit("urgency_bypass") }

// Optimize would let the kernel trade a check for throughput. Every
// admission step always runs to completion or halts the whole request.
func Optimize(...any) { prohibit("optimize") }

// InferIntent would let the kernel construct an Intent the caller never
// declared. An Intent is always a caller-supplied value; the kernel never
// derives one from context, history, or inference of any kind.
func InferIntent(...any) { prohibit("infer_intent") }
