// Package composition sequences multiple capability invocations into one
// mechanical composition: each step is admitted independently through
// the Guard, no authority carries over from one step to the next, and
// the only supported failure policy is STRICT — the first refused step
// halts the whole composition.
package composition

import (
	"go.uber.org/zap"

	"mek/internal/failure"
	"mek/internal/logging"
	"mek/internal/primitives"
)

// Step is one capability invocation within a composition. Order is
// explicit and must be contiguous starting at zero; GrantID and Scope
// bind independently to each step, since no step inherits authority from
// the one before it.
type Step struct {
	Order      int
	Capability string
	Context    primitives.Context
	Intent     primitives.Intent
	GrantID    string
	Scope      primitives.Scope
}

// StepOutcome records what happened when one Step was admitted.
type StepOutcome struct {
	Step    Step
	Result  *primitives.Result
	Failure *primitives.FailureResult
}

// Result is the outcome of running an entire composition: every step
// that was attempted, in order, stopping at the first failure.
type Result struct {
	Outcomes []StepOutcome
	Halted   bool
}

// Succeeded reports whether every attempted step admitted successfully.
func (r Result) Succeeded() bool { return !r.Halted }

// Executor is the minimal surface composition needs from the Guard,
// kept as an interface so the engine can be tested without wiring a
// full Guard and its collaborators.
type Executor interface {
	Execute(ctx primitives.Context, intent primitives.Intent, grantID string, scope primitives.Scope) (*primitives.Result, *primitives.FailureResult)
}

// Engine runs ordered Steps through an Executor under the STRICT halt
// policy: the first step refusal stops the composition immediately,
// leaving every subsequent step unattempted.
type Engine struct {
	executor Executor
	log      *zap.Logger
}

// New constructs an Engine bound to executor.
func New(executor Executor, base *zap.Logger) *Engine {
	return &Engine{executor: executor, log: logging.For(base, logging.CategoryComposition)}
}

// Run executes steps strictly in ascending Order, halting at the first
// refusal. Before attempting any step, Run checks that Order is
// sequential and gapless — 0, 1, 2, … with no duplicates and no
// branching — and refuses the whole composition with
// FailureCompositionOrderViolation if it isn't; mechanical composition
// has no caller-supplied numbering to trust.
func (e *Engine) Run(steps []Step) Result {
	if violation, ok := firstOrderViolation(steps); ok {
		b := failure.NewBuilder(violation.Context.ID())
		b.Record(primitives.FailureCompositionOrderViolation, primitives.PhaseMEK4, primitives.ConditionCompositionOrderGap, violation.Capability, 0, "step order not sequential from zero")
		fr := b.Result()
		e.log.Info("composition refused", zap.String("reason", "order_violation"), zap.Int("step_order", violation.Order), zap.String("capability", violation.Capability))
		return Result{Outcomes: []StepOutcome{{Step: violation, Failure: &fr}}, Halted: true}
	}

	var out Result
	for _, step := range steps {
		result, failureResult := e.executor.Execute(step.Context, step.Intent, step.GrantID, step.Scope)
		outcome := StepOutcome{Step: step, Result: result, Failure: failureResult}
		out.Outcomes = append(out.Outcomes, outcome)
		if failureResult != nil {
			out.Halted = true
			e.log.Info("composition halted", zap.Int("step_order", step.Order), zap.String("capability", step.Capability))
			return out
		}
	}
	return out
}

// firstOrderViolation reports the first step whose Order breaks the
// required 0, 1, 2, … sequence, if any.
func firstOrderViolation(steps []Step) (Step, bool) {
	for i, step := range steps {
		if step.Order != i {
			return step, true
		}
	}
	return Step{}, false
}
