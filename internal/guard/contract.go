package guard

import "mek/internal/primitives"

// ExecuteFunc is a capability's actual behavior. It receives the Context
// and Intent that were admitted and returns whatever output the
// capability produces.
type ExecuteFunc func(ctx primitives.Context, intent primitives.Intent) (any, error)

// Contract pairs a capability's public descriptor with its private
// execute function. The execute field is unexported and this file is the
// only place that ever calls it (in run, below); no other package can
// reach it, forge it, or invoke it directly, because Go has no way to
// read or call an unexported struct field from outside its declaring
// package. This is what makes the Guard the sole path to execution
// rather than a mere convention callers are expected to honor.
type Contract struct {
	descriptor primitives.ContractDescriptor
	execute    ExecuteFunc
}

// NewContract builds a Contract. Only the Guard's Register method stores
// the result, and only run (in this package) ever calls its execute
// function.
func NewContract(descriptor primitives.ContractDescriptor, execute ExecuteFunc) *Contract {
	return &Contract{descriptor: descriptor, execute: execute}
}

// Descriptor returns the contract's public, inspectable half.
func (c *Contract) Descriptor() primitives.ContractDescriptor { return c.descriptor }

// run invokes the capability's execute function. It is unexported:
// nothing outside this package, including the Guard's own callers, can
// call it. Only Guard.Execute, after completing every admission step,
// ever reaches this line.
func (c *Contract) run(ctx primitives.Context, intent primitives.Intent) (any, error) {
	return c.execute(ctx, intent)
}
