// Package intelligence defines the one-way boundary between reasoning
// code and the kernel: a Proposal is the only shape a reasoning module is
// allowed to hand back, and VerifyImportBoundary is the static check that
// a reasoning package's own imports never name a kernel package. No
// example repo in the retrieval pack ships a third-party Go
// import-graph analyzer, so this one check is built on go/parser and
// go/ast from the standard library rather than an ecosystem dependency.
package intelligence

// Proposal is opaque on purpose: a reasoning module can suggest a
// capability and intent fields, but a Proposal carries no authority of
// its own. Turning a Proposal into an actual admission attempt always
// means constructing a real primitives.Intent and calling Guard.Execute
// through the normal path; nothing about a Proposal skips admission.
type Proposal struct {
	SuggestedCapability string
	SuggestedFields     map[string]string
	Rationale           string
}
