// Package logging provides category-scoped structured logging for the
// kernel. Unlike the teacher application's file-per-category logger, the
// kernel has no global singleton: a Kernel is constructed with one
// *zap.Logger and every package derives a named child from it.
package logging

import "go.uber.org/zap"

// Category names a logical subsystem. Kept as a plain string (not a
// closed enum) because new subsystems may be added by embedding clients
// without touching this package — unlike FailureType, a logging category
// carries no admission semantics.
type Category string

const (
	CategoryGuard        Category = "guard"
	CategoryAuthority     Category = "authority"
	CategorySnapshot      Category = "snapshot"
	CategoryObserver      Category = "observer"
	CategoryFriction      Category = "friction"
	CategoryComposition   Category = "composition"
	CategoryEvidence      Category = "evidence"
	CategoryIntelligence  Category = "intelligence"
	CategoryKernel        Category = "kernel"
)

// For logs to a named category. Pass zap.NewNop() as the base logger to
// silence output entirely (the default for package-level constructors
// used in tests).
func For(base *zap.Logger, category Category) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return base.Named(string(category))
}

// NewDevelopment is a convenience constructor for examples and manual
// testing; kernel code never calls this itself, only callers building a
// Kernel choose a logger.
func NewDevelopment() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
