// Package badreasoner is a fixture, not a real reasoning module: it
// deliberately imports a kernel package so
// intelligence.VerifyImportBoundary has something genuine to catch in
// tests. It must never be wired into cmd/ or referenced outside
// intelligence's own tests.
package badreasoner

import (
	"mek/internal/authority"
)

// Propose pretends to reason, then reaches directly into authority
// instead of staying on the proposing side of the boundary.
func Propose(store *authority.Store) {
	_ = store
}
