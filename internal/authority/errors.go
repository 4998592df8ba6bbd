// Package authority holds the kernel's record of who may do what: every
// Grant issued to every Principal, the monotonic authority_version
// counter, and the revocation ledger. The Guard consults this package at
// steps 4 through 7 of admission and spends a use at step 11, but never
// mutates it directly; all
// writes funnel through Store's exported methods so the version bump and
// the underlying map mutation happen in one critical section.
package authority

import "errors"

var (
	// ErrGrantAlreadyExists is returned by Store.Issue when a grant id
	// collides with an existing one.
	ErrGrantAlreadyExists = errors.New("authority: grant already exists")
	// ErrGrantNotFound is returned by Store.Revoke when it targets an
	// unknown grant id. Lookup and Consume report an unknown id as
	// LookupMissingGrant instead.
	ErrGrantNotFound = errors.New("authority: grant not found")
)
