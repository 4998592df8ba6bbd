package primitives

// RevocationEvent records that a grant's authority was withdrawn. Once
// appended to the Authority Store, a RevocationEvent is never retracted:
// revocation is monotonic, matching authority_version's own monotonicity.
type RevocationEvent struct {
	GrantID        string
	Reason         RevocationReason
	RevokedAt      int64
	AuthorityEpoch int64 // authority_version immediately after this revocation
}
