package primitives

// EvidenceElement is one link in an Evidence Bundle's hash chain: a
// recorded fact (an admission Result, a FailureEvent, a RevocationEvent,
// ...) together with the running hash that covers it and everything
// before it. The chain-building logic itself lives in internal/evidence,
// next to the only code that ever appends a link; this type is the pure
// data shape that travels with an exported bundle.
type EvidenceElement struct {
	Sequence  int
	Kind      string
	Payload   any
	Hash      string // H_i = hash(H_{i-1} || canonical(Payload))
}

// EvidenceBundle is an ordered, hash-chained record of everything that
// happened while evaluating one or more admission requests. H_0 is
// derived from the bundle's own identity so two bundles with identical
// contents but different IDs never collide.
type EvidenceBundle struct {
	ID        string
	CreatedAt int64
	Elements  []EvidenceElement
	RootHash  string // hash of the final element, or the bundle's H_0 if empty
}
