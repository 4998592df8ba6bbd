// Package evidence builds the hash-chained record of kernel activity: a
// Bundle where each appended element's hash covers every element before
// it, so altering or removing any one entry breaks the chain from that
// point forward. The chaining scheme (H_0 derived from bundle identity,
// H_i = hash(H_{i-1} || canonical(element))) is grounded on the
// parent-hash / decision-hash pattern used for escalation decisions in
// the constitutional-kernel reference material, generalized here from a
// single linear ledger to an explicit Bundle a caller can export and
// verify independently of the kernel that produced it.
package evidence

import (
	"errors"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"mek/internal/logging"
	"mek/internal/primitives"
)

// ErrChainBroken is returned by Verify when a bundle's recorded hashes do
// not match a fresh recomputation.
var ErrChainBroken = errors.New("evidence: hash chain verification failed")

// ErrMalformedBundle is returned by Import and VerifyBytes when the wire
// bytes do not even decode into an EvidenceBundle shape, as distinct from
// decoding fine but failing the hash chain.
var ErrMalformedBundle = errors.New("evidence: malformed bundle bytes")

// Builder constructs one EvidenceBundle, appending elements one at a time
// and maintaining the running hash. Append and Bundle are guarded by a
// mutex, so concurrent admissions through one Kernel may append to the
// same Builder.
type Builder struct {
	mu       sync.Mutex
	id       string
	createdAt int64
	elements []primitives.EvidenceElement
	running  string
	log      *zap.Logger
}

// NewBuilder starts a Builder for a bundle identified by id, created at
// createdAt. H_0 is derived from the bundle's own identity so two
// bundles with identical contents but different ids never collide.
func NewBuilder(id string, createdAt int64, base *zap.Logger) *Builder {
	h0 := primitives.Hash(map[string]any{"bundle_id": id, "created_at": createdAt})
	return &Builder{
		id:        id,
		createdAt: createdAt,
		running:   h0,
		log:       logging.For(base, logging.CategoryEvidence),
	}
}

// Append adds one element of the given kind with the given payload,
// computing its hash over the running chain hash and the element's
// canonical form.
func (b *Builder) Append(kind string, payload any) primitives.EvidenceElement {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := primitives.HashBytes(append([]byte(b.running), primitives.Canonicalize(payload)...))
	elem := primitives.EvidenceElement{
		Sequence: len(b.elements),
		Kind:     kind,
		Payload:  payload,
		Hash:     next,
	}
	b.elements = append(b.elements, elem)
	b.running = next
	b.log.Debug("evidence element appended", zap.Int("sequence", elem.Sequence), zap.String("kind", kind))
	return elem
}

// Bundle finalizes the accumulated elements into an EvidenceBundle.
// Calling Bundle does not prevent further Append calls; each call
// captures a snapshot of the chain as it stands at that moment.
func (b *Builder) Bundle() primitives.EvidenceBundle {
	b.mu.Lock()
	defer b.mu.Unlock()

	elements := make([]primitives.EvidenceElement, len(b.elements))
	copy(elements, b.elements)
	root := b.running
	return primitives.EvidenceBundle{
		ID:        b.id,
		CreatedAt: b.createdAt,
		Elements:  elements,
		RootHash:  root,
	}
}

// Verify recomputes a bundle's hash chain from scratch and reports
// whether every element's recorded hash matches. Verify is pure: it
// performs no I/O and mutates nothing, so embedding clients can run it
// against an exported bundle with no dependency on the kernel instance
// that produced it.
func Verify(bundle primitives.EvidenceBundle) error {
	running := primitives.Hash(map[string]any{"bundle_id": bundle.ID, "created_at": bundle.CreatedAt})
	for i, elem := range bundle.Elements {
		if elem.Sequence != i {
			return ErrChainBroken
		}
		next := primitives.HashBytes(append([]byte(running), primitives.Canonicalize(elem.Payload)...))
		if next != elem.Hash {
			return ErrChainBroken
		}
		running = next
	}
	if len(bundle.Elements) > 0 && running != bundle.RootHash {
		return ErrChainBroken
	}
	return nil
}

// Export serializes a bundle to its wire form. The wire format is YAML
// (the same codec the kernel already uses for configuration), chosen
// over Canonicalize because Canonicalize is a one-way hash input, not a
// decodable format: Export/Import need a real round trip, Canonicalize
// only needs to agree on bytes-to-hash.
func Export(bundle primitives.EvidenceBundle) ([]byte, error) {
	return yaml.Marshal(bundle)
}

// Import deserializes wire bytes produced by Export back into an
// EvidenceBundle. A decode failure is reported as ErrMalformedBundle
// rather than the underlying yaml error, so callers can distinguish
// "not even a bundle" from "a bundle whose chain doesn't verify."
func Import(data []byte) (primitives.EvidenceBundle, error) {
	var bundle primitives.EvidenceBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return primitives.EvidenceBundle{}, ErrMalformedBundle
	}
	if bundle.ID == "" && len(bundle.Elements) == 0 && bundle.RootHash == "" {
		return primitives.EvidenceBundle{}, ErrMalformedBundle
	}
	return bundle, nil
}

// VerifyOutcome classifies the three-way result of verifying exported
// bundle bytes: the bytes decode and the chain holds, the bytes decode
// but the chain is broken, or the bytes never decoded into a bundle at
// all.
type VerifyOutcome int

const (
	VerifyOK VerifyOutcome = iota
	VerifyMismatch
	VerifyMalformed
)

// String implements fmt.Stringer.
func (o VerifyOutcome) String() string {
	switch o {
	case VerifyOK:
		return "ok"
	case VerifyMismatch:
		return "mismatch"
	case VerifyMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// VerifyBytes is the bytes-in counterpart to Verify: it imports data and
// runs the same hash-chain check, collapsing "didn't decode" and "decoded
// but chain broke" into the two distinct VerifyOutcome cases a caller
// needs to tell apart (a bit flipped in the serialized payload produces
// VerifyMismatch; truncated or corrupt bytes produce VerifyMalformed).
func VerifyBytes(data []byte) VerifyOutcome {
	bundle, err := Import(data)
	if err != nil {
		return VerifyMalformed
	}
	if err := Verify(bundle); err != nil {
		return VerifyMismatch
	}
	return VerifyOK
}
