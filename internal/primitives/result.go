package primitives

// Result is the successful, admitted outcome of evaluating one request:
// the snapshot the decision was bound to, and whatever value the
// capability's execution produced.
type Result struct {
	ContextID  string
	SnapshotID string
	Capability string
	Output     any
	CompletedAt int64
}
