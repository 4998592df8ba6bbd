package primitives

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrEmptyContextID is returned when a Context is constructed without an
// identifier.
var ErrEmptyContextID = errors.New("primitives: context id must not be empty")

// Context binds an admission request to a caller-supplied identity. It is
// frozen after construction: every field is unexported and readable only
// through accessors, so nothing downstream can mutate a Context once the
// Guard has started evaluating it.
type Context struct {
	id        string
	principal string
	createdAt int64
}

// NewContext validates and constructs a Context. principal may be empty
// at this layer; the Guard itself rejects an empty principal as
// MISSING_PRINCIPAL during admission, not here, so that constructing a
// Context never duplicates admission logic.
func NewContext(id string, principal string, createdAt int64) (Context, error) {
	if id == "" {
		return Context{}, ErrEmptyContextID
	}
	return Context{id: id, principal: principal, createdAt: createdAt}, nil
}

// NewContextID generates a fresh random context identifier.
func NewContextID() string {
	return uuid.NewString()
}

// ID returns the context identifier.
func (c Context) ID() string { return c.id }

// Principal returns the caller identity attached to this context.
func (c Context) Principal() string { return c.principal }

// CreatedAt returns the Unix-nanosecond timestamp the context was built at.
func (c Context) CreatedAt() int64 { return c.createdAt }

// IsZero reports whether c is the zero Context (never validly constructed).
func (c Context) IsZero() bool { return c.id == "" }

// String implements fmt.Stringer for logging.
func (c Context) String() string {
	return fmt.Sprintf("Context{id=%s principal=%s}", c.id, c.principal)
}
