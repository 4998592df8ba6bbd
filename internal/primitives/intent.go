package primitives

import "errors"

// ErrEmptyIntentCapability is returned when an Intent names no capability.
var ErrEmptyIntentCapability = errors.New("primitives: intent capability must not be empty")

// Intent is the caller's explicit declaration of which capability it
// wants to invoke and with what confidence. It must be supplied by the
// caller; the kernel never derives one on a caller's behalf (see
// internal/negative for the enforced prohibition on inference).
type Intent struct {
	capability    string
	confidence    float64
	hasConfidence bool
	fields        map[string]string
}

// NewIntent validates and constructs an Intent carrying a declared
// confidence. confidence must be in [0, 1]; the Guard maps an
// out-of-range value to INVALID_CONFIDENCE rather than this constructor
// doing so, for the same reason NewContext defers principal checks to
// the Guard.
func NewIntent(capability string, confidence float64, fields map[string]string) (Intent, error) {
	if capability == "" {
		return Intent{}, ErrEmptyIntentCapability
	}
	frozen := make(map[string]string, len(fields))
	for k, v := range fields {
		frozen[k] = v
	}
	return Intent{capability: capability, confidence: confidence, hasConfidence: true, fields: frozen}, nil
}

// NewIntentWithoutConfidence constructs an Intent that declares no
// confidence at all, distinct from a zero-value confidence of 0.0. The
// Guard's confidence gate treats this as MISSING_CONFIDENCE rather than
// an out-of-range or below-threshold value.
func NewIntentWithoutConfidence(capability string, fields map[string]string) (Intent, error) {
	if capability == "" {
		return Intent{}, ErrEmptyIntentCapability
	}
	frozen := make(map[string]string, len(fields))
	for k, v := range fields {
		frozen[k] = v
	}
	return Intent{capability: capability, hasConfidence: false, fields: frozen}, nil
}

// Capability returns the declared capability name.
func (i Intent) Capability() string { return i.capability }

// Confidence returns the declared confidence value. It is meaningless
// when HasConfidence reports false; callers must check HasConfidence
// first.
func (i Intent) Confidence() float64 { return i.confidence }

// HasConfidence reports whether the caller declared a confidence value
// at all, as opposed to declaring 0.0 explicitly.
func (i Intent) HasConfidence() bool { return i.hasConfidence }

// Field returns a declared field value and whether it was present.
func (i Intent) Field(key string) (string, bool) {
	v, ok := i.fields[key]
	return v, ok
}

// Fields returns a copy of the declared field map, so callers cannot
// mutate the Intent's frozen state through the returned map.
func (i Intent) Fields() map[string]string {
	out := make(map[string]string, len(i.fields))
	for k, v := range i.fields {
		out[k] = v
	}
	return out
}

// IsZero reports whether i is the zero Intent.
func (i Intent) IsZero() bool { return i.capability == "" }
