package guard

import "errors"

// ErrCapabilityAlreadyRegistered is returned by Register when a
// capability name collides with an existing registration. Unlike an
// admission refusal, this is a programmer-contract violation detected at
// setup time, so it is a Go error rather than a FailureEvent.
var ErrCapabilityAlreadyRegistered = errors.New("guard: capability already registered")

// ErrUnknownCapability names an unregistered capability as a Go error.
// No function in this package returns it, and Execute never does: an
// unknown capability during admission is reported as a FailureEvent
// (FailureUnknownCapability), not a Go error, because it is a
// caller-triggerable admission outcome rather than a setup mistake.
var ErrUnknownCapability = errors.New("guard: unknown capability")
