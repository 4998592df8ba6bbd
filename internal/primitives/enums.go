package primitives

// Consequence is a capability's static risk class. It is a closed sum
// type, not a string, so a new level cannot be introduced without editing
// this file.
type Consequence int

const (
	ConsequenceLow Consequence = iota
	ConsequenceMedium
	ConsequenceHigh
)

// String implements fmt.Stringer.
func (c Consequence) String() string {
	switch c {
	case ConsequenceLow:
		return "LOW"
	case ConsequenceMedium:
		return "MEDIUM"
	case ConsequenceHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether c is one of the closed Consequence values.
func (c Consequence) Valid() bool {
	return c == ConsequenceLow || c == ConsequenceMedium || c == ConsequenceHigh
}

// Phase identifies which kernel layer detected a Failure Event.
type Phase int

const (
	PhaseMEK0 Phase = iota // Guard / invariants
	_                      // MEK-1 is a client-binding wrapper, not a kernel phase
	PhaseMEK2              // principals, grants, revocation
	PhaseMEK3              // snapshots
	PhaseMEK4              // composition
	PhaseMEK5              // failure subsystem itself
	PhaseMEK6              // evidence
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseMEK0:
		return "MEK_0"
	case PhaseMEK2:
		return "MEK_2"
	case PhaseMEK3:
		return "MEK_3"
	case PhaseMEK4:
		return "MEK_4"
	case PhaseMEK5:
		return "MEK_5"
	case PhaseMEK6:
		return "MEK_6"
	default:
		return "MEK_UNKNOWN"
	}
}

// FailureType is the closed enum of admission refusal kinds.
type FailureType int

const (
	FailureMissingContext FailureType = iota
	FailureInvalidContext
	FailureMissingIntent
	FailureInvalidIntent
	FailureIntentInferenceAttempt
	FailureMissingConfidence
	FailureInvalidConfidence
	FailureConfidenceThresholdExceeded
	FailureMissingPrincipal
	FailureMissingGrant
	FailureExpiredGrant
	FailureRevokedGrant
	FailureExhaustedGrant
	FailureInvalidGrantScope
	FailureUnknownCapability
	FailureCapabilitySelfInvocation
	FailureUnifiedExecutionAuthorityViolation
	FailureDirectExecutionAttempt
	FailureFrictionViolation
	FailureConsequenceLevelMismatch
	FailureSnapshotHashMismatch
	FailureSnapshotReuseAttempt
	FailureTOCTOUViolation
	FailureCompositionStepFailure
	FailureCompositionOrderViolation
	FailureExecutionError
	FailureGuardRefusal
)

var failureTypeNames = map[FailureType]string{
	FailureMissingContext:                     "MISSING_CONTEXT",
	FailureInvalidContext:                     "INVALID_CONTEXT",
	FailureMissingIntent:                       "MISSING_INTENT",
	FailureInvalidIntent:                       "INVALID_INTENT",
	FailureIntentInferenceAttempt:              "INTENT_INFERENCE_ATTEMPT",
	FailureMissingConfidence:                   "MISSING_CONFIDENCE",
	FailureInvalidConfidence:                   "INVALID_CONFIDENCE",
	FailureConfidenceThresholdExceeded:         "CONFIDENCE_THRESHOLD_EXCEEDED",
	FailureMissingPrincipal:                    "MISSING_PRINCIPAL",
	FailureMissingGrant:                        "MISSING_GRANT",
	FailureExpiredGrant:                        "EXPIRED_GRANT",
	FailureRevokedGrant:                        "REVOKED_GRANT",
	FailureExhaustedGrant:                      "EXHAUSTED_GRANT",
	FailureInvalidGrantScope:                   "INVALID_GRANT_SCOPE",
	FailureUnknownCapability:                   "UNKNOWN_CAPABILITY",
	FailureCapabilitySelfInvocation:            "CAPABILITY_SELF_INVOCATION",
	FailureUnifiedExecutionAuthorityViolation:  "UNIFIED_EXECUTION_AUTHORITY_VIOLATION",
	FailureDirectExecutionAttempt:              "DIRECT_EXECUTION_ATTEMPT",
	FailureFrictionViolation:                   "FRICTION_VIOLATION",
	FailureConsequenceLevelMismatch:            "CONSEQUENCE_LEVEL_MISMATCH",
	FailureSnapshotHashMismatch:                "SNAPSHOT_HASH_MISMATCH",
	FailureSnapshotReuseAttempt:                "SNAPSHOT_REUSE_ATTEMPT",
	FailureTOCTOUViolation:                     "TOCTOU_VIOLATION",
	FailureCompositionStepFailure:              "COMPOSITION_STEP_FAILURE",
	FailureCompositionOrderViolation:           "COMPOSITION_ORDER_VIOLATION",
	FailureExecutionError:                      "EXECUTION_ERROR",
	FailureGuardRefusal:                        "GUARD_REFUSAL",
}

// String implements fmt.Stringer, returning the stable wire identifier
// downstream tools may match on.
func (f FailureType) String() string {
	if name, ok := failureTypeNames[f]; ok {
		return name
	}
	return "UNKNOWN_FAILURE_TYPE"
}

// TriggeringCondition is a short, fixed-vocabulary token — never free
// text. Evidence and observability tooling may match on these the same
// way they match on FailureType.
type TriggeringCondition string

const (
	ConditionContextMissing          TriggeringCondition = "context_missing"
	ConditionContextIDMalformed      TriggeringCondition = "context_id_malformed"
	ConditionIntentMissing           TriggeringCondition = "intent_missing"
	ConditionIntentUnregistered      TriggeringCondition = "intent_unregistered"
	ConditionIntentFieldMismatch     TriggeringCondition = "intent_field_mismatch"
	ConditionIntentInferred          TriggeringCondition = "intent_inferred"
	ConditionConfidenceAbsent        TriggeringCondition = "confidence_absent"
	ConditionConfidenceOutOfRange    TriggeringCondition = "confidence_out_of_range"
	ConditionConfidenceBelowThreshold TriggeringCondition = "confidence_below_threshold"
	ConditionPrincipalEmpty          TriggeringCondition = "principal_empty"
	ConditionGrantNotFound           TriggeringCondition = "grant_not_found"
	ConditionGrantExpired            TriggeringCondition = "grant_expired"
	ConditionGrantRevoked            TriggeringCondition = "grant_revoked"
	ConditionGrantExhausted          TriggeringCondition = "grant_exhausted"
	ConditionGrantScopeInvalid       TriggeringCondition = "grant_scope_invalid"
	ConditionCapabilityUnknown       TriggeringCondition = "capability_unknown"
	ConditionCapabilityRedefinition  TriggeringCondition = "capability_redefinition"
	ConditionDirectExecutionAttempt  TriggeringCondition = "direct_execution_attempt"
	ConditionSnapshotHashMismatch    TriggeringCondition = "snapshot_hash_mismatch"
	ConditionSnapshotReuse           TriggeringCondition = "snapshot_reuse_attempt"
	ConditionAuthorityVersionStale   TriggeringCondition = "authority_version_stale"
	ConditionCompositionStepFailed   TriggeringCondition = "composition_step_failed"
	ConditionCompositionOrderGap     TriggeringCondition = "composition_order_violation"
	ConditionCapabilityExecutionPanic TriggeringCondition = "capability_execution_error"
	ConditionUnifiedAuthorityBypass  TriggeringCondition = "unified_authority_bypass_attempt"
	ConditionFrictionIncomplete      TriggeringCondition = "friction_wait_incomplete"
	ConditionConsequenceMismatch     TriggeringCondition = "consequence_level_mismatch"
)

// RevocationReason is a closed set defined by the issuance authority's
// policy. This is the reference vocabulary shipped with the kernel; a
// deployer's issuance authority may define its own closed set instead.
type RevocationReason string

const (
	ReasonPrincipalRequest     RevocationReason = "principal_request"
	ReasonPolicyViolation      RevocationReason = "policy_violation"
	ReasonGrantSuperseded      RevocationReason = "grant_superseded"
	ReasonAdministrativeAction RevocationReason = "administrative_action"
	ReasonSecurityIncident     RevocationReason = "security_incident"
)
