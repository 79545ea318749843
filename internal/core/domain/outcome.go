package domain

// OutcomeStatus classifies how a fail-open operation completed.
type OutcomeStatus string

const (
	// OutcomeOK means the operation completed normally.
	OutcomeOK OutcomeStatus = "ok"

	// OutcomeDegraded means the operation hit a backing-store or
	// provider fault and returned a reduced (possibly empty) result.
	OutcomeDegraded OutcomeStatus = "degraded"

	// OutcomeDisabled means the component was never constructed and
	// every call is a no-op.
	OutcomeDisabled OutcomeStatus = "disabled"
)

// Outcome makes fail-open behavior an explicit, testable return value
// instead of an invisible side effect of error swallowing. Components
// that must never propagate backing-store failures return an Outcome
// alongside their (possibly empty) results.
type Outcome struct {
	Status OutcomeStatus

	// Diagnostic describes the fault for degraded/disabled outcomes.
	// Informational only; callers must not branch on its content.
	Diagnostic string
}

// OK returns a normal-completion outcome.
func OK() Outcome {
	return Outcome{Status: OutcomeOK}
}

// Degraded returns a degraded outcome with a diagnostic.
func Degraded(diagnostic string) Outcome {
	return Outcome{Status: OutcomeDegraded, Diagnostic: diagnostic}
}

// Disabled returns a disabled outcome with a diagnostic.
func Disabled(diagnostic string) Outcome {
	return Outcome{Status: OutcomeDisabled, Diagnostic: diagnostic}
}

// IsOK reports whether the operation completed normally.
func (o Outcome) IsOK() bool {
	return o.Status == OutcomeOK
}
