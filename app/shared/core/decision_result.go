package core

// DecisionResult represents the outcome of a Decide function.
//
// Construct it with SuccessDecision or RejectedDecision only.
type DecisionResult struct {
	Outcome string // "success" or "rejected"
	Err     error
}

const (
	successOutcome  = "success"
	rejectedOutcome = "rejected"
)

// SuccessDecision creates a DecisionResult allowing the state change.
func SuccessDecision() DecisionResult {
	return DecisionResult{Outcome: successOutcome}
}

// RejectedDecision creates a DecisionResult refusing the state change for a business reason.
func RejectedDecision(err error) DecisionResult {
	return DecisionResult{Outcome: rejectedOutcome, Err: err}
}

// HasError returns the rejection error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == rejectedOutcome {
		return r.Err
	}

	return nil
}
