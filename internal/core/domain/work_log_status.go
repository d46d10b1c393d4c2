package domain

// WorkLogStatus is the billing state of a work log.
type WorkLogStatus string

const (
	WorkLogStatusDraft    WorkLogStatus = "draft"
	WorkLogStatusLinked   WorkLogStatus = "linked"   // attached to an invoice draft
	WorkLogStatusInvoiced WorkLogStatus = "invoiced" // terminal
)

// IsValid reports whether s is a known status.
func (s WorkLogStatus) IsValid() bool {
	switch s {
	case WorkLogStatusDraft, WorkLogStatusLinked, WorkLogStatusInvoiced:
		return true
	}
	return false
}

// WorkLogAction is an event that moves a work log through its lifecycle.
type WorkLogAction string

const (
	WorkLogActionLink    WorkLogAction = "link"
	WorkLogActionInvoice WorkLogAction = "invoice"
)

var workLogTransitions = map[WorkLogStatus]map[WorkLogAction]WorkLogStatus{
	WorkLogStatusDraft:  {WorkLogActionLink: WorkLogStatusLinked},
	WorkLogStatusLinked: {WorkLogActionInvoice: WorkLogStatusInvoiced},
}

// NextWorkLogStatus applies action to current: draft -link-> linked -invoice-> invoiced.
// Every other pair fails with WORK_LOG_INVALID_STATUS_TRANSITION.
func NextWorkLogStatus(current WorkLogStatus, action WorkLogAction) (WorkLogStatus, error) {
	if next, ok := workLogTransitions[current][action]; ok {
		return next, nil
	}
	return current, newDomainError(CodeWorkLogInvalidStatusTransition, map[string]any{
		"from":   string(current),
		"action": string(action),
	})
}
