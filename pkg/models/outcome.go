package models

// Status is the result of one outbound channel call
type Status string

const (
	StatusSent          Status = "sent"
	StatusRejected      Status = "rejected"
	StatusUnreachable   Status = "unreachable"
	StatusNotConfigured Status = "not_configured"
	// StatusNotAttempted marks the attribution channel when messaging failed
	StatusNotAttempted Status = "not_attempted"
)

// Outcome records what happened on one channel
type Outcome struct {
	Status Status
	Detail string
}

// MessagingOutcome gates the attribution step
type MessagingOutcome struct {
	Outcome
}

// Delivered reports whether the attribution step may run
func (o MessagingOutcome) Delivered() bool {
	return o.Status == StatusSent
}

// DispatchResult aggregates both channel outcomes for one submission
type DispatchResult struct {
	Messaging   MessagingOutcome
	Attribution Outcome
}
