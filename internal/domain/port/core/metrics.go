package core

// Outcome labels recorded per operation
const (
	OutcomeSuccess = "success"
	OutcomeRetry   = "retry"
)

// MetricsRecorder receives ledger operation telemetry
type MetricsRecorder interface {
	// ObserveOperation records one finished operation. outcome is OutcomeSuccess or an error kind.
	ObserveOperation(operation, outcome string, elapsed Duration)
	// IncRetry counts a unit of work retried after a lost race
	IncRetry(operation string)
	// AddTokensClaimed counts inventory items handed out
	AddTokensClaimed(n int)
	// AddCreditsRedeemed counts request units credited through keys
	AddCreditsRedeemed(amount int64)
}
