package shared

// Asynq task types
const (
	TypeReconcileLikeCount = "like:reconcile_count"
)

// Asynq queues
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// Reasons carried by reconcile payloads
const (
	ReconcileReasonSchedule         = "schedule"
	ReconcileReasonUnderflow        = "counter_underflow"
	ReconcileReasonCompensationFail = "compensation_failed"
	ReconcileReasonCounterFailed    = "counter_update_failed"
	ReconcileReasonManual           = "manual"
)

// ReconcileLikeCountPayload asks the worker to recompute like_count.
// Empty ArtifactIDs means every artifact.
type ReconcileLikeCountPayload struct {
	ArtifactIDs []string `json:"artifactIds"`
	Reason      string   `json:"reason"`
	RequestID   string   `json:"requestId,omitempty"`
}
