package entity

// RecordCreatedEvent is published after an analysis record has been persisted.
// It feeds the audit trail only; delivery is best effort and never affects
// the submitting caller.
type RecordCreatedEvent struct {
	EventID    string
	RecordID   int64
	Owner      string
	FileName   string
	TotalCount int
}
