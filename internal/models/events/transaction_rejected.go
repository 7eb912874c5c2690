package events

import "time"

// TransactionRejected is emitted for a transaction that was dropped from the run.
type TransactionRejected struct {
	EventID       string    `json:"event_id"`
	RunID         string    `json:"run_id"`
	Kind          string    `json:"kind,omitempty"`
	ClientID      uint16    `json:"client_id"`
	TransactionID uint32    `json:"transaction_id"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}
