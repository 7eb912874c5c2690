package events

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountState struct {
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}

// TransactionProcessed is emitted after a transaction was applied to an account.
type TransactionProcessed struct {
	EventID       string           `json:"event_id"`
	RunID         string           `json:"run_id"`
	Kind          string           `json:"kind"`
	ClientID      uint16           `json:"client_id"`
	TransactionID uint32           `json:"transaction_id"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Account       AccountState     `json:"account"`
	OccurredAt    time.Time        `json:"occurred_at"`
}
