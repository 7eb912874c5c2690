package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name       string
		record     []string
		kind       models.TransactionKind
		client     models.ClientID
		id         models.TransactionID
		amount     string
		wantAmount bool
	}{
		{name: "deposit", record: []string{"deposit", "1", "1", "1.0"}, kind: models.KindDeposit, client: 1, id: 1, amount: "1", wantAmount: true},
		{name: "withdrawal with spaces", record: []string{" withdrawal ", " 2 ", "  15", " 1.3 "}, kind: models.KindWithdrawal, client: 2, id: 15, amount: "1.3", wantAmount: true},
		{name: "four decimals", record: []string{"deposit", "3", "4", "0.1234"}, kind: models.KindDeposit, client: 3, id: 4, amount: "0.1234", wantAmount: true},
		{name: "zero deposit", record: []string{"deposit", "3", "5", "0"}, kind: models.KindDeposit, client: 3, id: 5, amount: "0", wantAmount: true},
		{name: "dispute with empty amount", record: []string{"dispute", "1", "4", ""}, kind: models.KindDispute, client: 1, id: 4},
		{name: "resolve without amount column", record: []string{"resolve", "1", "4"}, kind: models.KindResolve, client: 1, id: 4},
		{name: "chargeback ignores amount", record: []string{"chargeback", "1", "4", "9.99"}, kind: models.KindChargeback, client: 1, id: 4},
		{name: "max ids", record: []string{"deposit", "65535", "4294967295", "1"}, kind: models.KindDeposit, client: 65535, id: 4294967295, amount: "1", wantAmount: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := ParseRecord(tt.record)
			require.NoError(t, err)

			assert.Equal(t, tt.kind, tx.Kind)
			assert.Equal(t, tt.client, tx.ClientID)
			assert.Equal(t, tt.id, tx.ID)
			assert.Equal(t, tt.wantAmount, tx.Amount.Valid)
			if tt.wantAmount {
				assert.Equal(t, tt.amount, tx.Amount.Decimal.String())
			}
		})
	}
}

func TestParseRecordRejections(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		reason error
	}{
		{name: "empty record", record: nil, reason: models.ErrInvalidType},
		{name: "empty field list", record: []string{}, reason: models.ErrInvalidType},
		{name: "blank type", record: []string{"  ", "1", "1", "1"}, reason: models.ErrInvalidInput},
		{name: "unknown type", record: []string{"transfer", "1", "1", "1"}, reason: models.ErrInvalidInput},
		{name: "capitalised type", record: []string{"Deposit", "1", "1", "1"}, reason: models.ErrInvalidInput},
		{name: "upper case type", record: []string{"DISPUTE", "1", "1"}, reason: models.ErrInvalidInput},
		{name: "header row", record: []string{"type", "client", "tx", "amount"}, reason: models.ErrInvalidInput},
		{name: "missing tx column", record: []string{"deposit", "1"}, reason: models.ErrInvalidInput},
		{name: "client overflow", record: []string{"deposit", "65536", "1", "1"}, reason: models.ErrInvalidInput},
		{name: "negative client", record: []string{"deposit", "-1", "1", "1"}, reason: models.ErrInvalidInput},
		{name: "tx not numeric", record: []string{"deposit", "1", "abc", "1"}, reason: models.ErrInvalidInput},
		{name: "deposit without amount", record: []string{"deposit", "1", "1", ""}, reason: models.ErrInvalidInput},
		{name: "withdrawal without amount column", record: []string{"withdrawal", "1", "1"}, reason: models.ErrInvalidInput},
		{name: "amount not numeric", record: []string{"deposit", "1", "1", "ten"}, reason: models.ErrInvalidInput},
		{name: "negative amount", record: []string{"deposit", "1", "1", "-1.5"}, reason: models.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord(tt.record)

			require.ErrorIs(t, err, tt.reason)
			assert.True(t, models.IsRejection(err))
		})
	}
}
