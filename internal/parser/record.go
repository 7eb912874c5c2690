package parser

import (
	"strconv"
	"strings"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
	"github.com/shopspring/decimal"
)

// Column positions of an input record: type, client, tx, amount.
const (
	colKind = iota
	colClient
	colTx
	colAmount
)

// ParseRecord converts one raw record into a Transaction.
// Fields are trimmed before parsing. The amount column is required for
// deposits and withdrawals and ignored for the dispute family.
// Failures are returned as *models.RejectedTransaction wrapping
// models.ErrInvalidType or models.ErrInvalidInput.
func ParseRecord(record []string) (models.Transaction, error) {
	var tx models.Transaction

	if len(record) <= colKind {
		return tx, models.Rejectf(tx, models.ErrInvalidType, "missing record type")
	}

	// record types are matched exactly, "Deposit" is not a deposit
	kind, ok := models.ParseTransactionKind(strings.TrimSpace(record[colKind]))
	if !ok {
		return tx, models.Rejectf(tx, models.ErrInvalidInput, "unknown record type %q", strings.TrimSpace(record[colKind]))
	}
	tx.Kind = kind

	if len(record) <= colTx {
		return tx, models.Rejectf(tx, models.ErrInvalidInput, "expected at least %d fields, got %d", colTx+1, len(record))
	}

	client, err := strconv.ParseUint(strings.TrimSpace(record[colClient]), 10, 16)
	if err != nil {
		return tx, models.Rejectf(tx, models.ErrInvalidInput, "client: %v", err)
	}
	tx.ClientID = models.ClientID(client)

	id, err := strconv.ParseUint(strings.TrimSpace(record[colTx]), 10, 32)
	if err != nil {
		return tx, models.Rejectf(tx, models.ErrInvalidInput, "tx: %v", err)
	}
	tx.ID = models.TransactionID(id)

	if !kind.Stored() {
		return tx, nil
	}

	if len(record) <= colAmount || strings.TrimSpace(record[colAmount]) == "" {
		return tx, models.Rejectf(tx, models.ErrInvalidInput, "amount is required for %s", kind)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(record[colAmount]))
	if err != nil {
		return tx, models.Rejectf(tx, models.ErrInvalidInput, "amount: %v", err)
	}
	if amount.IsNegative() {
		return tx, models.Rejectf(tx, models.ErrInvalidInput, "amount must not be negative")
	}
	tx.Amount = decimal.NewNullDecimal(amount)

	return tx, nil
}
