package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type (
	ClientID      uint16
	TransactionID uint32
)

// Amount is an exact decimal money value
type Amount = decimal.Decimal

// TransactionKind is the record type column of the input
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
	KindDispute    TransactionKind = "dispute"
	KindResolve    TransactionKind = "resolve"
	KindChargeback TransactionKind = "chargeback"
)

// ParseTransactionKind maps the textual record type onto a TransactionKind.
func ParseTransactionKind(s string) (TransactionKind, bool) {
	switch k := TransactionKind(s); k {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return k, true
	}
	return "", false
}

// Stored reports whether transactions of this kind are kept for later disputes.
func (k TransactionKind) Stored() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Transaction is a single validated input record.
// Amount is only valid for deposits and withdrawals, the dispute family
// refers to the amount of the transaction with the same ID.
type Transaction struct {
	Kind     TransactionKind
	ClientID ClientID
	ID       TransactionID
	Amount   decimal.NullDecimal
}

// NewDeposit builds a deposit transaction.
func NewDeposit(client ClientID, id TransactionID, amount Amount) Transaction {
	return Transaction{Kind: KindDeposit, ClientID: client, ID: id, Amount: decimal.NewNullDecimal(amount)}
}

// NewWithdrawal builds a withdrawal transaction.
func NewWithdrawal(client ClientID, id TransactionID, amount Amount) Transaction {
	return Transaction{Kind: KindWithdrawal, ClientID: client, ID: id, Amount: decimal.NewNullDecimal(amount)}
}

// NewReference builds a dispute, resolve or chargeback pointing at transaction id.
func NewReference(kind TransactionKind, client ClientID, id TransactionID) Transaction {
	return Transaction{Kind: kind, ClientID: client, ID: id}
}

func (t Transaction) String() string {
	if t.Amount.Valid {
		return fmt.Sprintf("%s client=%d tx=%d amount=%s", t.Kind, t.ClientID, t.ID, t.Amount.Decimal.String())
	}
	return fmt.Sprintf("%s client=%d tx=%d", t.Kind, t.ClientID, t.ID)
}
