package ledger

import (
	"context"
	"fmt"

	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
	"github.com/shopspring/decimal"
)

// Account is the balance state machine of a single client.
// Once locked by a chargeback it rejects every further operation.
type Account struct {
	ClientID  models.ClientID
	available decimal.Decimal
	held      decimal.Decimal
	total     decimal.Decimal
	locked    bool
}

// NewAccount returns an unlocked account with zero balances
func NewAccount(id models.ClientID) *Account {
	return &Account{
		ClientID:  id,
		available: decimal.Zero,
		held:      decimal.Zero,
		total:     decimal.Zero,
	}
}

// Deposit credits the account: available and total grow by the amount.
func (a *Account) Deposit(tx models.Transaction) error {
	if a.locked {
		return models.Reject(tx, models.ErrAccountLocked)
	}
	if !tx.Amount.Valid {
		return models.Reject(tx, models.ErrTargetTransactionAmountMissing)
	}

	amount := tx.Amount.Decimal
	a.apply(a.available.Add(amount), a.held, a.total.Add(amount))
	return nil
}

// Withdraw debits the account: available and total shrink by the amount.
// The available balance must stay strictly above the amount.
func (a *Account) Withdraw(tx models.Transaction) error {
	if a.locked {
		return models.Reject(tx, models.ErrAccountLocked)
	}
	if !tx.Amount.Valid {
		return models.Reject(tx, models.ErrTargetTransactionAmountMissing)
	}

	amount := tx.Amount.Decimal
	if !a.available.GreaterThan(amount) {
		return models.Rejectf(tx, models.ErrInsufficientFunds, "available %s, requested %s", a.available, amount)
	}

	a.apply(a.available.Sub(amount), a.held, a.total.Sub(amount))
	return nil
}

// Dispute moves the amount of the referenced transaction from available to
// held. Total does not change.
func (a *Account) Dispute(ctx context.Context, tx models.Transaction, store interfaces.TransactionStore) error {
	if a.locked {
		return models.Reject(tx, models.ErrAccountLocked)
	}

	amount, err := referencedAmount(ctx, tx, store)
	if err != nil {
		return err
	}

	if !a.available.GreaterThan(amount) {
		return models.Rejectf(tx, models.ErrInsufficientFunds, "available %s, disputed %s", a.available, amount)
	}

	a.apply(a.available.Sub(amount), a.held.Add(amount), a.total)
	return nil
}

// Resolve releases a disputed amount back from held to available.
func (a *Account) Resolve(ctx context.Context, tx models.Transaction, store interfaces.TransactionStore) error {
	if a.locked {
		return models.Reject(tx, models.ErrAccountLocked)
	}

	amount, err := referencedAmount(ctx, tx, store)
	if err != nil {
		return err
	}

	if amount.GreaterThan(a.held) {
		return models.Rejectf(tx, models.ErrInconsistentWithValueHeld, "held %s, resolved %s", a.held, amount)
	}

	a.apply(a.available.Add(amount), a.held.Sub(amount), a.total)
	return nil
}

// Chargeback withdraws a disputed amount for good and locks the account.
func (a *Account) Chargeback(ctx context.Context, tx models.Transaction, store interfaces.TransactionStore) error {
	if a.locked {
		return models.Reject(tx, models.ErrAccountLocked)
	}

	amount, err := referencedAmount(ctx, tx, store)
	if err != nil {
		return err
	}

	if amount.GreaterThan(a.held) {
		return models.Rejectf(tx, models.ErrInsufficientFunds, "held %s, charged back %s", a.held, amount)
	}

	a.apply(a.available, a.held.Sub(amount), a.total.Sub(amount))
	a.locked = true
	return nil
}

func (a *Account) AvailableBalance() decimal.Decimal { return a.available }
func (a *Account) HeldBalance() decimal.Decimal      { return a.held }
func (a *Account) TotalBalance() decimal.Decimal     { return a.total }
func (a *Account) IsLocked() bool                    { return a.locked }

// Snapshot copies the current state of the account.
func (a *Account) Snapshot() models.AccountSnapshot {
	return models.AccountSnapshot{
		ClientID:  a.ClientID,
		Available: a.available,
		Held:      a.held,
		Total:     a.total,
		Locked:    a.locked,
	}
}

// apply commits new balances. total must equal available + held.
func (a *Account) apply(available, held, total decimal.Decimal) {
	if !available.Add(held).Equal(total) {
		panic(fmt.Sprintf("ledger: account %d out of balance: available %s + held %s != total %s",
			a.ClientID, available, held, total))
	}
	a.available = available
	a.held = held
	a.total = total
}

// referencedAmount looks up the transaction a dispute, resolve or chargeback
// points at and returns its amount.
func referencedAmount(ctx context.Context, tx models.Transaction, store interfaces.TransactionStore) (decimal.Decimal, error) {
	ref, found, err := store.Get(ctx, tx.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("lookup transaction %d: %w", tx.ID, err)
	}
	if !found {
		return decimal.Zero, models.Reject(tx, models.ErrIDNotFound)
	}
	if !ref.Amount.Valid {
		return decimal.Zero, models.Reject(tx, models.ErrTargetTransactionAmountMissing)
	}
	return ref.Amount.Decimal, nil
}
