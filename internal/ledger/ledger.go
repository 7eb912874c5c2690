package ledger

import (
	"context"
	"fmt"
	"sort"

	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Ledger routes transactions to client accounts.
// It exclusively owns the accounts and the transaction store and is meant to
// be driven by a single goroutine in input order.
type Ledger struct {
	store    interfaces.TransactionStore // history used by disputes, resolves and chargebacks
	accounts map[models.ClientID]*Account
	logger   *zap.Logger
}

// NewLedger creates a Ledger on top of store. A nil logger disables logging.
func NewLedger(store interfaces.TransactionStore, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		store:    store,
		accounts: make(map[models.ClientID]*Account),
		logger:   logger,
	}
}

// Process applies tx to the account of its client and returns the resulting
// account state.
//
// Deposits and withdrawals are recorded in the store before the account sees
// them, whether or not the account accepts them. A rejection is reported as a
// *models.RejectedTransaction; any other error comes from the store.
func (l *Ledger) Process(ctx context.Context, tx models.Transaction) (models.AccountSnapshot, error) {
	if tx.Kind.Stored() {
		replaced, err := l.store.Set(ctx, tx)
		if err != nil {
			return models.AccountSnapshot{}, fmt.Errorf("store transaction %d: %w", tx.ID, err)
		}
		if replaced {
			l.logger.Warn("transaction id reused, previous entry overwritten",
				zap.Uint32("tx", uint32(tx.ID)),
				zap.Uint16("client", uint16(tx.ClientID)),
			)
		}
	}

	account := l.GetOrCreateAccount(tx.ClientID)

	var err error
	switch tx.Kind {
	case models.KindDeposit:
		err = account.Deposit(tx)
	case models.KindWithdrawal:
		err = account.Withdraw(tx)
	case models.KindDispute:
		err = account.Dispute(ctx, tx, l.store)
	case models.KindResolve:
		err = account.Resolve(ctx, tx, l.store)
	case models.KindChargeback:
		err = account.Chargeback(ctx, tx, l.store)
	default:
		err = models.Reject(tx, models.ErrInvalidType)
	}
	return account.Snapshot(), err
}

// GetOrCreateAccount returns the account of id, creating an empty one on
// first reference. Balance queries for unknown clients therefore create them.
func (l *Ledger) GetOrCreateAccount(id models.ClientID) *Account {
	account, ok := l.accounts[id]
	if !ok {
		account = NewAccount(id)
		l.accounts[id] = account
	}
	return account
}

func (l *Ledger) AvailableBalance(id models.ClientID) decimal.Decimal {
	return l.GetOrCreateAccount(id).AvailableBalance()
}

func (l *Ledger) HeldBalance(id models.ClientID) decimal.Decimal {
	return l.GetOrCreateAccount(id).HeldBalance()
}

func (l *Ledger) TotalBalance(id models.ClientID) decimal.Decimal {
	return l.GetOrCreateAccount(id).TotalBalance()
}

func (l *Ledger) IsLocked(id models.ClientID) bool {
	return l.GetOrCreateAccount(id).IsLocked()
}

// Snapshots returns the state of every known account ordered by client id.
func (l *Ledger) Snapshots() []models.AccountSnapshot {
	snapshots := make([]models.AccountSnapshot, 0, len(l.accounts))
	for _, account := range l.accounts {
		snapshots = append(snapshots, account.Snapshot())
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ClientID < snapshots[j].ClientID
	})
	return snapshots
}

// TransactionCount reports how many deposits and withdrawals are stored.
func (l *Ledger) TransactionCount(ctx context.Context) (int, error) {
	return l.store.Size(ctx)
}
