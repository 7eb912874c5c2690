package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/ledger"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models/events"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/parser"
)

// Summary counts what happened to the records of one run.
type Summary struct {
	RunID     string
	Records   int
	Accepted  int
	Rejected  int
	Malformed int
}

// Processor feeds an input stream record by record into a Ledger.
type Processor struct {
	runID     string
	ledger    *ledger.Ledger
	publisher interfaces.EventPublisher // optional
	logger    *zap.Logger
	now       func() time.Time
}

// NewProcessor wires a processor for one run. publisher may be nil.
func NewProcessor(runID string, l *ledger.Ledger, publisher interfaces.EventPublisher, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		runID:     runID,
		ledger:    l,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Run consumes every record of r in order. Malformed records and rejected
// transactions are counted and skipped; store or publisher failures and
// context cancellation stop the run.
func (p *Processor) Run(ctx context.Context, r io.Reader) (Summary, error) {
	summary := Summary{RunID: p.runID}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		summary.Records++

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			summary.Malformed++
			p.logger.Debug("skipping unreadable record", zap.Int("line", parseErr.Line), zap.Error(err))
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("read input: %w", err)
		}

		tx, err := parser.ParseRecord(record)
		if err != nil {
			summary.Malformed++
			line, _ := reader.FieldPos(0)
			p.logger.Debug("skipping malformed record", zap.Int("line", line), zap.Error(err))
			if err := p.publishRejected(ctx, tx, err); err != nil {
				return summary, err
			}
			continue
		}

		snapshot, err := p.ledger.Process(ctx, tx)
		switch {
		case err == nil:
			summary.Accepted++
			if err := p.publishProcessed(ctx, tx, snapshot); err != nil {
				return summary, err
			}
		case models.IsRejection(err):
			summary.Rejected++
			p.logger.Debug("transaction rejected",
				zap.String("kind", string(tx.Kind)),
				zap.Uint16("client", uint16(tx.ClientID)),
				zap.Uint32("tx", uint32(tx.ID)),
				zap.Error(err),
			)
			if err := p.publishRejected(ctx, tx, err); err != nil {
				return summary, err
			}
		default:
			return summary, err
		}
	}

	p.logger.Info("input processed",
		zap.String("run_id", summary.RunID),
		zap.Int("records", summary.Records),
		zap.Int("accepted", summary.Accepted),
		zap.Int("rejected", summary.Rejected),
		zap.Int("malformed", summary.Malformed),
	)
	return summary, nil
}

func (p *Processor) publishProcessed(ctx context.Context, tx models.Transaction, s models.AccountSnapshot) error {
	if p.publisher == nil {
		return nil
	}

	var amount *decimal.Decimal
	if tx.Amount.Valid {
		amount = &tx.Amount.Decimal
	}

	event := events.TransactionProcessed{
		EventID:       uuid.NewString(),
		RunID:         p.runID,
		Kind:          string(tx.Kind),
		ClientID:      uint16(tx.ClientID),
		TransactionID: uint32(tx.ID),
		Amount:        amount,
		Account: events.AccountState{
			Available: s.Available,
			Held:      s.Held,
			Total:     s.Total,
			Locked:    s.Locked,
		},
		OccurredAt: p.now().UTC(),
	}
	if err := p.publisher.Publish(ctx, clientKey(tx.ClientID), event); err != nil {
		return fmt.Errorf("publish processed event for tx %d: %w", tx.ID, err)
	}
	return nil
}

func (p *Processor) publishRejected(ctx context.Context, tx models.Transaction, cause error) error {
	if p.publisher == nil {
		return nil
	}

	reason := cause.Error()
	var rejected *models.RejectedTransaction
	if errors.As(cause, &rejected) {
		reason = rejected.Reason.Error()
	}

	event := events.TransactionRejected{
		EventID:       uuid.NewString(),
		RunID:         p.runID,
		Kind:          string(tx.Kind),
		ClientID:      uint16(tx.ClientID),
		TransactionID: uint32(tx.ID),
		Reason:        reason,
		OccurredAt:    p.now().UTC(),
	}
	if err := p.publisher.Publish(ctx, clientKey(tx.ClientID), event); err != nil {
		return fmt.Errorf("publish rejected event for tx %d: %w", tx.ID, err)
	}
	return nil
}

func clientKey(id models.ClientID) string {
	return strconv.FormatUint(uint64(id), 10)
}
