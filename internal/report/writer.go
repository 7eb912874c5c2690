package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

// Precision is the number of decimal places of every monetary column.
const Precision = 4

var header = []string{"client", "available", "held", "total", "locked"}

// Writer renders account snapshots as CSV.
type Writer struct {
	w *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// WriteSnapshots writes the header followed by one line per snapshot, in the
// order given.
func (r *Writer) WriteSnapshots(snapshots []models.AccountSnapshot) error {
	if err := r.w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, s := range snapshots {
		row := []string{
			strconv.FormatUint(uint64(s.ClientID), 10),
			s.Available.StringFixed(Precision),
			s.Held.StringFixed(Precision),
			s.Total.StringFixed(Precision),
			strconv.FormatBool(s.Locked),
		}
		if err := r.w.Write(row); err != nil {
			return fmt.Errorf("write client %d: %w", s.ClientID, err)
		}
	}

	r.w.Flush()
	return r.w.Error()
}
