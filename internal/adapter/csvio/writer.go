package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iho/paymentsengine/internal/domain"
)

var accountHeader = []string{"client", "available", "held", "total", "locked"}

// Writer encodes account snapshots as CSV with the columns
// client,available,held,total,locked.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteAccounts writes the header followed by one row per account.
func (w *Writer) WriteAccounts(accounts []domain.AccountSnapshot) error {
	cw := csv.NewWriter(w.w)

	if err := cw.Write(accountHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(accountHeader))
	for _, acc := range accounts {
		row[0] = strconv.FormatUint(uint64(acc.Client), 10)
		row[1] = acc.Available.String()
		row[2] = acc.Held.String()
		row[3] = acc.Total.String()
		row[4] = strconv.FormatBool(acc.Locked)

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write client %d: %w", acc.Client, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
