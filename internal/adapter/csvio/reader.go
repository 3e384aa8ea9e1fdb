// Package csvio reads transaction feeds from and writes account reports to CSV.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iho/paymentsengine/internal/domain"
)

var transactionHeader = []string{"type", "client", "tx", "amount"}

// ParseError locates a malformed input row.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Reader decodes transactions from CSV with the columns type,client,tx,amount.
// Whitespace around fields is ignored and the amount column may be empty or
// omitted for dispute, resolve and chargeback rows.
type Reader struct {
	csv        *csv.Reader
	headerRead bool
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &Reader{csv: cr}
}

// Next returns the next transaction, io.EOF at the end of input, or a
// *ParseError wrapping domain.ErrMalformedTransaction.
func (r *Reader) Next() (domain.Transaction, error) {
	if !r.headerRead {
		if err := r.readHeader(); err != nil {
			return domain.Transaction{}, err
		}
		r.headerRead = true
	}

	for {
		record, err := r.csv.Read()
		if err == io.EOF {
			return domain.Transaction{}, io.EOF
		}
		if err != nil {
			return domain.Transaction{}, r.wrap(0, err)
		}
		line, _ := r.csv.FieldPos(0)
		if isBlank(record) {
			continue
		}

		tx, err := parseRecord(record)
		if err != nil {
			return domain.Transaction{}, &ParseError{Line: line, Err: err}
		}
		return tx, nil
	}
}

func (r *Reader) readHeader() error {
	record, err := r.csv.Read()
	if err == io.EOF {
		return io.EOF
	}
	if err != nil {
		return r.wrap(1, err)
	}

	if len(record) < len(transactionHeader)-1 || len(record) > len(transactionHeader) {
		return &ParseError{Line: 1, Err: fmt.Errorf("%w: unexpected header %q", domain.ErrMalformedTransaction, record)}
	}
	for i, field := range record {
		if !strings.EqualFold(strings.TrimSpace(field), transactionHeader[i]) {
			return &ParseError{Line: 1, Err: fmt.Errorf("%w: unexpected header %q", domain.ErrMalformedTransaction, record)}
		}
	}
	return nil
}

func (r *Reader) wrap(line int, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		line = csvErr.Line
	}
	return &ParseError{Line: line, Err: fmt.Errorf("%w: %v", domain.ErrMalformedTransaction, err)}
}

func parseRecord(record []string) (domain.Transaction, error) {
	if len(record) < 3 || len(record) > 4 {
		return domain.Transaction{}, fmt.Errorf("%w: expected 3 or 4 fields, got %d", domain.ErrMalformedTransaction, len(record))
	}

	txType, err := domain.ParseTransactionType(record[0])
	if err != nil {
		return domain.Transaction{}, err
	}

	client, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: invalid client %q", domain.ErrMalformedTransaction, record[1])
	}

	txID, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: invalid tx %q", domain.ErrMalformedTransaction, record[2])
	}

	tx := domain.Transaction{
		Type:   txType,
		Client: domain.ClientID(client),
		TxID:   domain.TxID(txID),
	}

	if len(record) == 4 && strings.TrimSpace(record[3]) != "" {
		amount, err := domain.ParseAmount(record[3])
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("%w: %v", domain.ErrMalformedTransaction, err)
		}
		tx.Amount = &amount
	}

	if err := tx.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
