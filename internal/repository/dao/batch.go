package dao

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidBatchHeader = errors.New("batch file must have headers: ean, amount, name")
)

// batchHeader is the only header set accepted for a reconciliation batch.
var batchHeader = []string{"ean", "amount", "name"}

// BatchRow is one raw row of a reconciliation batch file.
type BatchRow struct {
	EAN    string
	Amount string
	Name   string
}

// ReadBatch decodes a reconciliation batch. The header is checked before
// any row is read; a mismatch rejects the batch wholesale.
func ReadBatch(r io.Reader) ([]BatchRow, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrInvalidBatchHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reader.Read -> %w", err)
	}
	if !headerEquals(header, batchHeader) {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidBatchHeader, header)
	}

	var rows []BatchRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reader.Read -> %w", err)
		}

		rows = append(rows, BatchRow{
			EAN:    record[0],
			Amount: record[1],
			Name:   record[2],
		})
	}

	return rows, nil
}
