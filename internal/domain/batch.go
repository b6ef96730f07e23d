package domain

import "fmt"

// BatchEntry is one row of a reconciliation batch. Amount stays a raw
// string until the engine parses it, so a single bad row can be reported
// and skipped instead of failing the whole decode.
type BatchEntry struct {
	EAN    string
	Amount string
	Name   string
}

type RowStatus string

const (
	// RowApplied means the delta was merged into an existing item.
	RowApplied RowStatus = "applied"
	// RowAdded means a new item was created from the entry.
	RowAdded RowStatus = "added"
	// RowClamped means the merged amount went below zero and was set to 0.
	RowClamped RowStatus = "clamped"
	// RowRejected means a new item with a negative amount was refused.
	RowRejected RowStatus = "rejected"
	// RowSkippedInvalid means the amount column did not parse as an integer.
	RowSkippedInvalid RowStatus = "skipped_invalid_amount"
)

type RowResult struct {
	EAN     string    `json:"ean"`
	Status  RowStatus `json:"status"`
	Message string    `json:"message,omitempty"`
}

// ReconcileReport accumulates the per-row outcomes of one batch.
type ReconcileReport struct {
	Updated int         `json:"updated"`
	Added   int         `json:"added"`
	Rows    []RowResult `json:"rows"`
}

// Warnings returns the rows that did not apply cleanly.
func (r ReconcileReport) Warnings() []RowResult {
	var warnings []RowResult
	for _, row := range r.Rows {
		if row.Status == RowClamped || row.Status == RowRejected || row.Status == RowSkippedInvalid {
			warnings = append(warnings, row)
		}
	}
	return warnings
}

func (r *ReconcileReport) record(ean string, status RowStatus, format string, args ...any) {
	r.Rows = append(r.Rows, RowResult{
		EAN:     ean,
		Status:  status,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *ReconcileReport) Applied(ean string) {
	r.Updated++
	r.Rows = append(r.Rows, RowResult{EAN: ean, Status: RowApplied})
}

func (r *ReconcileReport) AddedNew(ean string) {
	r.Added++
	r.Rows = append(r.Rows, RowResult{EAN: ean, Status: RowAdded})
}

func (r *ReconcileReport) Clamped(ean string) {
	r.Updated++
	r.record(ean, RowClamped, "resulting amount for EAN %v would be negative, set to 0", ean)
}

func (r *ReconcileReport) Rejected(ean string) {
	r.record(ean, RowRejected, "cannot add new item with negative amount for EAN %v", ean)
}

func (r *ReconcileReport) SkippedInvalid(ean string) {
	r.record(ean, RowSkippedInvalid, "amount must be an integer for EAN %v", ean)
}
