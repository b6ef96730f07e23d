package service

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/okerssen/inventory-api/internal/domain"
)

// ReconcileStore is the slice of the inventory store the engine needs:
// a read of the current collection and a single write-back at the end.
type ReconcileStore interface {
	Items() []domain.Item
	ReplaceAll(items []domain.Item) error
}

// Reconcile merges a batch of amount deltas into the store, in input
// order. Existing items (first EAN match) get the delta added, clamped at
// zero; unknown EANs become new items unless the delta is negative; rows
// whose amount does not parse are skipped. The store is saved exactly
// once, after the whole batch.
func Reconcile(store ReconcileStore, entries []domain.BatchEntry) (domain.ReconcileReport, error) {
	items := store.Items()

	var report domain.ReconcileReport
	for _, entry := range entries {
		delta, err := strconv.Atoi(entry.Amount)
		if err != nil {
			report.SkippedInvalid(entry.EAN)
			zap.L().Warn("skipping batch row with non-integer amount",
				zap.String("ean", entry.EAN),
				zap.String("amount", entry.Amount))
			continue
		}

		position := indexOfCode(items, entry.EAN)
		if position >= 0 {
			next := items[position].Amount + delta
			if next < 0 {
				items[position].Amount = 0
				report.Clamped(entry.EAN)
				zap.L().Warn("clamped negative amount to zero", zap.String("ean", entry.EAN))
			} else {
				items[position].Amount = next
				report.Applied(entry.EAN)
			}
			continue
		}

		if delta < 0 {
			report.Rejected(entry.EAN)
			zap.L().Warn("rejected new item with negative amount", zap.String("ean", entry.EAN))
			continue
		}

		items = append(items, domain.Item{
			EAN:     entry.EAN,
			Amount:  delta,
			Name:    entry.Name,
			Popular: domain.NotPopular,
		})
		report.AddedNew(entry.EAN)
	}

	if err := store.ReplaceAll(items); err != nil {
		return domain.ReconcileReport{}, fmt.Errorf("store.ReplaceAll -> %w", err)
	}

	zap.L().Info("reconciled batch",
		zap.Int("entries", len(entries)),
		zap.Int("updated", report.Updated),
		zap.Int("added", report.Added),
		zap.Int("warnings", len(report.Warnings())))

	return report, nil
}

func indexOfCode(items []domain.Item, ean string) int {
	for i, item := range items {
		if item.EAN == ean {
			return i
		}
	}

	return -1
}
