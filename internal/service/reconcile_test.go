package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okerssen/inventory-api/internal/domain"
)

// fakeStore records write-backs so tests can assert on save counts.
type fakeStore struct {
	items []domain.Item
	saves int
}

func (f *fakeStore) Items() []domain.Item {
	return domain.CloneItems(f.items)
}

func (f *fakeStore) ReplaceAll(items []domain.Item) error {
	f.items = domain.CloneItems(items)
	f.saves++
	return nil
}

func TestReconcileMergesIntoExisting(t *testing.T) {
	store := &fakeStore{items: []domain.Item{
		{EAN: "123", Amount: 5, Name: "Widget", Popular: "Y"},
	}}

	report, err := Reconcile(store, []domain.BatchEntry{
		{EAN: "123", Amount: "3", Name: "Widget renamed"},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, store.items[0].Amount)
	// Name and popular are never touched by reconciliation.
	assert.Equal(t, "Widget", store.items[0].Name)
	assert.Equal(t, "Y", store.items[0].Popular)

	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 0, report.Added)
	assert.Empty(t, report.Warnings())
}

func TestReconcileClampsNegativeResult(t *testing.T) {
	store := &fakeStore{items: []domain.Item{
		{EAN: "123", Amount: 2, Name: "Widget", Popular: "N"},
	}}

	report, err := Reconcile(store, []domain.BatchEntry{
		{EAN: "123", Amount: "-5", Name: "Widget"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, store.items[0].Amount)

	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.RowClamped, warnings[0].Status)
	assert.Equal(t, "123", warnings[0].EAN)
}

func TestReconcileRejectsNegativeNewItem(t *testing.T) {
	store := &fakeStore{}

	report, err := Reconcile(store, []domain.BatchEntry{
		{EAN: "999", Amount: "-1", Name: "Ghost"},
	})
	require.NoError(t, err)

	assert.Empty(t, store.items)

	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.RowRejected, warnings[0].Status)
	assert.Equal(t, "999", warnings[0].EAN)
}

func TestReconcileCreatesNewItemWithDefaultPopular(t *testing.T) {
	store := &fakeStore{}

	report, err := Reconcile(store, []domain.BatchEntry{
		{EAN: "999", Amount: "4", Name: "Ghost"},
	})
	require.NoError(t, err)

	require.Len(t, store.items, 1)
	assert.Equal(t, domain.Item{
		EAN:     "999",
		Amount:  4,
		Name:    "Ghost",
		Popular: domain.NotPopular,
	}, store.items[0])

	assert.Equal(t, 1, report.Added)
}

func TestReconcileSkipsInvalidAmount(t *testing.T) {
	store := &fakeStore{items: []domain.Item{
		{EAN: "123", Amount: 5, Name: "Widget", Popular: "N"},
	}}

	report, err := Reconcile(store, []domain.BatchEntry{
		{EAN: "123", Amount: "three", Name: "Widget"},
		{EAN: "123", Amount: "2", Name: "Widget"},
	})
	require.NoError(t, err)

	// The bad row is skipped, the rest of the batch still applies.
	assert.Equal(t, 7, store.items[0].Amount)

	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.RowSkippedInvalid, warnings[0].Status)
}

func TestReconcileFirstMatchWinsOnDuplicates(t *testing.T) {
	store := &fakeStore{items: []domain.Item{
		{EAN: "123", Amount: 1, Name: "first", Popular: "N"},
		{EAN: "123", Amount: 10, Name: "second", Popular: "N"},
	}}

	_, err := Reconcile(store, []domain.BatchEntry{
		{EAN: "123", Amount: "4", Name: "Widget"},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, store.items[0].Amount)
	assert.Equal(t, 10, store.items[1].Amount)
}

func TestReconcileSavesExactlyOnce(t *testing.T) {
	store := &fakeStore{items: []domain.Item{
		{EAN: "123", Amount: 5, Name: "Widget", Popular: "N"},
	}}

	_, err := Reconcile(store, []domain.BatchEntry{
		{EAN: "123", Amount: "1", Name: "Widget"},
		{EAN: "456", Amount: "2", Name: "Gadget"},
		{EAN: "789", Amount: "bad", Name: "Gizmo"},
		{EAN: "000", Amount: "-3", Name: "Nope"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, store.saves)
}

func TestReconcileProcessesInInputOrder(t *testing.T) {
	store := &fakeStore{}

	_, err := Reconcile(store, []domain.BatchEntry{
		{EAN: "999", Amount: "4", Name: "Ghost"},
		{EAN: "999", Amount: "-4", Name: "Ghost"},
	})
	require.NoError(t, err)

	// The second entry finds the item the first one created.
	require.Len(t, store.items, 1)
	assert.Equal(t, 0, store.items[0].Amount)
}
