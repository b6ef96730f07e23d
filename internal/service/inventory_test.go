package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okerssen/inventory-api/internal/domain"
	"github.com/okerssen/inventory-api/internal/repository"
	"github.com/okerssen/inventory-api/internal/repository/dao"
)

func newTestService(t *testing.T, items []domain.Item) (*InventoryService, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "inventory.csv")
	store := repository.NewInventoryStore(dao.NewInventoryFile(path))
	require.NoError(t, store.Load())
	if len(items) > 0 {
		require.NoError(t, store.ReplaceAll(items))
	}

	return NewInventoryService(store), path
}

func TestFindByCode(t *testing.T) {
	svc, _ := newTestService(t, []domain.Item{
		{EAN: "111", Amount: 1, Name: "a", Popular: "N"},
		{EAN: "123", Amount: 5, Name: "Widget", Popular: "Y"},
	})

	position, item, err := svc.FindByCode("123")
	require.NoError(t, err)
	assert.Equal(t, 1, position)
	assert.Equal(t, "Widget", item.Name)
}

func TestFindByCodeNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, _, err := svc.FindByCode("999")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestUndoRestoresPreMutationCollection(t *testing.T) {
	before := []domain.Item{
		{EAN: "123", Amount: 5, Name: "Widget", Popular: "N"},
	}
	svc, _ := newTestService(t, before)

	require.NoError(t, svc.AddItem(domain.Item{EAN: "456", Amount: 1, Name: "Gadget", Popular: "Y"}))
	require.Len(t, svc.ListItems(), 2)

	require.NoError(t, svc.Undo())
	assert.Equal(t, before, svc.ListItems())
}

func TestUndoOnEmptyHistory(t *testing.T) {
	before := []domain.Item{
		{EAN: "123", Amount: 5, Name: "Widget", Popular: "N"},
	}
	svc, _ := newTestService(t, before)

	err := svc.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	assert.Equal(t, before, svc.ListItems())
}

func TestUndoIsDestructive(t *testing.T) {
	svc, _ := newTestService(t, nil)

	require.NoError(t, svc.AddItem(domain.Item{EAN: "123", Amount: 5, Name: "Widget", Popular: "N"}))
	require.NoError(t, svc.Undo())

	// The popped snapshot cannot be reapplied forward; but undo itself
	// does not push, so a second undo finds nothing.
	assert.ErrorIs(t, svc.Undo(), ErrNothingToUndo)
}

func TestUpdateItemOutOfRangeLeavesNoHistory(t *testing.T) {
	svc, _ := newTestService(t, nil)

	err := svc.UpdateItem(3, domain.Item{EAN: "123", Amount: 1, Name: "x", Popular: "N"})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, 0, svc.UndoDepth())
}

func TestImportBatchUndoable(t *testing.T) {
	before := []domain.Item{
		{EAN: "123", Amount: 5, Name: "Widget", Popular: "N"},
	}
	svc, _ := newTestService(t, before)

	report, err := svc.ImportBatch(strings.NewReader("ean,amount,name\n123,3,Widget\n999,4,Ghost\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Added)

	items := svc.ListItems()
	require.Len(t, items, 2)
	assert.Equal(t, 8, items[0].Amount)

	require.NoError(t, svc.Undo())
	assert.Equal(t, before, svc.ListItems())
}

func TestImportBatchRejectsBadSchemaWithoutWriting(t *testing.T) {
	before := []domain.Item{
		{EAN: "123", Amount: 5, Name: "Widget", Popular: "N"},
	}
	svc, path := newTestService(t, before)

	persisted, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = svc.ImportBatch(strings.NewReader("id,qty,label\n123,3,Widget\n"))
	assert.ErrorIs(t, err, ErrInvalidBatchHeader)

	// Whole-batch rejection: memory, disk and undo history all untouched.
	assert.Equal(t, before, svc.ListItems())
	assert.Equal(t, 0, svc.UndoDepth())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, persisted, after)
}
