package dao

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrUnexpectedHeader = errors.New("inventory file has an unexpected header")
)

// inventoryHeader is the fixed column order of the persisted file.
var inventoryHeader = []string{"ean", "amount", "name", "popular"}

// Item is one raw row of the inventory file. All columns stay strings at
// this layer; the repository converts to domain types.
type Item struct {
	EAN     string
	Amount  string
	Name    string
	Popular string
}

// InventoryFile owns the on-disk CSV representation of the inventory.
type InventoryFile struct {
	path string
}

func NewInventoryFile(path string) *InventoryFile {
	return &InventoryFile{
		path: path,
	}
}

func (f *InventoryFile) Path() string {
	return f.path
}

// ReadAll reads every data row from the file. A missing file is created
// with the header row and yields an empty collection.
func (f *InventoryFile) ReadAll() ([]Item, error) {
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll -> %w", err)
		}
	}

	if _, err := os.Stat(f.path); errors.Is(err, os.ErrNotExist) {
		if err := f.WriteAll(nil); err != nil {
			return nil, err
		}
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("os.Stat -> %w", err)
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("os.Open -> %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reader.ReadAll -> %w", err)
	}

	if len(records) == 0 || !headerEquals(records[0], inventoryHeader) {
		return nil, fmt.Errorf("%w: want %v", ErrUnexpectedHeader, inventoryHeader)
	}

	items := make([]Item, 0, len(records)-1)
	for _, record := range records[1:] {
		items = append(items, Item{
			EAN:     record[0],
			Amount:  record[1],
			Name:    record[2],
			Popular: record[3],
		})
	}

	return items, nil
}

// WriteAll rewrites the whole file: header first, then one row per item,
// in the given order.
func (f *InventoryFile) WriteAll(items []Item) error {
	file, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("os.Create -> %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(inventoryHeader); err != nil {
		return fmt.Errorf("writer.Write -> %w", err)
	}
	for _, item := range items {
		if err := writer.Write([]string{item.EAN, item.Amount, item.Name, item.Popular}); err != nil {
			return fmt.Errorf("writer.Write -> %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writer.Flush -> %w", err)
	}

	return nil
}

func headerEquals(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
