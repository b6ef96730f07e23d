package repository

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/okerssen/inventory-api/internal/domain"
	"github.com/okerssen/inventory-api/internal/repository/dao"
)

var (
	ErrUnexpectedHeader   = dao.ErrUnexpectedHeader
	ErrInvalidBatchHeader = dao.ErrInvalidBatchHeader

	ErrIndexOutOfRange = errors.New("position is out of range")
	ErrMalformedAmount = errors.New("amount column is not an integer")
)

type InventoryDAO interface {
	ReadAll() ([]dao.Item, error)
	WriteAll(items []dao.Item) error
}

// InventoryStore holds the ordered in-memory collection and rewrites the
// whole persisted file on every mutation. It is not safe for concurrent
// use; the service serializes access.
type InventoryStore struct {
	dao   InventoryDAO
	items []domain.Item
}

func NewInventoryStore(dao InventoryDAO) *InventoryStore {
	return &InventoryStore{
		dao: dao,
	}
}

func (s *InventoryStore) daoToDomain(item dao.Item) (domain.Item, error) {
	amount, err := strconv.Atoi(item.Amount)
	if err != nil {
		return domain.Item{}, fmt.Errorf("%w: EAN %v has amount %q", ErrMalformedAmount, item.EAN, item.Amount)
	}

	return domain.Item{
		EAN:     item.EAN,
		Amount:  amount,
		Name:    item.Name,
		Popular: item.Popular,
	}, nil
}

func (s *InventoryStore) domainToDao(item domain.Item) dao.Item {
	return dao.Item{
		EAN:     item.EAN,
		Amount:  strconv.Itoa(item.Amount),
		Name:    item.Name,
		Popular: item.Popular,
	}
}

// Load reads the persisted collection into memory, creating an empty file
// with headers when none exists yet.
func (s *InventoryStore) Load() error {
	rows, err := s.dao.ReadAll()
	if err != nil {
		return fmt.Errorf("s.dao.ReadAll -> %w", err)
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		item, err := s.daoToDomain(row)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	s.items = items

	return nil
}

// Save rewrites the persisted file from memory, in current order. On
// failure the in-memory state is kept as-is so the caller can retry.
func (s *InventoryStore) Save() error {
	rows := make([]dao.Item, len(s.items))
	for i, item := range s.items {
		rows[i] = s.domainToDao(item)
	}

	if err := s.dao.WriteAll(rows); err != nil {
		return fmt.Errorf("s.dao.WriteAll -> %w", err)
	}

	return nil
}

// Items returns a copy of the collection in insertion order.
func (s *InventoryStore) Items() []domain.Item {
	return domain.CloneItems(s.items)
}

func (s *InventoryStore) Len() int {
	return len(s.items)
}

func (s *InventoryStore) ItemAt(position int) (domain.Item, error) {
	if position < 0 || position >= len(s.items) {
		return domain.Item{}, fmt.Errorf("%w: %v", ErrIndexOutOfRange, position)
	}

	return s.items[position], nil
}

// IndexOfCode returns the position of the first item with the given EAN,
// or -1. Duplicates are possible; the first match is authoritative.
func (s *InventoryStore) IndexOfCode(ean string) int {
	for i, item := range s.items {
		if item.EAN == ean {
			return i
		}
	}

	return -1
}

func (s *InventoryStore) Add(item domain.Item) error {
	s.items = append(s.items, item)

	return s.Save()
}

func (s *InventoryStore) Update(position int, item domain.Item) error {
	if position < 0 || position >= len(s.items) {
		return fmt.Errorf("%w: %v", ErrIndexOutOfRange, position)
	}

	s.items[position] = item

	return s.Save()
}

func (s *InventoryStore) Delete(position int) error {
	if position < 0 || position >= len(s.items) {
		return fmt.Errorf("%w: %v", ErrIndexOutOfRange, position)
	}

	s.items = append(s.items[:position], s.items[position+1:]...)

	return s.Save()
}

// ReplaceAll swaps in a whole new collection and saves once. Undo restore
// and batch reconciliation both write back through here.
func (s *InventoryStore) ReplaceAll(items []domain.Item) error {
	s.items = domain.CloneItems(items)

	return s.Save()
}

// ReadBatch decodes a reconciliation batch into domain entries. The amount
// column stays unparsed so the engine can skip bad rows one by one.
func (s *InventoryStore) ReadBatch(r io.Reader) ([]domain.BatchEntry, error) {
	rows, err := dao.ReadBatch(r)
	if err != nil {
		return nil, fmt.Errorf("dao.ReadBatch -> %w", err)
	}

	entries := make([]domain.BatchEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.BatchEntry{
			EAN:    row.EAN,
			Amount: row.Amount,
			Name:   row.Name,
		}
	}

	return entries, nil
}
