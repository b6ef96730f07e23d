package service

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/okerssen/inventory-api/internal/domain"
	"github.com/okerssen/inventory-api/internal/repository"
)

var (
	ErrIndexOutOfRange    = repository.ErrIndexOutOfRange
	ErrInvalidBatchHeader = repository.ErrInvalidBatchHeader

	ErrCodeNotFound = errors.New("no item with that EAN")
)

type InventoryRepository interface {
	Items() []domain.Item
	Len() int
	ItemAt(position int) (domain.Item, error)
	IndexOfCode(ean string) int
	Add(item domain.Item) error
	Update(position int, item domain.Item) error
	Delete(position int) error
	ReplaceAll(items []domain.Item) error
	ReadBatch(r io.Reader) ([]domain.BatchEntry, error)
}

// InventoryService serializes every read-modify-write sequence behind one
// mutex, since the HTTP front-end serves requests concurrently. Each
// mutating operation brackets itself with an undo snapshot; undo itself
// does not, so it is destructive.
type InventoryService struct {
	mu   sync.Mutex
	repo InventoryRepository
	undo *UndoStack
}

func NewInventoryService(repo InventoryRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
		undo: NewUndoStack(),
	}
}

func (s *InventoryService) ListItems() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Items()
}

// FindByCode returns the position and value of the first item with the
// given EAN.
func (s *InventoryService) FindByCode(ean string) (int, domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	position := s.repo.IndexOfCode(ean)
	if position < 0 {
		return 0, domain.Item{}, fmt.Errorf("%w: %v", ErrCodeNotFound, ean)
	}

	item, err := s.repo.ItemAt(position)
	if err != nil {
		return 0, domain.Item{}, fmt.Errorf("s.repo.ItemAt -> %w", err)
	}

	return position, item, nil
}

func (s *InventoryService) AddItem(item domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo.Push(s.repo.Items())

	if err := s.repo.Add(item); err != nil {
		return fmt.Errorf("s.repo.Add -> %w", err)
	}

	return nil
}

func (s *InventoryService) UpdateItem(position int, item domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the position before snapshotting so a rejected request
	// leaves no history entry behind.
	if _, err := s.repo.ItemAt(position); err != nil {
		return fmt.Errorf("s.repo.ItemAt -> %w", err)
	}

	s.undo.Push(s.repo.Items())

	if err := s.repo.Update(position, item); err != nil {
		return fmt.Errorf("s.repo.Update -> %w", err)
	}

	return nil
}

func (s *InventoryService) DeleteItem(position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.ItemAt(position); err != nil {
		return fmt.Errorf("s.repo.ItemAt -> %w", err)
	}

	s.undo.Push(s.repo.Items())

	if err := s.repo.Delete(position); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ImportBatch decodes and reconciles a batch. A header mismatch rejects
// the batch wholesale, before any snapshot or save.
func (s *InventoryService) ImportBatch(r io.Reader) (domain.ReconcileReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.ReadBatch(r)
	if err != nil {
		return domain.ReconcileReport{}, fmt.Errorf("s.repo.ReadBatch -> %w", err)
	}

	s.undo.Push(s.repo.Items())

	report, err := Reconcile(s.repo, entries)
	if err != nil {
		return domain.ReconcileReport{}, fmt.Errorf("Reconcile -> %w", err)
	}

	return report, nil
}

// Undo restores the most recent snapshot. With no history it fails with
// ErrNothingToUndo and the collection stays untouched.
func (s *InventoryService) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.undo.Pop()
	if err != nil {
		return err
	}

	if err := s.repo.ReplaceAll(snapshot); err != nil {
		return fmt.Errorf("s.repo.ReplaceAll -> %w", err)
	}

	return nil
}

// UndoDepth reports how many snapshots are available.
func (s *InventoryService) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.undo.Len()
}
