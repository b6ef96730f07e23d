package service

import (
	"errors"

	"github.com/okerssen/inventory-api/internal/domain"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
)

// UndoStack keeps whole-collection snapshots, newest last. Snapshots are
// independent copies; popping is destructive, there is no redo.
type UndoStack struct {
	snapshots [][]domain.Item
}

func NewUndoStack() *UndoStack {
	return &UndoStack{}
}

// Push captures an independent copy of the collection.
func (u *UndoStack) Push(items []domain.Item) {
	u.snapshots = append(u.snapshots, domain.CloneItems(items))
}

// Pop removes and returns the most recent snapshot.
func (u *UndoStack) Pop() ([]domain.Item, error) {
	if len(u.snapshots) == 0 {
		return nil, ErrNothingToUndo
	}

	snapshot := u.snapshots[len(u.snapshots)-1]
	u.snapshots = u.snapshots[:len(u.snapshots)-1]

	return snapshot, nil
}

func (u *UndoStack) Len() int {
	return len(u.snapshots)
}
