package response

import (
	"github.com/okerssen/inventory-api/internal/domain"
)

// Item is one inventory line plus its position in the collection, so a
// client can address rows positionally for edit and delete.
type Item struct {
	Position int    `json:"position"`
	EAN      string `json:"ean"`
	Amount   int    `json:"amount"`
	Name     string `json:"name"`
	Popular  string `json:"popular"`
}

func NewItem(position int, item domain.Item) Item {
	return Item{
		Position: position,
		EAN:      item.EAN,
		Amount:   item.Amount,
		Name:     item.Name,
		Popular:  item.Popular,
	}
}

func NewItemList(items []domain.Item) []Item {
	list := make([]Item, len(items))
	for i, item := range items {
		list[i] = NewItem(i, item)
	}
	return list
}

type ImportReport struct {
	Updated  int                `json:"updated"`
	Added    int                `json:"added"`
	Warnings []domain.RowResult `json:"warnings"`
	Rows     []domain.RowResult `json:"rows"`
}

func NewImportReport(report domain.ReconcileReport) ImportReport {
	return ImportReport{
		Updated:  report.Updated,
		Added:    report.Added,
		Warnings: report.Warnings(),
		Rows:     report.Rows,
	}
}

type Undo struct {
	Message   string `json:"message"`
	Remaining int    `json:"remaining"`
}
