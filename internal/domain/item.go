package domain

// NotPopular is the marker written for items created by a batch import.
// Manual entry stores whatever marker the client sends, verbatim.
const NotPopular = "N"

type Item struct {
	EAN     string `json:"ean"`
	Amount  int    `json:"amount"`
	Name    string `json:"name"`
	Popular string `json:"popular"`
}

// CloneItems returns an independent copy of the collection, suitable for
// undo snapshots and defensive reads.
func CloneItems(items []Item) []Item {
	cloned := make([]Item, len(items))
	copy(cloned, items)
	return cloned
}
