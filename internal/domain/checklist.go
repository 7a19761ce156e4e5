package domain

import (
	"math"
	"sort"
	"time"
)

type ChecklistItem struct {
	ID        string
	ProjectID string

	// Path groups items into a checklist section; each path maps onto
	// exactly one phase.
	Path string

	Title    string
	Checked  bool
	Position *int
	Comment  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SortChecklist orders items by position ascending. Items without a
// position sort after items with one; ties keep insertion order.
func SortChecklist(items []*ChecklistItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a := IntFromPtrWithDefault(math.MaxInt, items[i].Position)
		b := IntFromPtrWithDefault(math.MaxInt, items[j].Position)
		return a < b
	})
}
