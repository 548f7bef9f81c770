// Package position keeps sibling sets (stages of a pipeline, cards of a
// stage) in a dense 0..n-1 order.
//
// Every create, move and delete goes through the same functions so a set
// never mixes numbering schemes. Functions are pure; callers persist the
// result of Diff inside one transaction.
package position

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Item is the ordering view of a persisted row.
type Item struct {
	ID        uuid.UUID
	Position  int
	CreatedAt time.Time
}

// Normalize returns ids in display order. Ties on Position, which older data
// may contain, fall back to creation time and then id so the order is stable.
func Normalize(items []Item) []uuid.UUID {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		if a.Position != b.Position {
			return a.Position - b.Position
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})

	out := make([]uuid.UUID, len(sorted))
	for i, it := range sorted {
		out[i] = it.ID
	}
	return out
}

// Clamp bounds index to a valid insertion point for a set of length n.
func Clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}

// Insert places id at index. An id already present is moved instead.
func Insert(order []uuid.UUID, id uuid.UUID, index int) []uuid.UUID {
	out := Remove(order, id)
	index = Clamp(index, len(out))
	return slices.Insert(out, index, id)
}

// Move relocates id inside the same set. Unknown ids are inserted.
func Move(order []uuid.UUID, id uuid.UUID, index int) []uuid.UUID {
	return Insert(order, id, index)
}

// Remove drops id from the set, returning a new slice.
func Remove(order []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(order))
	for _, o := range order {
		if o != id {
			out = append(out, o)
		}
	}
	return out
}

// Assign maps each id to its dense position.
func Assign(order []uuid.UUID) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(order))
	for i, id := range order {
		out[id] = i
	}
	return out
}

// Diff returns only the rows whose stored position differs from the target.
func Diff(current []Item, target map[uuid.UUID]int) map[uuid.UUID]int {
	changed := make(map[uuid.UUID]int)
	for _, it := range current {
		if want, ok := target[it.ID]; ok && want != it.Position {
			changed[it.ID] = want
		}
	}
	return changed
}

// Next is the position appended items receive in a set of length n.
func Next(n int) int {
	return n
}
