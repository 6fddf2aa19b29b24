// Package history builds the read-only purchase summary projection. It
// never mutates backend state; it is recomputed from a fresh ticket fetch
// after every load and after every sale batch.
package history

import (
	"sort"

	"sorteos/entity"
)

// Summarize returns the SOLD tickets ordered most-recent-first by sale
// timestamp. When either side of a comparison lacks a timestamp the pair
// falls back to ascending ticket number.
func Summarize(tickets []entity.Ticket) []entity.Ticket {
	var sold []entity.Ticket
	for _, t := range tickets {
		if !t.Available() {
			sold = append(sold, t)
		}
	}

	sort.SliceStable(sold, func(i, j int) bool {
		a, b := sold[i], sold[j]
		if a.SoldAt == nil || b.SoldAt == nil {
			return a.Number < b.Number
		}
		return a.SoldAt.After(*b.SoldAt)
	})

	return sold
}
