package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sorteos/catalog"
	"sorteos/entity"
)

func TestInventoryDisplayOrder(t *testing.T) {
	inv := catalog.NewInventory(1, []entity.Ticket{
		{ID: 4, Number: 7, State: entity.TicketSold},
		{ID: 1, Number: 3, State: entity.TicketAvailable},
		{ID: 3, Number: 2, State: entity.TicketSold},
		{ID: 2, Number: 1, State: entity.TicketAvailable},
	})

	display := inv.Display()
	require.Len(t, display, 4)

	// AVAILABLE before SOLD, each group ascending by number.
	assert.Equal(t, []int{1, 3, 2, 7}, numbers(display))
	assert.Equal(t, []int{1, 3}, numbers(inv.Available()))
	assert.Equal(t, []int{2, 7}, numbers(inv.Sold()))
}

func TestInventoryGetReturnsSnapshot(t *testing.T) {
	inv := catalog.NewInventory(1, []entity.Ticket{
		{ID: 10, Number: 1, State: entity.TicketAvailable},
	})

	snapshot, ok := inv.Get(10)
	require.True(t, ok)

	mutated := snapshot
	mutated.State = entity.TicketSold
	inv.Put(mutated)

	// The earlier snapshot is untouched by the Put and restores the
	// ticket wholesale.
	assert.Equal(t, entity.TicketAvailable, snapshot.State)
	inv.Put(snapshot)

	restored, ok := inv.Get(10)
	require.True(t, ok)
	assert.Equal(t, entity.TicketAvailable, restored.State)
}

func TestInventoryGetUnknownTicket(t *testing.T) {
	inv := catalog.NewInventory(1, nil)

	_, ok := inv.Get(99)
	assert.False(t, ok)
}

func numbers(tickets []entity.Ticket) []int {
	var ns []int
	for _, t := range tickets {
		ns = append(ns, t.Number)
	}
	return ns
}
