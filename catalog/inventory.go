package catalog

import (
	"sort"

	"sorteos/entity"
)

// Inventory is the in-memory ticket board for one raffle. The sale
// executor mutates it optimistically and reverts individual tickets on
// failure; a reconciliation reload replaces it wholesale. It is owned by a
// single workflow run and is not safe for concurrent use.
type Inventory struct {
	raffleID int
	tickets  map[int]entity.Ticket
}

func NewInventory(raffleID int, tickets []entity.Ticket) *Inventory {
	byID := make(map[int]entity.Ticket, len(tickets))
	for _, t := range tickets {
		byID[t.ID] = t
	}

	return &Inventory{
		raffleID: raffleID,
		tickets:  byID,
	}
}

func (inv *Inventory) RaffleID() int {
	return inv.raffleID
}

// Get returns a value copy of the ticket, suitable as a pre-attempt
// snapshot: reverting is a plain Put of this value.
func (inv *Inventory) Get(ticketID int) (entity.Ticket, bool) {
	t, ok := inv.tickets[ticketID]
	return t, ok
}

func (inv *Inventory) Put(t entity.Ticket) {
	inv.tickets[t.ID] = t
}

// Available returns AVAILABLE tickets sorted ascending by number.
func (inv *Inventory) Available() []entity.Ticket {
	return inv.sorted(func(t entity.Ticket) bool { return t.Available() })
}

// Sold returns SOLD tickets sorted ascending by number.
func (inv *Inventory) Sold() []entity.Ticket {
	return inv.sorted(func(t entity.Ticket) bool { return !t.Available() })
}

// Display returns the board in display order: AVAILABLE tickets before
// SOLD ones, each group ascending by number.
func (inv *Inventory) Display() []entity.Ticket {
	return append(inv.Available(), inv.Sold()...)
}

// All returns every ticket on the board in no particular order.
func (inv *Inventory) All() []entity.Ticket {
	tickets := make([]entity.Ticket, 0, len(inv.tickets))
	for _, t := range inv.tickets {
		tickets = append(tickets, t)
	}
	return tickets
}

func (inv *Inventory) sorted(keep func(entity.Ticket) bool) []entity.Ticket {
	var tickets []entity.Ticket
	for _, t := range inv.tickets {
		if keep(t) {
			tickets = append(tickets, t)
		}
	}

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].Number < tickets[j].Number
	})

	return tickets
}
