package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sorteos/entity"
)

type RaffleLister interface {
	List(ctx context.Context) ([]entity.Raffle, error)
}

type TicketLister interface {
	Tickets(ctx context.Context, raffleID int) ([]entity.Ticket, error)
}

// Loader fetches the raffle catalog from the backend. Raffles and tickets
// are loaded independently so that one failing does not block the other.
type Loader struct {
	raffles RaffleLister
	tickets TicketLister
	cache   *Cache
	now     func() time.Time
}

func NewLoader(raffles RaffleLister, tickets TicketLister, cache *Cache) *Loader {
	return &Loader{
		raffles: raffles,
		tickets: tickets,
		cache:   cache,
		now:     time.Now,
	}
}

// ActiveRaffles returns raffles whose date has not passed and which are not
// explicitly deactivated, sorted ascending by date.
func (l *Loader) ActiveRaffles(ctx context.Context) ([]entity.Raffle, error) {
	raffles, ok := l.cache.Get(ctx)
	if !ok {
		var err error
		raffles, err = l.raffles.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading raffles: %w", err)
		}
		l.cache.Set(ctx, raffles)
	}

	now := l.now()
	var active []entity.Raffle
	for _, r := range raffles {
		if r.IsActiveAt(now) {
			active = append(active, r)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].Date.Before(active[j].Date)
	})

	return active, nil
}

// Board loads the ticket inventory for one raffle.
func (l *Loader) Board(ctx context.Context, raffleID int) (*Inventory, error) {
	tickets, err := l.tickets.Tickets(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("loading tickets: %w", err)
	}

	return NewInventory(raffleID, tickets), nil
}
