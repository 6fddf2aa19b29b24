package sale

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sorteos/catalog"
	"sorteos/clients"
	"sorteos/entity"
)

// ValidationError is a local precondition failure. It blocks the whole
// batch and never reaches the network.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	ErrNoRaffle        = &ValidationError{Reason: "no raffle selected"}
	ErrNoCustomer      = &ValidationError{Reason: "no customer selected"}
	ErrRaffleNotActive = &ValidationError{Reason: "raffle is no longer active"}
	ErrNoTickets       = &ValidationError{Reason: "no tickets selected"}
)

// ErrDeclined means the operator declined the confirmation step. Nothing
// was sent and nothing was mutated.
var ErrDeclined = errors.New("sale declined")

// Summary is what the operator confirms before any request is issued.
type Summary struct {
	RaffleName string
	Tickets    []entity.Ticket
	Total      float64
}

type Confirmer interface {
	ConfirmSale(ctx context.Context, summary Summary) (bool, error)
}

// AutoConfirm accepts every sale. Used where confirmation already happened
// upstream, e.g. in the admin API.
type AutoConfirm struct{}

func (AutoConfirm) ConfirmSale(context.Context, Summary) (bool, error) {
	return true, nil
}

type TicketSeller interface {
	SellTicket(ctx context.Context, sale entity.SaleRequest) (entity.Ticket, error)
}

// Executor runs a sale batch against the backend, one ticket at a time.
type Executor struct {
	seller TicketSeller
	now    func() time.Time
}

func NewExecutor(seller TicketSeller) *Executor {
	return &Executor{
		seller: seller,
		now:    time.Now,
	}
}

// Sell sells the given tickets of one raffle to one customer.
//
// Preconditions are re-checked here (not just at load time) so a raffle
// that expired between page load and sale attempt is caught. After the
// confirmation step, tickets are attempted strictly sequentially in the
// given order: each ticket is flipped to SOLD in the inventory before its
// request goes out, and flipped back from its own pre-attempt snapshot if
// the request fails. Conflict and generic failures are recorded per ticket
// and never abort the remaining attempts.
func (e *Executor) Sell(
	ctx context.Context,
	inv *catalog.Inventory,
	raffle entity.Raffle,
	customer entity.Customer,
	ticketIDs []int,
	confirm Confirmer,
) (Report, error) {
	if raffle.ID == 0 {
		return Report{}, ErrNoRaffle
	}
	if customer.ID == 0 {
		return Report{}, ErrNoCustomer
	}
	if !raffle.IsActiveAt(e.now()) {
		return Report{}, ErrRaffleNotActive
	}
	if len(ticketIDs) == 0 {
		return Report{}, ErrNoTickets
	}

	summary := Summary{RaffleName: raffle.Name}
	for _, id := range ticketIDs {
		t, ok := inv.Get(id)
		if !ok {
			return Report{}, &ValidationError{Reason: fmt.Sprintf("ticket %d is not on the board", id)}
		}
		summary.Tickets = append(summary.Tickets, t)
		summary.Total += t.Price
	}

	ok, err := confirm.ConfirmSale(ctx, summary)
	if err != nil {
		return Report{}, fmt.Errorf("confirming sale: %w", err)
	}
	if !ok {
		return Report{}, ErrDeclined
	}

	report := Report{
		BatchID:    uuid.NewString(),
		RaffleID:   raffle.ID,
		CustomerID: customer.ID,
		Succeeded:  []int{},
		Failed:     []int{},
	}

	for _, id := range ticketIDs {
		report.Attempts = append(report.Attempts, e.attempt(ctx, inv, raffle, customer, id))

		attempt := report.Attempts[len(report.Attempts)-1]
		if attempt.Status == AttemptSold {
			report.Succeeded = append(report.Succeeded, attempt.Number)
		} else {
			report.Failed = append(report.Failed, attempt.Number)
		}
	}

	report.Outcome = classify(len(report.Succeeded), len(report.Failed))

	return report, nil
}

// attempt runs the per-ticket state machine PENDING -> IN_FLIGHT ->
// {SOLD, REVERTED}. The snapshot is a value copy taken here, immediately
// before the optimistic flip, so the revert of this ticket cannot be
// affected by any other ticket's attempt.
func (e *Executor) attempt(
	ctx context.Context,
	inv *catalog.Inventory,
	raffle entity.Raffle,
	customer entity.Customer,
	ticketID int,
) Attempt {
	snapshot, _ := inv.Get(ticketID)
	attempt := Attempt{
		TicketID: ticketID,
		Number:   snapshot.Number,
		Price:    snapshot.Price,
		Status:   AttemptPending,
	}

	optimistic := snapshot
	optimistic.State = entity.TicketSold
	optimistic.CustomerID = customer.ID
	inv.Put(optimistic)

	attempt.Status = AttemptInFlight
	sold, err := e.seller.SellTicket(ctx, entity.SaleRequest{
		RaffleID:   raffle.ID,
		TicketID:   ticketID,
		CustomerID: customer.ID,
	})
	if err != nil {
		inv.Put(snapshot)
		attempt.Status = AttemptReverted
		attempt.Conflict = errors.Is(err, clients.ErrTicketUnavailable)
		attempt.Reason = err.Error()
		return attempt
	}

	inv.Put(sold)
	attempt.Status = AttemptSold

	return attempt
}
