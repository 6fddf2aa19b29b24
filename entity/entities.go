package entity

import "time"

const (
	TicketAvailable = "AVAILABLE"
	TicketSold      = "SOLD"
)

type Raffle struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	TicketCount int       `json:"ticketCount"`
	Active      *bool     `json:"active,omitempty"`
}

// IsActiveAt reports whether the raffle can still sell tickets at the given
// instant: its date has not passed (day granularity) and it has not been
// explicitly deactivated. A nil Active flag counts as active.
func (r Raffle) IsActiveAt(now time.Time) bool {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if r.Date.Before(startOfDay) {
		return false
	}
	return r.Active == nil || *r.Active
}

type Ticket struct {
	ID         int        `json:"id"`
	Number     int        `json:"number"`
	Price      float64    `json:"price"`
	State      string     `json:"state"`
	RaffleID   int        `json:"raffleId"`
	CustomerID int        `json:"customerId,omitempty"`
	SoldAt     *time.Time `json:"soldAt,omitempty"`
}

func (t Ticket) Available() bool {
	return t.State == TicketAvailable
}

type Customer struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SaleRequest struct {
	RaffleID   int `json:"raffleId"`
	TicketID   int `json:"ticketId"`
	CustomerID int `json:"customerId"`
}

const (
	SaleStatusSold     = "sold"
	SaleStatusConflict = "conflict"
	SaleStatusFailed   = "failed"
)

// SaleRecord is one journaled sale attempt. The journal is an audit read
// model built from outcome events; the backend stays authoritative for
// ticket state.
type SaleRecord struct {
	BatchID      string    `json:"batchId" db:"batch_id"`
	RaffleID     int       `json:"raffleId" db:"raffle_id"`
	TicketID     int       `json:"ticketId" db:"ticket_id"`
	TicketNumber int       `json:"ticketNumber" db:"ticket_number"`
	CustomerID   int       `json:"customerId" db:"customer_id"`
	Status       string    `json:"status" db:"status"`
	Reason       string    `json:"reason,omitempty" db:"reason"`
	RecordedAt   time.Time `json:"recordedAt" db:"recorded_at"`
}

// History is the normalized shape of a customer history lookup. The backend
// answers either {customer, tickets} or a bare ticket array; both are folded
// into this type at the network boundary.
type History struct {
	Customer Customer `json:"customer"`
	Tickets  []Ticket `json:"tickets"`
}
