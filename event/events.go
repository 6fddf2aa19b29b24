package event

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

type header struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func newHeader(idempotencyKey string) header {
	return header{
		ID:             watermill.NewUUID(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

type TicketSold struct {
	Header       header  `json:"header"`
	BatchID      string  `json:"batch_id"`
	RaffleID     int     `json:"raffle_id"`
	TicketID     int     `json:"ticket_id"`
	TicketNumber int     `json:"ticket_number"`
	CustomerID   int     `json:"customer_id"`
	Price        float64 `json:"price"`
}

func NewTicketSold(idempotencyKey, batchID string, raffleID, customerID, ticketID, ticketNumber int, price float64) TicketSold {
	return TicketSold{
		Header:       newHeader(idempotencyKey),
		BatchID:      batchID,
		RaffleID:     raffleID,
		TicketID:     ticketID,
		TicketNumber: ticketNumber,
		CustomerID:   customerID,
		Price:        price,
	}
}

type TicketSaleFailed struct {
	Header       header `json:"header"`
	BatchID      string `json:"batch_id"`
	RaffleID     int    `json:"raffle_id"`
	TicketID     int    `json:"ticket_id"`
	TicketNumber int    `json:"ticket_number"`
	CustomerID   int    `json:"customer_id"`
	Conflict     bool   `json:"conflict"`
	Reason       string `json:"reason"`
}

func NewTicketSaleFailed(idempotencyKey, batchID string, raffleID, customerID, ticketID, ticketNumber int, conflict bool, reason string) TicketSaleFailed {
	return TicketSaleFailed{
		Header:       newHeader(idempotencyKey),
		BatchID:      batchID,
		RaffleID:     raffleID,
		TicketID:     ticketID,
		TicketNumber: ticketNumber,
		CustomerID:   customerID,
		Conflict:     conflict,
		Reason:       reason,
	}
}

type SaleBatchCompleted struct {
	Header     header `json:"header"`
	BatchID    string `json:"batch_id"`
	RaffleID   int    `json:"raffle_id"`
	CustomerID int    `json:"customer_id"`
	Outcome    string `json:"outcome"`
	Succeeded  []int  `json:"succeeded"`
	Failed     []int  `json:"failed"`
}

func NewSaleBatchCompleted(idempotencyKey, batchID string, raffleID, customerID int, outcome string, succeeded, failed []int) SaleBatchCompleted {
	return SaleBatchCompleted{
		Header:     newHeader(idempotencyKey),
		BatchID:    batchID,
		RaffleID:   raffleID,
		CustomerID: customerID,
		Outcome:    outcome,
		Succeeded:  succeeded,
		Failed:     failed,
	}
}
