package sale

type Outcome string

const (
	// OutcomeFull means every ticket in the batch was sold.
	OutcomeFull Outcome = "FULL"
	// OutcomePartial means some tickets sold and some failed.
	OutcomePartial Outcome = "PARTIAL"
	// OutcomeNone means no tickets were sold.
	OutcomeNone Outcome = "NONE"
)

type AttemptStatus string

const (
	AttemptPending  AttemptStatus = "PENDING"
	AttemptInFlight AttemptStatus = "IN_FLIGHT"
	AttemptSold     AttemptStatus = "SOLD"
	AttemptReverted AttemptStatus = "REVERTED"
)

// Attempt is the per-ticket record of one sale try. A failed attempt ends
// REVERTED with the ticket restored to its pre-attempt snapshot.
type Attempt struct {
	TicketID int           `json:"ticketId"`
	Number   int           `json:"number"`
	Price    float64       `json:"price"`
	Status   AttemptStatus `json:"status"`
	Conflict bool          `json:"conflict,omitempty"`
	Reason   string        `json:"reason,omitempty"`
}

// Report is the outcome of one sale batch. Succeeded and Failed hold
// ticket numbers in attempt order.
type Report struct {
	BatchID    string    `json:"batchId"`
	RaffleID   int       `json:"raffleId"`
	CustomerID int       `json:"customerId"`
	Outcome    Outcome   `json:"outcome"`
	Succeeded  []int     `json:"succeeded"`
	Failed     []int     `json:"failed"`
	Attempts   []Attempt `json:"attempts"`
}

func classify(succeeded, failed int) Outcome {
	switch {
	case failed == 0:
		return OutcomeFull
	case succeeded == 0:
		return OutcomeNone
	default:
		return OutcomePartial
	}
}
