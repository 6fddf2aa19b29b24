package clients

import (
	"context"
	"fmt"
	"net/http"

	"sorteos/entity"
)

type SalesClient struct {
	clients *Clients
}

func NewSalesClient(clients *Clients) SalesClient {
	return SalesClient{
		clients: clients,
	}
}

// SellTicket asks the backend to sell one ticket. A 409-class response
// means another actor won the race for the ticket and is reported as
// ErrTicketUnavailable; any other failure is passed through as-is.
func (c SalesClient) SellTicket(ctx context.Context, sale entity.SaleRequest) (entity.Ticket, error) {
	var ticket entity.Ticket
	if err := c.clients.do(ctx, http.MethodPost, "/ventas", sale, &ticket); err != nil {
		if statusOf(err) == http.StatusConflict {
			return entity.Ticket{}, fmt.Errorf("selling ticket %d: %w", sale.TicketID, ErrTicketUnavailable)
		}
		return entity.Ticket{}, fmt.Errorf("selling ticket %d: %w", sale.TicketID, err)
	}

	return ticket, nil
}
