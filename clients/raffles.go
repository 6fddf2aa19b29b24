package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"sorteos/entity"
)

type RafflesClient struct {
	clients *Clients
}

func NewRafflesClient(clients *Clients) RafflesClient {
	return RafflesClient{
		clients: clients,
	}
}

func (c RafflesClient) List(ctx context.Context) ([]entity.Raffle, error) {
	var raffles []entity.Raffle
	if err := c.clients.do(ctx, http.MethodGet, "/sorteos", nil, &raffles); err != nil {
		return nil, fmt.Errorf("listing raffles: %w", err)
	}

	return raffles, nil
}

func (c RafflesClient) Create(ctx context.Context, name string, date time.Time) (entity.Raffle, error) {
	body := struct {
		Name string    `json:"name"`
		Date time.Time `json:"date"`
	}{
		Name: name,
		Date: date,
	}

	var raffle entity.Raffle
	if err := c.clients.do(ctx, http.MethodPost, "/sorteos", body, &raffle); err != nil {
		return entity.Raffle{}, fmt.Errorf("creating raffle: %w", err)
	}

	return raffle, nil
}

func (c RafflesClient) Tickets(ctx context.Context, raffleID int) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	path := fmt.Sprintf("/sorteos/%d/billetes", raffleID)
	if err := c.clients.do(ctx, http.MethodGet, path, nil, &tickets); err != nil {
		return nil, fmt.Errorf("listing tickets for raffle %d: %w", raffleID, err)
	}

	return tickets, nil
}

func (c RafflesClient) GenerateTickets(ctx context.Context, raffleID, count int, price float64) ([]entity.Ticket, error) {
	query := url.Values{}
	query.Set("cantidad", fmt.Sprintf("%d", count))
	query.Set("precio", fmt.Sprintf("%g", price))

	var tickets []entity.Ticket
	path := fmt.Sprintf("/sorteos/%d/billetes?%s", raffleID, query.Encode())
	if err := c.clients.do(ctx, http.MethodPost, path, nil, &tickets); err != nil {
		return nil, fmt.Errorf("generating %d tickets for raffle %d: %w", count, raffleID, err)
	}

	return tickets, nil
}
