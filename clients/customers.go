package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"sorteos/entity"
)

type CustomersClient struct {
	clients *Clients
}

func NewCustomersClient(clients *Clients) CustomersClient {
	return CustomersClient{
		clients: clients,
	}
}

func (c CustomersClient) Create(ctx context.Context, name, email string) (entity.Customer, error) {
	body := struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}{
		Name:  name,
		Email: email,
	}

	var customer entity.Customer
	if err := c.clients.do(ctx, http.MethodPost, "/clientes", body, &customer); err != nil {
		return entity.Customer{}, fmt.Errorf("creating customer: %w", err)
	}

	return customer, nil
}

func (c CustomersClient) List(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	if err := c.clients.do(ctx, http.MethodGet, "/clientes", nil, &customers); err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	return customers, nil
}

func (c CustomersClient) ByEmail(ctx context.Context, email string) (entity.Customer, error) {
	var customer entity.Customer
	path := "/clientes/correo/" + url.PathEscape(email)
	if err := c.clients.do(ctx, http.MethodGet, path, nil, &customer); err != nil {
		if statusOf(err) == http.StatusNotFound {
			return entity.Customer{}, fmt.Errorf("customer %q: %w", email, ErrNotFound)
		}
		return entity.Customer{}, fmt.Errorf("looking up customer by email: %w", err)
	}

	return customer, nil
}

func (c CustomersClient) Tickets(ctx context.Context, customerID int) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	path := fmt.Sprintf("/clientes/%d/billetes", customerID)
	if err := c.clients.do(ctx, http.MethodGet, path, nil, &tickets); err != nil {
		return nil, fmt.Errorf("listing tickets for customer %d: %w", customerID, err)
	}

	return tickets, nil
}

func (c CustomersClient) EmailExists(ctx context.Context, email string) (bool, error) {
	var res struct {
		Exists bool `json:"existe"`
	}
	path := "/clientes/existe?correo=" + url.QueryEscape(email)
	if err := c.clients.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}

	return res.Exists, nil
}

// History fetches the purchase history for an email. The backend answers
// with either {customer, tickets} or a bare ticket array; both shapes are
// normalized into entity.History here so nothing downstream branches on
// them. An unknown email yields an empty-customer placeholder rather than
// an error.
func (c CustomersClient) History(ctx context.Context, email string) (entity.History, error) {
	var raw json.RawMessage
	path := "/clientes/historial?correo=" + url.QueryEscape(email)
	if err := c.clients.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		if isUnknownCustomer(err) {
			return emptyHistory(email), nil
		}
		return entity.History{}, fmt.Errorf("fetching history for %q: %w", email, err)
	}

	return normalizeHistory(raw, email)
}

func normalizeHistory(raw json.RawMessage, email string) (entity.History, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var tickets []entity.Ticket
		if err := json.Unmarshal(raw, &tickets); err != nil {
			return entity.History{}, fmt.Errorf("unmarshalling history ticket list: %w", err)
		}

		history := emptyHistory(email)
		history.Tickets = tickets
		return history, nil
	}

	var history entity.History
	if err := json.Unmarshal(raw, &history); err != nil {
		return entity.History{}, fmt.Errorf("unmarshalling history: %w", err)
	}
	if history.Tickets == nil {
		history.Tickets = []entity.Ticket{}
	}

	return history, nil
}

func emptyHistory(email string) entity.History {
	return entity.History{
		Customer: entity.Customer{
			ID:    0,
			Name:  "",
			Email: email,
		},
		Tickets: []entity.Ticket{},
	}
}

// isUnknownCustomer matches the backend's "customer not found" answer for
// history lookups: a 400 or 404 whose message mentions "cliente". The
// backend does not send a structured error kind, so the message text is
// all there is to go on.
func isUnknownCustomer(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode != http.StatusBadRequest && apiErr.StatusCode != http.StatusNotFound {
		return false
	}

	return strings.Contains(strings.ToLower(apiErr.Message), "cliente")
}
