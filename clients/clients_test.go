package clients_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sorteos/clients"
	"sorteos/entity"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *clients.Clients {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := clients.New(server.URL)
	require.NoError(t, err)

	return c
}

func TestListRaffles(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/sorteos", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Correlation-ID"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"New Year","date":"2099-01-01T00:00:00Z","ticketCount":100}]`))
	})

	raffles, err := clients.NewRafflesClient(backend).List(context.Background())
	require.NoError(t, err)

	require.Len(t, raffles, 1)
	assert.Equal(t, "New Year", raffles[0].Name)
	assert.Equal(t, 100, raffles[0].TicketCount)
}

func TestGenerateTickets(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sorteos/3/billetes", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("cantidad"))
		assert.Equal(t, "500", r.URL.Query().Get("precio"))

		w.Write([]byte(`[{"id":1,"number":1,"price":500,"state":"AVAILABLE","raffleId":3}]`))
	})

	tickets, err := clients.NewRafflesClient(backend).GenerateTickets(context.Background(), 3, 10, 500)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
}

func TestSellTicket(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ventas", r.URL.Path)

		w.Write([]byte(`{"id":10,"number":1,"price":1000,"state":"SOLD","raffleId":1,"customerId":5}`))
	})

	ticket, err := clients.NewSalesClient(backend).SellTicket(context.Background(), entity.SaleRequest{
		RaffleID:   1,
		TicketID:   10,
		CustomerID: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TicketSold, ticket.State)
	assert.Equal(t, 5, ticket.CustomerID)
}

func TestSellTicketConflict(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "billete ya vendido", http.StatusConflict)
	})

	_, err := clients.NewSalesClient(backend).SellTicket(context.Background(), entity.SaleRequest{
		RaffleID:   1,
		TicketID:   10,
		CustomerID: 5,
	})

	require.ErrorIs(t, err, clients.ErrTicketUnavailable)
}

func TestSellTicketGenericFailure(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := clients.NewSalesClient(backend).SellTicket(context.Background(), entity.SaleRequest{TicketID: 10})

	require.Error(t, err)
	assert.NotErrorIs(t, err, clients.ErrTicketUnavailable)

	var apiErr *clients.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestCustomerByEmailNotFound(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no existe", http.StatusNotFound)
	})

	_, err := clients.NewCustomersClient(backend).ByEmail(context.Background(), "ghost@example.com")

	require.ErrorIs(t, err, clients.ErrNotFound)
}

func TestEmailExists(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clientes/existe", r.URL.Path)
		assert.Equal(t, "someone@example.com", r.URL.Query().Get("correo"))

		w.Write([]byte(`{"existe":true}`))
	})

	exists, err := clients.NewCustomersClient(backend).EmailExists(context.Background(), "someone@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestHistoryObjectShape(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clientes/historial", r.URL.Path)

		w.Write([]byte(`{
			"customer": {"id":5,"name":"Ana","email":"ana@example.com"},
			"tickets": [{"id":10,"number":1,"price":1000,"state":"SOLD","raffleId":1,"customerId":5}]
		}`))
	})

	history, err := clients.NewCustomersClient(backend).History(context.Background(), "ana@example.com")
	require.NoError(t, err)

	assert.Equal(t, 5, history.Customer.ID)
	require.Len(t, history.Tickets, 1)
	assert.Equal(t, 1, history.Tickets[0].Number)
}

func TestHistoryBareArrayShape(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":10,"number":1,"price":1000,"state":"SOLD","raffleId":1,"customerId":5}]`))
	})

	history, err := clients.NewCustomersClient(backend).History(context.Background(), "ana@example.com")
	require.NoError(t, err)

	assert.Equal(t, 0, history.Customer.ID)
	assert.Equal(t, "ana@example.com", history.Customer.Email)
	require.Len(t, history.Tickets, 1)
}

func TestHistoryUnknownCustomerPlaceholder(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cliente no encontrado", http.StatusNotFound)
	})

	history, err := clients.NewCustomersClient(backend).History(context.Background(), "ghost@example.com")
	require.NoError(t, err, "an unknown customer is a placeholder, not an error")

	assert.Equal(t, entity.Customer{ID: 0, Name: "", Email: "ghost@example.com"}, history.Customer)
	assert.Empty(t, history.Tickets)
}

func TestHistoryUnrelatedErrorIsNotPlaceholder(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database exploded", http.StatusInternalServerError)
	})

	_, err := clients.NewCustomersClient(backend).History(context.Background(), "ana@example.com")
	require.Error(t, err)
}
