package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"sorteos/entity"
	"sorteos/history"
	"sorteos/sale"
	"sorteos/selection"
)

type handler struct {
	loader    CatalogLoader
	raffles   RaffleDirectory
	customers CustomerDirectory
	workflow  SaleWorkflow
	journal   JournalLister
}

type createRaffleRequest struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

type sellRequest struct {
	RaffleID   int    `json:"raffleId"`
	CustomerID int    `json:"customerId"`
	TicketIDs  []int  `json:"ticketIds"`
	Mode       string `json:"mode,omitempty"`
}

type sellResponse struct {
	Report    sale.Report     `json:"report"`
	Board     []entity.Ticket `json:"board"`
	Purchases []entity.Ticket `json:"purchases"`
}

func (h handler) ListRaffles(c echo.Context) error {
	raffles, err := h.loader.ActiveRaffles(c.Request().Context())
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "could not load raffles",
			Internal: err,
		}
	}

	if raffles == nil {
		raffles = []entity.Raffle{}
	}

	return c.JSON(http.StatusOK, raffles)
}

func (h handler) CreateRaffle(c echo.Context) error {
	var req createRaffleRequest
	if err := c.Bind(&req); err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadRequest,
			Message:  "failed to parse request",
			Internal: fmt.Errorf("binding request: %w", err),
		}
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "raffle name is required")
	}

	raffle, err := h.raffles.Create(c.Request().Context(), req.Name, req.Date)
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "could not create raffle",
			Internal: err,
		}
	}

	return c.JSON(http.StatusCreated, raffle)
}

func (h handler) ListTickets(c echo.Context) error {
	raffleID, err := pathID(c)
	if err != nil {
		return err
	}

	board, err := h.loader.Board(c.Request().Context(), raffleID)
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "could not load tickets",
			Internal: err,
		}
	}

	return c.JSON(http.StatusOK, board.Display())
}

func (h handler) GenerateTickets(c echo.Context) error {
	raffleID, err := pathID(c)
	if err != nil {
		return err
	}

	count, err := strconv.Atoi(c.QueryParam("count"))
	if err != nil || count <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "count must be a positive integer")
	}

	price, err := strconv.ParseFloat(c.QueryParam("price"), 64)
	if err != nil || price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be a non-negative number")
	}

	tickets, err := h.raffles.GenerateTickets(c.Request().Context(), raffleID, count, price)
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "could not generate tickets",
			Internal: err,
		}
	}

	return c.JSON(http.StatusCreated, tickets)
}

func (h handler) ListPurchases(c echo.Context) error {
	raffleID, err := pathID(c)
	if err != nil {
		return err
	}

	board, err := h.loader.Board(c.Request().Context(), raffleID)
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "could not load tickets",
			Internal: err,
		}
	}

	purchases := history.Summarize(board.All())
	if purchases == nil {
		purchases = []entity.Ticket{}
	}

	return c.JSON(http.StatusOK, purchases)
}

func (h handler) ListJournal(c echo.Context) error {
	raffleID, err := pathID(c)
	if err != nil {
		return err
	}

	records, err := h.journal.ListByRaffle(c.Request().Context(), raffleID)
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusInternalServerError,
			Message:  "could not load sale journal",
			Internal: err,
		}
	}

	if records == nil {
		records = []entity.SaleRecord{}
	}

	return c.JSON(http.StatusOK, records)
}

// Sell runs a sale batch. The admin UI collects the operator's
// confirmation before calling this, so the workflow runs pre-confirmed.
func (h handler) Sell(c echo.Context) error {
	var req sellRequest
	if err := c.Bind(&req); err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadRequest,
			Message:  "failed to parse request",
			Internal: fmt.Errorf("binding request: %w", err),
		}
	}

	ctx := c.Request().Context()

	raffle, err := h.findRaffle(c, req.RaffleID)
	if err != nil {
		return err
	}

	board, err := h.loader.Board(ctx, req.RaffleID)
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "could not load tickets",
			Internal: err,
		}
	}

	sel := selection.New()
	sel.SetRaffle(req.RaffleID)

	if req.Mode == string(selection.ModeSingle) || len(req.TicketIDs) == 1 && req.Mode == "" {
		if len(req.TicketIDs) != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "single mode requires exactly one ticket")
		}

		ticket, ok := board.Get(req.TicketIDs[0])
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("ticket %d is not on the board", req.TicketIDs[0]))
		}
		if err := sel.Select(ticket); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "ticket is not available")
		}
	} else {
		for _, id := range req.TicketIDs {
			ticket, ok := board.Get(id)
			if !ok {
				return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("ticket %d is not on the board", id))
			}
			sel.Toggle(ticket)
		}
	}

	result, err := h.workflow.SellSelected(ctx, board, raffle, entity.Customer{ID: req.CustomerID}, sel, sale.AutoConfirm{})
	if err != nil {
		var validationErr *sale.ValidationError
		if errors.As(err, &validationErr) {
			return echo.NewHTTPError(http.StatusBadRequest, validationErr.Reason)
		}

		return &echo.HTTPError{
			Code:     http.StatusInternalServerError,
			Message:  "sale failed",
			Internal: err,
		}
	}

	purchases := result.Purchases
	if purchases == nil {
		purchases = []entity.Ticket{}
	}

	return c.JSON(http.StatusOK, sellResponse{
		Report:    result.Report,
		Board:     result.Inventory.Display(),
		Purchases: purchases,
	})
}

func (h handler) ListCustomers(c echo.Context) error {
	customers, err := h.customers.List(c.Request().Context())
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "could not load customers",
			Internal: err,
		}
	}

	if customers == nil {
		customers = []entity.Customer{}
	}

	return c.JSON(http.StatusOK, customers)
}

func (h handler) CreateCustomer(c echo.Context) error {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadRequest,
			Message:  "failed to parse request",
			Internal: fmt.Errorf("binding request: %w", err),
		}
	}
	if req.Name == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and email are required")
	}

	customer, err := h.customers.Create(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "could not create customer",
			Internal: err,
		}
	}

	return c.JSON(http.StatusCreated, customer)
}

func (h handler) CustomerExists(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	exists, err := h.customers.EmailExists(c.Request().Context(), email)
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "could not check customer email",
			Internal: err,
		}
	}

	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}

func (h handler) ListCustomerTickets(c echo.Context) error {
	customerID, err := pathID(c)
	if err != nil {
		return err
	}

	tickets, err := h.customers.Tickets(c.Request().Context(), customerID)
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "could not load customer tickets",
			Internal: err,
		}
	}

	if tickets == nil {
		tickets = []entity.Ticket{}
	}

	return c.JSON(http.StatusOK, tickets)
}

func (h handler) CustomerHistory(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	history, err := h.customers.History(c.Request().Context(), email)
	if err != nil {
		return &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "could not load history",
			Internal: err,
		}
	}

	return c.JSON(http.StatusOK, history)
}

// findRaffle resolves the raffle by id from the full backend list; the
// executor re-checks the activity window itself.
func (h handler) findRaffle(c echo.Context, raffleID int) (entity.Raffle, error) {
	if raffleID == 0 {
		return entity.Raffle{}, echo.NewHTTPError(http.StatusBadRequest, sale.ErrNoRaffle.Reason)
	}

	raffles, err := h.raffles.List(c.Request().Context())
	if err != nil {
		return entity.Raffle{}, &echo.HTTPError{
			Code:     http.StatusBadGateway,
			Message:  "could not load raffles",
			Internal: err,
		}
	}

	for _, r := range raffles {
		if r.ID == raffleID {
			return r, nil
		}
	}

	return entity.Raffle{}, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("raffle %d not found", raffleID))
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id in path")
	}
	return id, nil
}
