package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/lithammer/shortuuid/v3"

	"sorteos/catalog"
	"sorteos/correlation"
	"sorteos/entity"
	"sorteos/sale"
	"sorteos/selection"
)

var ErrServerClosed = http.ErrServerClosed

type CatalogLoader interface {
	ActiveRaffles(ctx context.Context) ([]entity.Raffle, error)
	Board(ctx context.Context, raffleID int) (*catalog.Inventory, error)
}

type RaffleDirectory interface {
	List(ctx context.Context) ([]entity.Raffle, error)
	Create(ctx context.Context, name string, date time.Time) (entity.Raffle, error)
	GenerateTickets(ctx context.Context, raffleID, count int, price float64) ([]entity.Ticket, error)
}

type CustomerDirectory interface {
	List(ctx context.Context) ([]entity.Customer, error)
	Create(ctx context.Context, name, email string) (entity.Customer, error)
	ByEmail(ctx context.Context, email string) (entity.Customer, error)
	Tickets(ctx context.Context, customerID int) ([]entity.Ticket, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	History(ctx context.Context, email string) (entity.History, error)
}

type SaleWorkflow interface {
	SellSelected(
		ctx context.Context,
		inv *catalog.Inventory,
		raffle entity.Raffle,
		customer entity.Customer,
		sel *selection.Selection,
		confirm sale.Confirmer,
	) (sale.Result, error)
}

type JournalLister interface {
	ListByRaffle(ctx context.Context, raffleID int) ([]entity.SaleRecord, error)
}

type RouterDeps struct {
	Loader    CatalogLoader
	Raffles   RaffleDirectory
	Customers CustomerDirectory
	Workflow  SaleWorkflow
	Journal   JournalLister
}

func NewRouter(deps RouterDeps) *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.Use(echoMiddleware.Recover())
	server.Use(correlationIDMiddleware)

	server.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	h := handler{
		loader:    deps.Loader,
		raffles:   deps.Raffles,
		customers: deps.Customers,
		workflow:  deps.Workflow,
		journal:   deps.Journal,
	}

	server.GET("/raffles", h.ListRaffles)
	server.POST("/raffles", h.CreateRaffle)
	server.GET("/raffles/:id/tickets", h.ListTickets)
	server.POST("/raffles/:id/tickets", h.GenerateTickets)
	server.GET("/raffles/:id/purchases", h.ListPurchases)
	server.GET("/raffles/:id/journal", h.ListJournal)
	server.POST("/sales", h.Sell)
	server.GET("/customers", h.ListCustomers)
	server.POST("/customers", h.CreateCustomer)
	server.GET("/customers/exists", h.CustomerExists)
	server.GET("/customers/history", h.CustomerHistory)
	server.GET("/customers/:id/tickets", h.ListCustomerTickets)

	return server
}

func correlationIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		correlationID := c.Request().Header.Get(correlation.HeaderKey)
		if correlationID == "" {
			correlationID = "gen_" + shortuuid.New()
		}

		ctx := correlation.ContextWithID(c.Request().Context(), correlationID)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(correlation.HeaderKey, correlationID)

		return next(c)
	}
}
