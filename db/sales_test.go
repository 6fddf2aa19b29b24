package db_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sorteos/db"
	"sorteos/entity"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		// No database available; nothing to run.
		os.Exit(0)
	}

	var err error
	testDB, err = sqlx.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to db: %s", err)
	}

	if err := db.CreateSalesTable(context.Background(), testDB); err != nil {
		log.Fatalf("failed to create sale_attempts table: %s", err)
	}

	code := m.Run()

	if err := testDB.Close(); err != nil {
		log.Fatalf("failed to close db connection: %s", err)
	}

	os.Exit(code)
}

func TestSaleRepoAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := db.NewSaleRepo(testDB)

	rec := entity.SaleRecord{
		BatchID:      uuid.NewString(),
		RaffleID:     990001,
		TicketID:     10,
		TicketNumber: 1,
		CustomerID:   5,
		Status:       entity.SaleStatusSold,
	}

	require.NoError(t, repo.Add(ctx, rec))
	require.NoError(t, repo.Add(ctx, rec))

	records, err := repo.ListByRaffle(ctx, rec.RaffleID)
	require.NoError(t, err)

	var matching []entity.SaleRecord
	for _, r := range records {
		if r.BatchID == rec.BatchID {
			matching = append(matching, r)
		}
	}
	require.Len(t, matching, 1)
	assert.Equal(t, entity.SaleStatusSold, matching[0].Status)
}

func TestSaleRepoListByRaffle(t *testing.T) {
	ctx := context.Background()
	repo := db.NewSaleRepo(testDB)

	batchID := uuid.NewString()
	raffleID := 990002

	require.NoError(t, repo.Add(ctx, entity.SaleRecord{
		BatchID: batchID, RaffleID: raffleID, TicketID: 10, TicketNumber: 1,
		CustomerID: 5, Status: entity.SaleStatusSold,
	}))
	require.NoError(t, repo.Add(ctx, entity.SaleRecord{
		BatchID: batchID, RaffleID: raffleID, TicketID: 11, TicketNumber: 2,
		CustomerID: 5, Status: entity.SaleStatusConflict, Reason: "ticket no longer available",
	}))

	records, err := repo.ListByRaffle(ctx, raffleID)
	require.NoError(t, err)
	require.Len(t, records, 2)
}
