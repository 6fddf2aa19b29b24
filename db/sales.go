package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"sorteos/entity"
)

func CreateSalesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS sale_attempts (
		batch_id UUID NOT NULL,
		raffle_id INTEGER NOT NULL,
		ticket_id INTEGER NOT NULL,
		ticket_number INTEGER NOT NULL,
		customer_id INTEGER NOT NULL,
		status VARCHAR(16) NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		recorded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
		PRIMARY KEY (batch_id, ticket_id)
		);`)
	return err
}

type SaleRepo struct {
	db *sqlx.DB
}

func NewSaleRepo(db *sqlx.DB) SaleRepo {
	return SaleRepo{
		db: db,
	}
}

// Add journals one sale attempt. Events are delivered at least once, so
// the insert is idempotent on (batch_id, ticket_id).
func (r SaleRepo) Add(ctx context.Context, rec entity.SaleRecord) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO sale_attempts
		(batch_id, raffle_id, ticket_id, ticket_number, customer_id, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT DO NOTHING;`,
		rec.BatchID, rec.RaffleID, rec.TicketID, rec.TicketNumber, rec.CustomerID, rec.Status, rec.Reason)
	return err
}

func (r SaleRepo) ListByRaffle(ctx context.Context, raffleID int) ([]entity.SaleRecord, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT batch_id, raffle_id, ticket_id, ticket_number,
		customer_id, status, reason, recorded_at
		FROM sale_attempts WHERE raffle_id = $1 ORDER BY recorded_at DESC`, raffleID)
	if err != nil {
		return nil, fmt.Errorf("querying sale attempts: %w", err)
	}
	defer rows.Close()

	var records []entity.SaleRecord
	for rows.Next() {
		var rec entity.SaleRecord
		if err := rows.StructScan(&rec); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		records = append(records, rec)
	}

	return records, nil
}
