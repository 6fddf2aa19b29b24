package message

import (
	"context"

	"github.com/sirupsen/logrus"

	"sorteos/entity"
	"sorteos/event"
)

type SaleRecorder interface {
	Add(ctx context.Context, rec entity.SaleRecord) error
}

func handleJournalSoldTicket(recorder SaleRecorder) func(ctx context.Context, e *event.TicketSold) error {
	return func(ctx context.Context, e *event.TicketSold) error {
		return recorder.Add(ctx, entity.SaleRecord{
			BatchID:      e.BatchID,
			RaffleID:     e.RaffleID,
			TicketID:     e.TicketID,
			TicketNumber: e.TicketNumber,
			CustomerID:   e.CustomerID,
			Status:       entity.SaleStatusSold,
		})
	}
}

func handleJournalFailedSale(recorder SaleRecorder) func(ctx context.Context, e *event.TicketSaleFailed) error {
	return func(ctx context.Context, e *event.TicketSaleFailed) error {
		status := entity.SaleStatusFailed
		if e.Conflict {
			status = entity.SaleStatusConflict
		}

		return recorder.Add(ctx, entity.SaleRecord{
			BatchID:      e.BatchID,
			RaffleID:     e.RaffleID,
			TicketID:     e.TicketID,
			TicketNumber: e.TicketNumber,
			CustomerID:   e.CustomerID,
			Status:       status,
			Reason:       e.Reason,
		})
	}
}

func handleLogBatchOutcome() func(ctx context.Context, e *event.SaleBatchCompleted) error {
	return func(ctx context.Context, e *event.SaleBatchCompleted) error {
		logrus.WithFields(logrus.Fields{
			"batch_id":  e.BatchID,
			"raffle_id": e.RaffleID,
			"outcome":   e.Outcome,
			"succeeded": e.Succeeded,
			"failed":    e.Failed,
		}).Info("Sale batch completed")

		return nil
	}
}
