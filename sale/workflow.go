package sale

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"sorteos/catalog"
	"sorteos/entity"
	"sorteos/event"
	"sorteos/history"
	"sorteos/selection"
)

type Publisher interface {
	Publish(ctx context.Context, event any) error
}

type BoardLoader interface {
	Board(ctx context.Context, raffleID int) (*catalog.Inventory, error)
}

// Workflow drives a full sale round: run the executor on the current
// selection, clear it, reconcile the board against the backend and publish
// the outcome events.
type Workflow struct {
	executor  *Executor
	loader    BoardLoader
	publisher Publisher
}

func NewWorkflow(executor *Executor, loader BoardLoader, publisher Publisher) *Workflow {
	return &Workflow{
		executor:  executor,
		loader:    loader,
		publisher: publisher,
	}
}

// Result carries the batch report together with the reconciled board and
// purchase summary. When the reconciliation reload fails, Inventory is the
// optimistic board and the failure is logged, not returned: the operator
// can retry from an interactive state either way.
type Result struct {
	Report    Report
	Inventory *catalog.Inventory
	Purchases []entity.Ticket
}

func (w *Workflow) SellSelected(
	ctx context.Context,
	inv *catalog.Inventory,
	raffle entity.Raffle,
	customer entity.Customer,
	sel *selection.Selection,
	confirm Confirmer,
) (Result, error) {
	report, err := w.executor.Sell(ctx, inv, raffle, customer, sel.TicketIDs(), confirm)
	if err != nil {
		return Result{}, err
	}

	sel.Clear()
	w.publish(ctx, report)

	result := Result{
		Report:    report,
		Inventory: inv,
	}

	// The authoritative reload supersedes any optimistic guess, including
	// tickets an external sale took before the executor reached them.
	reloaded, err := w.loader.Board(ctx, raffle.ID)
	if err != nil {
		logrus.WithError(err).WithField("raffle_id", raffle.ID).Warn("reloading board after sale")
	} else {
		result.Inventory = reloaded
	}

	result.Purchases = history.Summarize(result.Inventory.All())

	return result, nil
}

func (w *Workflow) publish(ctx context.Context, report Report) {
	for _, attempt := range report.Attempts {
		key := fmt.Sprintf("%s-%d", report.BatchID, attempt.TicketID)

		var e any
		if attempt.Status == AttemptSold {
			e = event.NewTicketSold(key, report.BatchID, report.RaffleID, report.CustomerID, attempt.TicketID, attempt.Number, attempt.Price)
		} else {
			e = event.NewTicketSaleFailed(key, report.BatchID, report.RaffleID, report.CustomerID, attempt.TicketID, attempt.Number, attempt.Conflict, attempt.Reason)
		}

		if err := w.publisher.Publish(ctx, e); err != nil {
			logrus.WithError(err).Warn("publishing sale attempt event")
		}
	}

	completed := event.NewSaleBatchCompleted(report.BatchID, report.BatchID, report.RaffleID, report.CustomerID, string(report.Outcome), report.Succeeded, report.Failed)
	if err := w.publisher.Publish(ctx, completed); err != nil {
		logrus.WithError(err).Warn("publishing sale batch event")
	}
}
