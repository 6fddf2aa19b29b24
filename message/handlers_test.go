package message

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sorteos/entity"
	"sorteos/event"
)

type mockRecorder struct {
	lock    sync.Mutex
	records []entity.SaleRecord
}

func (m *mockRecorder) Add(_ context.Context, rec entity.SaleRecord) error {
	m.lock.Lock()
	m.records = append(m.records, rec)
	m.lock.Unlock()
	return nil
}

func TestHandleJournalSoldTicket(t *testing.T) {
	recorder := &mockRecorder{}
	handle := handleJournalSoldTicket(recorder)

	e := event.NewTicketSold("key", "batch-1", 1, 5, 10, 1, 1000)
	require.NoError(t, handle(context.Background(), &e))

	require.Len(t, recorder.records, 1)
	rec := recorder.records[0]
	assert.Equal(t, "batch-1", rec.BatchID)
	assert.Equal(t, entity.SaleStatusSold, rec.Status)
	assert.Equal(t, 1, rec.TicketNumber)
}

func TestHandleJournalFailedSale(t *testing.T) {
	recorder := &mockRecorder{}
	handle := handleJournalFailedSale(recorder)

	conflict := event.NewTicketSaleFailed("key", "batch-1", 1, 5, 10, 1, true, "ticket no longer available")
	require.NoError(t, handle(context.Background(), &conflict))

	generic := event.NewTicketSaleFailed("key", "batch-1", 1, 5, 11, 2, false, "connection refused")
	require.NoError(t, handle(context.Background(), &generic))

	require.Len(t, recorder.records, 2)
	assert.Equal(t, entity.SaleStatusConflict, recorder.records[0].Status)
	assert.Equal(t, entity.SaleStatusFailed, recorder.records[1].Status)
	assert.Equal(t, "connection refused", recorder.records[1].Reason)
}
