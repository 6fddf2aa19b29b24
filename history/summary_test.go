package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sorteos/entity"
	"sorteos/history"
)

func TestSummarizeFiltersToSold(t *testing.T) {
	tickets := []entity.Ticket{
		{Number: 1, State: entity.TicketAvailable},
		{Number: 2, State: entity.TicketSold},
		{Number: 3, State: entity.TicketAvailable},
	}

	sold := history.Summarize(tickets)

	require.Len(t, sold, 1)
	assert.Equal(t, 2, sold[0].Number)
}

func TestSummarizeOrdersByTimestampDescending(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t1.Add(2 * time.Hour)

	tickets := []entity.Ticket{
		{Number: 1, State: entity.TicketSold, SoldAt: &t1},
		{Number: 2, State: entity.TicketSold, SoldAt: &t3},
		{Number: 3, State: entity.TicketSold, SoldAt: &t2},
	}

	sold := history.Summarize(tickets)

	assert.Equal(t, []int{2, 3, 1}, soldNumbers(sold))
}

func TestSummarizeFallsBackToNumberWithoutTimestamps(t *testing.T) {
	tickets := []entity.Ticket{
		{Number: 3, State: entity.TicketSold},
		{Number: 1, State: entity.TicketSold},
		{Number: 2, State: entity.TicketSold},
	}

	sold := history.Summarize(tickets)

	assert.Equal(t, []int{1, 2, 3}, soldNumbers(sold))
}

func TestSummarizePairwiseFallback(t *testing.T) {
	stamped := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	tickets := []entity.Ticket{
		{Number: 5, State: entity.TicketSold, SoldAt: &stamped},
		{Number: 2, State: entity.TicketSold},
	}

	sold := history.Summarize(tickets)

	// When one side lacks a timestamp the pair compares by number.
	assert.Equal(t, []int{2, 5}, soldNumbers(sold))
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, history.Summarize(nil))
	assert.Empty(t, history.Summarize([]entity.Ticket{{Number: 1, State: entity.TicketAvailable}}))
}

func soldNumbers(tickets []entity.Ticket) []int {
	var ns []int
	for _, t := range tickets {
		ns = append(ns, t.Number)
	}
	return ns
}
