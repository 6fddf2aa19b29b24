// Package selection tracks which tickets the operator has picked for sale.
// Two mutually exclusive modes exist: single (at most one ticket) and multi
// (an ordered set). Switching modes, or switching raffles, clears any prior
// pick.
package selection

import (
	"errors"

	"sorteos/entity"
)

type Mode string

const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
)

// ErrTicketNotAvailable is returned when a single-mode pick targets a
// ticket that is not AVAILABLE; the current selection is left untouched.
var ErrTicketNotAvailable = errors.New("ticket is not available")

type Selection struct {
	mode     Mode
	raffleID int
	single   int
	multi    []int
	picked   map[int]bool
}

func New() *Selection {
	return &Selection{
		mode:   ModeSingle,
		picked: map[int]bool{},
	}
}

func (s *Selection) Mode() Mode {
	return s.mode
}

// SetRaffle records the raffle being browsed. Moving to a different raffle
// drops the selection; re-setting the same raffle keeps it.
func (s *Selection) SetRaffle(raffleID int) {
	if s.raffleID != raffleID {
		s.Clear()
	}
	s.raffleID = raffleID
}

func (s *Selection) UseSingle() {
	if s.mode != ModeSingle {
		s.Clear()
		s.mode = ModeSingle
	}
}

func (s *Selection) UseMulti() {
	if s.mode != ModeMulti {
		s.Clear()
		s.mode = ModeMulti
	}
}

// Select picks a single ticket, replacing any prior pick. It implies
// single mode.
func (s *Selection) Select(t entity.Ticket) error {
	s.UseSingle()

	if !t.Available() {
		return ErrTicketNotAvailable
	}

	s.single = t.ID
	return nil
}

// Toggle adds the ticket to the multi selection if absent and AVAILABLE,
// and removes it if present. Toggling an unselected non-AVAILABLE ticket
// is a no-op. It implies multi mode.
func (s *Selection) Toggle(t entity.Ticket) {
	s.UseMulti()

	if s.picked[t.ID] {
		delete(s.picked, t.ID)
		for i, id := range s.multi {
			if id == t.ID {
				s.multi = append(s.multi[:i], s.multi[i+1:]...)
				break
			}
		}
		return
	}

	if !t.Available() {
		return
	}

	s.picked[t.ID] = true
	s.multi = append(s.multi, t.ID)
}

func (s *Selection) Clear() {
	s.single = 0
	s.multi = nil
	s.picked = map[int]bool{}
}

func (s *Selection) Empty() bool {
	if s.mode == ModeSingle {
		return s.single == 0
	}
	return len(s.multi) == 0
}

// TicketIDs returns the selected ids in the order they were picked. The
// sale executor preserves this order.
func (s *Selection) TicketIDs() []int {
	if s.mode == ModeSingle {
		if s.single == 0 {
			return nil
		}
		return []int{s.single}
	}

	ids := make([]int, len(s.multi))
	copy(ids, s.multi)
	return ids
}
