package scheduling

import (
	"time"

	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/settings"
	"tablebook/internal/domain/table"
)

// Slot is a candidate booking start derived from operating hours. It is
// recomputed on every query and has no identity of its own.
type Slot struct {
	Time      reservation.TimeOfDay
	Available bool
	TableIDs  []uuid.UUID
}

// Slots generates the bookable slot list for one day, ascending by time.
//
// Starts run opening, opening+interval, ... while start+duration fits before
// closing; a slot ending exactly at closing is kept, one spilling past it
// bounds the loop. A slot with fitting tables that are all booked is
// reported with Available=false rather than dropped, so callers can show
// "full" distinctly from "doesn't offer this party size". When the date is
// today, slots whose start has already passed are dropped entirely.
func Slots(
	set settings.Operating,
	date reservation.Date,
	candidates []table.Table,
	bookings []Booking,
	now time.Time,
) []Slot {
	duration := set.DefaultDurationMinutes
	interval := set.SlotIntervalMinutes
	if duration <= 0 || interval <= 0 {
		return nil
	}

	today := reservation.DateOf(now)
	nowTod := reservation.TimeOfDay(now.Hour()*60 + now.Minute())

	var slots []Slot
	for start := set.OpeningTime; start.Add(duration) <= set.ClosingTime; start = start.Add(interval) {
		if date.Equal(today) && start <= nowTod {
			continue
		}

		window, err := reservation.NewTimeWindow(start, duration)
		if err != nil {
			return slots
		}

		var free []uuid.UUID
		for _, t := range candidates {
			if !HasConflict(bookings, t.ID, window, uuid.Nil) {
				free = append(free, t.ID)
			}
		}

		slots = append(slots, Slot{
			Time:      start,
			Available: len(free) > 0,
			TableIDs:  free,
		})
	}
	return slots
}
