//go:build unit

package scheduling_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/scheduling"
	"tablebook/internal/domain/settings"
	"tablebook/internal/domain/table"
)

func TestSlots(t *testing.T) {
	set := settings.Defaults() // 11:00-22:00, 30min interval, 90min duration
	date := reservation.Date{Year: 2026, Month: time.September, Day: 2}
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	tbl := table.Table{ID: uuid.New(), Number: 1, Capacity: 4, IsActive: true}

	t.Run("covers opening through last full-duration start", func(t *testing.T) {
		slots := scheduling.Slots(set, date, []table.Table{tbl}, nil, now)

		// Starts every 30 minutes from 11:00; the last start whose 90
		// minutes still end by 22:00 is 20:30.
		require.Len(t, slots, 20)
		assert.Equal(t, "11:00", slots[0].Time.String())
		assert.Equal(t, "20:30", slots[len(slots)-1].Time.String())
		for _, s := range slots {
			assert.True(t, s.Available)
			assert.Equal(t, []uuid.UUID{tbl.ID}, s.TableIDs)
		}
	})

	t.Run("booked slots stay listed as unavailable", func(t *testing.T) {
		booked := scheduling.Booking{
			ReservationID: uuid.New(),
			TableID:       &tbl.ID,
			Window:        window(t, "18:00", 90),
		}
		slots := scheduling.Slots(set, date, []table.Table{tbl}, []scheduling.Booking{booked}, now)
		require.Len(t, slots, 20)

		bySlot := map[string]scheduling.Slot{}
		for _, s := range slots {
			bySlot[s.Time.String()] = s
		}

		// Any start whose 90-minute window overlaps 18:00-19:30 is full.
		for _, full := range []string{"17:00", "17:30", "18:00", "18:30", "19:00"} {
			s, ok := bySlot[full]
			require.True(t, ok)
			assert.False(t, s.Available, "slot %s should be full", full)
			assert.Empty(t, s.TableIDs)
		}
		assert.True(t, bySlot["16:30"].Available, "slot ending at booking start stays open")
		assert.True(t, bySlot["19:30"].Available, "slot starting at booking end stays open")
	})

	t.Run("no candidates yields all-unavailable slots", func(t *testing.T) {
		slots := scheduling.Slots(set, date, nil, nil, now)
		require.Len(t, slots, 20)
		for _, s := range slots {
			assert.False(t, s.Available)
		}
	})

	t.Run("past slots are dropped for today", func(t *testing.T) {
		today := reservation.DateOf(now) // now is 12:00
		slots := scheduling.Slots(set, today, []table.Table{tbl}, nil, now)
		require.NotEmpty(t, slots)
		assert.Equal(t, "12:30", slots[0].Time.String())
	})

	t.Run("future dates keep every slot", func(t *testing.T) {
		slots := scheduling.Slots(set, date, []table.Table{tbl}, nil, now)
		assert.Equal(t, "11:00", slots[0].Time.String())
	})

	t.Run("short operating day yields single slot", func(t *testing.T) {
		tight := set
		tight.OpeningTime = reservation.TimeOfDay(18 * 60)
		tight.ClosingTime = reservation.TimeOfDay(19*60 + 30)
		slots := scheduling.Slots(tight, date, []table.Table{tbl}, nil, now)
		require.Len(t, slots, 1)
		assert.Equal(t, "18:00", slots[0].Time.String())
	})

	t.Run("window shorter than duration yields none", func(t *testing.T) {
		tight := set
		tight.OpeningTime = reservation.TimeOfDay(18 * 60)
		tight.ClosingTime = reservation.TimeOfDay(19 * 60)
		assert.Empty(t, scheduling.Slots(tight, date, []table.Table{tbl}, nil, now))
	})
}
