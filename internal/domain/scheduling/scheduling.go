// Package scheduling holds the pure slot-generation, overlap and
// table-assignment logic. Everything here is side-effect free and safe for
// unbounded concurrent use; callers load state and pass it in.
package scheduling

import (
	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/table"
)

// Booking is the slice of an active reservation that occupancy checks need.
type Booking struct {
	ReservationID uuid.UUID
	TableID       *uuid.UUID
	GuestName     string
	Window        reservation.TimeWindow
}

// FindConflict returns the first active booking on the given table whose
// interval overlaps the candidate window, skipping excludeID so a
// reservation being edited never conflicts with itself.
func FindConflict(bookings []Booking, tableID uuid.UUID, window reservation.TimeWindow, excludeID uuid.UUID) *Booking {
	for i := range bookings {
		b := &bookings[i]
		if b.ReservationID == excludeID {
			continue
		}
		if b.TableID == nil || *b.TableID != tableID {
			continue
		}
		if b.Window.Overlaps(window) {
			return b
		}
	}
	return nil
}

func HasConflict(bookings []Booking, tableID uuid.UUID, window reservation.TimeWindow, excludeID uuid.UUID) bool {
	return FindConflict(bookings, tableID, window, excludeID) != nil
}

// CandidateTables filters the catalog down to active tables that can seat
// the party at all, regardless of occupancy.
func CandidateTables(tables []table.Table, partySize int) []table.Table {
	var out []table.Table
	for _, t := range tables {
		if t.Fits(partySize) {
			out = append(out, t)
		}
	}
	return out
}

// Assign picks a free table for the window using smallest-fit: the lowest
// capacity still seating the party, tie-broken by lowest table number, so
// large tables stay open for large parties. Nil means no table is free,
// which callers treat as a degraded success rather than an error.
func Assign(tables []table.Table, partySize int, bookings []Booking, window reservation.TimeWindow, excludeID uuid.UUID) *uuid.UUID {
	var best *table.Table
	for _, t := range CandidateTables(tables, partySize) {
		if HasConflict(bookings, t.ID, window, excludeID) {
			continue
		}
		t := t
		if best == nil ||
			t.Capacity < best.Capacity ||
			(t.Capacity == best.Capacity && t.Number < best.Number) {
			best = &t
		}
	}
	if best == nil {
		return nil
	}
	id := best.ID
	return &id
}
