// Package commands implements the write side: reservation creation, edits,
// lifecycle transitions, settings updates and the no-show sweep.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/errs"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	// ErrUnknownTable covers both nonexistent and deactivated tables; the
	// catalog only exposes active ones.
	ErrUnknownTable  = errs.New("table not found or inactive")
	ErrTableTooSmall = errs.New("table cannot seat the party")
	ErrTableConflict = errs.New("table is already booked for an overlapping window")
)

// TableConflictError carries who holds the table and when, so staff can
// resolve the clash without a second lookup.
type TableConflictError struct {
	TableID       uuid.UUID
	ReservationID uuid.UUID
	GuestName     string
	Window        reservation.TimeWindow
}

func (e *TableConflictError) Error() string {
	return fmt.Sprintf("table %s is already booked by %s for %s", e.TableID, e.GuestName, e.Window)
}

func (e *TableConflictError) Unwrap() error { return ErrTableConflict }

// ReservationEvent is the fact published after a committed state change.
type ReservationEvent struct {
	Event         string           `json:"event"`
	TenantID      uuid.UUID        `json:"tenant_id"`
	ReservationID uuid.UUID        `json:"reservation_id"`
	Status        string           `json:"status"`
	Date          reservation.Date `json:"date"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

// EventPublisher delivers lifecycle events best-effort, after commit. A
// publish failure never rolls back the reservation change.
type EventPublisher interface {
	PublishReservationEvent(ctx context.Context, ev ReservationEvent)
}

// AvailabilityInvalidator drops cached availability for a date after any
// write that can change it.
type AvailabilityInvalidator interface {
	InvalidateDate(ctx context.Context, tenantID uuid.UUID, date reservation.Date)
}
