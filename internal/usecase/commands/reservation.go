package commands

import (
	"context"

	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/scheduling"
	"tablebook/internal/domain/table"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/patch"
	"tablebook/internal/usecase/shared"
)

type CreateReservationInput struct {
	CustomerID      *uuid.UUID
	TableID         *uuid.UUID
	GuestName       string
	GuestPhone      string
	GuestEmail      string
	GuestCount      int
	Date            reservation.Date
	StartTime       reservation.TimeOfDay
	DurationMinutes *int
	Source          reservation.Source
	Notes           string
	SpecialRequests string
}

type UpdateReservationInput struct {
	CustomerID      patch.Field[uuid.UUID]
	TableID         patch.Field[uuid.UUID]
	GuestName       patch.Field[string]
	GuestPhone      patch.Field[string]
	GuestEmail      patch.Field[string]
	GuestCount      patch.Field[int]
	Date            patch.Field[reservation.Date]
	StartTime       patch.Field[reservation.TimeOfDay]
	DurationMinutes patch.Field[int]
	Notes           patch.Field[string]
	SpecialRequests patch.Field[string]
}

type CancelReservationInput struct {
	Reason *string
}

type ReservationCommands interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateReservationInput) (*reservation.Reservation, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateReservationInput) (*reservation.Reservation, error)
	Seat(ctx context.Context, tenantID, id uuid.UUID) (*reservation.Reservation, error)
	Complete(ctx context.Context, tenantID, id uuid.UUID) (*reservation.Reservation, error)
	MarkNoShow(ctx context.Context, tenantID, id uuid.UUID) (*reservation.Reservation, error)
	Reopen(ctx context.Context, tenantID, id uuid.UUID) (*reservation.Reservation, error)
	Cancel(ctx context.Context, tenantID, id uuid.UUID, input CancelReservationInput) (*reservation.Reservation, error)
}

type reservationCommandsImpl struct {
	uow    shared.UnitOfWork
	events EventPublisher
	cache  AvailabilityInvalidator
	clock  clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	events EventPublisher,
	cache AvailabilityInvalidator,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{uow: uow, events: events, cache: cache, clock: clk}
}

func (c *reservationCommandsImpl) Create(ctx context.Context, tenantID uuid.UUID, input CreateReservationInput) (*reservation.Reservation, error) {
	now := c.clock.Now()

	var created *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		set, _, err := tx.Settings().GetOrCreate(ctx, tenantID)
		if err != nil {
			return err
		}
		if !set.IsEnabled {
			return reservation.ErrBookingDisabled
		}
		if isOnlineChannel(input.Source) && !set.AllowOnlineBooking {
			return reservation.ErrOnlineBookingDisabled
		}

		duration := patch.Coalesce(input.DurationMinutes, set.DefaultDurationMinutes)
		window, err := reservation.NewTimeWindow(input.StartTime, duration)
		if err != nil {
			return err
		}

		r, err := reservation.NewReservation(reservation.NewReservationParams{
			TenantID:   tenantID,
			CustomerID: input.CustomerID,
			GuestName:  input.GuestName,
			GuestPhone: input.GuestPhone,
			GuestEmail: input.GuestEmail,
			GuestCount: input.GuestCount,
			Date:       input.Date,
			Window:     window,
			Source:     input.Source,
			Notes:      input.Notes,
			Requests:   input.SpecialRequests,
		}, set.Policy(), now)
		if err != nil {
			return err
		}

		tableID, err := c.resolveTable(ctx, tx, tenantID, input.TableID, r.GuestCount(), r.Date(), window, r.ID())
		if err != nil {
			return err
		}
		if tableID != nil {
			if err := r.AssignTable(tableID, now); err != nil {
				return err
			}
		}

		if err := tx.Reservations().Insert(ctx, r); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.afterWrite(ctx, created, "created", created.Date())
	return created, nil
}

func (c *reservationCommandsImpl) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateReservationInput) (*reservation.Reservation, error) {
	now := c.clock.Now()

	var (
		updated *reservation.Reservation
		oldDate reservation.Date
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := c.findForUpdate(ctx, tx, tenantID, id)
		if err != nil {
			return err
		}
		oldDate = r.Date()

		set, _, err := tx.Settings().GetOrCreate(ctx, tenantID)
		if err != nil {
			return err
		}
		policy := set.Policy()

		if name, ok := input.GuestName.Value(); ok {
			if err := r.UpdateGuestName(name, now); err != nil {
				return err
			}
		}
		if input.GuestPhone.Present() || input.GuestEmail.Present() {
			phone := r.GuestPhone()
			email := r.GuestEmail()
			patch.Apply(&phone, input.GuestPhone)
			patch.Apply(&email, input.GuestEmail)
			if err := r.UpdateContact(phone, email, now); err != nil {
				return err
			}
		}
		if count, ok := input.GuestCount.Value(); ok {
			if err := r.UpdateGuestCount(count, policy, now); err != nil {
				return err
			}
		}
		if input.Notes.Present() || input.SpecialRequests.Present() {
			notes := r.Notes()
			requests := r.SpecialRequests()
			patch.Apply(&notes, input.Notes)
			patch.Apply(&requests, input.SpecialRequests)
			if err := r.UpdateNotes(notes, requests, now); err != nil {
				return err
			}
		}
		if input.CustomerID.Present() {
			customerID := r.CustomerID()
			patch.ApplyPtr(&customerID, input.CustomerID)
			if err := r.LinkCustomer(customerID, now); err != nil {
				return err
			}
		}

		if input.Date.Present() || input.StartTime.Present() || input.DurationMinutes.Present() {
			date := r.Date()
			start := r.Window().Start()
			duration := r.Window().Minutes()
			patch.Apply(&date, input.Date)
			patch.Apply(&start, input.StartTime)
			patch.Apply(&duration, input.DurationMinutes)
			window, err := reservation.NewTimeWindow(start, duration)
			if err != nil {
				return err
			}
			if err := r.Reschedule(date, window, policy, now); err != nil {
				return err
			}
		}

		// Table changes and moves in time both need a fresh conflict check
		// against the (possibly new) date and window.
		switch {
		case input.TableID.IsNull():
			if err := r.AssignTable(nil, now); err != nil {
				return err
			}
		case input.TableID.Present():
			requested, _ := input.TableID.Value()
			tableID, err := c.resolveTable(ctx, tx, tenantID, &requested, r.GuestCount(), r.Date(), r.Window(), r.ID())
			if err != nil {
				return err
			}
			if err := r.AssignTable(tableID, now); err != nil {
				return err
			}
		case r.TableID() != nil && (input.Date.Present() || input.StartTime.Present() || input.DurationMinutes.Present() || input.GuestCount.Present()):
			tableID, err := c.resolveTable(ctx, tx, tenantID, r.TableID(), r.GuestCount(), r.Date(), r.Window(), r.ID())
			if err != nil {
				return err
			}
			if err := r.AssignTable(tableID, now); err != nil {
				return err
			}
		}

		if err := tx.Reservations().Update(ctx, r); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cache.InvalidateDate(ctx, tenantID, oldDate)
	c.afterWrite(ctx, updated, "updated", updated.Date())
	return updated, nil
}

func (c *reservationCommandsImpl) Seat(ctx context.Context, tenantID, id uuid.UUID) (*reservation.Reservation, error) {
	return c.transition(ctx, tenantID, id, "seated", func(r *reservation.Reservation) error {
		return r.Seat(c.clock.Now())
	})
}

func (c *reservationCommandsImpl) Complete(ctx context.Context, tenantID, id uuid.UUID) (*reservation.Reservation, error) {
	return c.transition(ctx, tenantID, id, "completed", func(r *reservation.Reservation) error {
		return r.Complete(c.clock.Now())
	})
}

func (c *reservationCommandsImpl) MarkNoShow(ctx context.Context, tenantID, id uuid.UUID) (*reservation.Reservation, error) {
	return c.transition(ctx, tenantID, id, "no_show", func(r *reservation.Reservation) error {
		return r.MarkNoShow(c.clock.Now())
	})
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, tenantID, id uuid.UUID, input CancelReservationInput) (*reservation.Reservation, error) {
	return c.transition(ctx, tenantID, id, "cancelled", func(r *reservation.Reservation) error {
		return r.Cancel(c.clock.Now(), input.Reason)
	})
}

// Reopen reverts a no-show back to confirmed. If the table was rebooked in
// the meantime the reservation comes back without one instead of failing;
// staff reassign from the floor view.
func (c *reservationCommandsImpl) Reopen(ctx context.Context, tenantID, id uuid.UUID) (*reservation.Reservation, error) {
	now := c.clock.Now()

	var reopened *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := c.findForUpdate(ctx, tx, tenantID, id)
		if err != nil {
			return err
		}
		if err := r.Reopen(now); err != nil {
			return err
		}

		if tableID := r.TableID(); tableID != nil {
			bookings, err := tx.Reservations().LockActiveByTable(ctx, tenantID, *tableID, r.Date())
			if err != nil {
				return err
			}
			if scheduling.HasConflict(bookings, *tableID, r.Window(), r.ID()) {
				if err := r.AssignTable(nil, now); err != nil {
					return err
				}
			}
		}

		if err := tx.Reservations().Update(ctx, r); err != nil {
			return err
		}
		reopened = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.afterWrite(ctx, reopened, "reopened", reopened.Date())
	return reopened, nil
}

func (c *reservationCommandsImpl) transition(ctx context.Context, tenantID, id uuid.UUID, event string, apply func(*reservation.Reservation) error) (*reservation.Reservation, error) {
	var changed *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := c.findForUpdate(ctx, tx, tenantID, id)
		if err != nil {
			return err
		}
		if err := apply(r); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, r); err != nil {
			return err
		}
		changed = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.afterWrite(ctx, changed, event, changed.Date())
	return changed, nil
}

func (c *reservationCommandsImpl) findForUpdate(ctx context.Context, tx shared.Tx, tenantID, id uuid.UUID) (*reservation.Reservation, error) {
	r, err := tx.Reservations().FindByID(ctx, tenantID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return r, nil
}

// resolveTable turns a table request into an assignment inside the current
// transaction. An explicit table must exist, fit and be free; no table means
// smallest-fit auto-assignment, where nil is a valid tableless outcome.
func (c *reservationCommandsImpl) resolveTable(
	ctx context.Context,
	tx shared.Tx,
	tenantID uuid.UUID,
	requested *uuid.UUID,
	partySize int,
	date reservation.Date,
	window reservation.TimeWindow,
	excludeID uuid.UUID,
) (*uuid.UUID, error) {
	tables, err := tx.Tables().ListActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if requested != nil {
		t := findTable(tables, *requested)
		if t == nil {
			return nil, ErrUnknownTable
		}
		if !t.Fits(partySize) {
			return nil, ErrTableTooSmall
		}
		bookings, err := tx.Reservations().LockActiveByTable(ctx, tenantID, *requested, date)
		if err != nil {
			return nil, err
		}
		if conflict := scheduling.FindConflict(bookings, *requested, window, excludeID); conflict != nil {
			return nil, &TableConflictError{
				TableID:       *requested,
				ReservationID: conflict.ReservationID,
				GuestName:     conflict.GuestName,
				Window:        conflict.Window,
			}
		}
		return requested, nil
	}

	bookings, err := tx.Reservations().LockActiveByDate(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}
	return scheduling.Assign(tables, partySize, bookings, window, excludeID), nil
}

func (c *reservationCommandsImpl) afterWrite(ctx context.Context, r *reservation.Reservation, event string, date reservation.Date) {
	c.cache.InvalidateDate(ctx, r.TenantID(), date)
	c.events.PublishReservationEvent(ctx, ReservationEvent{
		Event:         event,
		TenantID:      r.TenantID(),
		ReservationID: r.ID(),
		Status:        string(r.Status()),
		Date:          date,
		OccurredAt:    c.clock.Now(),
	})
}

func findTable(tables []table.Table, id uuid.UUID) *table.Table {
	for i := range tables {
		if tables[i].ID == id {
			return &tables[i]
		}
	}
	return nil
}

func isOnlineChannel(s reservation.Source) bool {
	return s == reservation.SourceOnline || s == reservation.SourceApp
}
