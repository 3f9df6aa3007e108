package reservation

import (
	"time"

	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPartyTooLarge         = errs.New("party size exceeds maximum")
	ErrPartyTooSmall         = errs.New("party size must be at least one")
	ErrOutsideOperatingHours = errs.New("time outside operating hours")
	ErrLeadTimeTooShort      = errs.New("reservation is below the minimum advance window")
	ErrLeadTimeTooFar        = errs.New("reservation is beyond the maximum advance window")
	ErrBookingDisabled       = errs.New("reservations are disabled for this tenant")
	ErrOnlineBookingDisabled = errs.New("online booking is disabled for this tenant")
	ErrEditLocked            = errs.New("reservation is locked against edits")
	ErrMissingGuestName      = errs.New("guest name is required")
)

// Policy carries the per-tenant creation limits derived from
// OperatingSettings. The entity validates against it without knowing where
// settings live.
type Policy struct {
	OpeningTime     TimeOfDay
	ClosingTime     TimeOfDay
	MaxPartySize    int
	MinAdvanceHours int
	MaxAdvanceDays  int
}

type Reservation struct {
	id         uuid.UUID
	tenantID   uuid.UUID
	customerID *uuid.UUID
	tableID    *uuid.UUID

	guestName  string
	guestPhone string
	guestEmail string
	guestCount int

	date   Date
	window TimeWindow

	status             Status
	source             Source
	notes              string
	specialRequests    string
	cancellationReason *string

	confirmedAt *time.Time
	seatedAt    *time.Time
	completedAt *time.Time
	cancelledAt *time.Time

	createdAt time.Time
	updatedAt time.Time
}

type NewReservationParams struct {
	TenantID   uuid.UUID
	CustomerID *uuid.UUID
	TableID    *uuid.UUID
	GuestName  string
	GuestPhone string
	GuestEmail string
	GuestCount int
	Date       Date
	Window     TimeWindow
	Source     Source
	Notes      string
	Requests   string
}

// NewReservation validates party size, operating hours and lead time against
// the policy. Lead time is a creation-time check only; later edits never
// re-apply it.
func NewReservation(p NewReservationParams, policy Policy, now time.Time) (*Reservation, error) {
	if p.GuestName == "" {
		return nil, ErrMissingGuestName
	}
	if p.GuestCount < 1 {
		return nil, ErrPartyTooSmall
	}
	if err := validateParty(p.GuestCount, policy); err != nil {
		return nil, err
	}
	if err := validateWindow(p.Window, policy); err != nil {
		return nil, err
	}
	if err := validateLeadTime(p.Date, p.Window, policy, now); err != nil {
		return nil, err
	}

	source := p.Source
	if source == "" {
		source = SourcePhone
	}

	confirmedAt := now
	return &Reservation{
		id:              uuid.New(),
		tenantID:        p.TenantID,
		customerID:      p.CustomerID,
		tableID:         p.TableID,
		guestName:       p.GuestName,
		guestPhone:      p.GuestPhone,
		guestEmail:      p.GuestEmail,
		guestCount:      p.GuestCount,
		date:            p.Date,
		window:          p.Window,
		status:          StatusConfirmed,
		source:          source,
		notes:           p.Notes,
		specialRequests: p.Requests,
		confirmedAt:     &confirmedAt,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

type Snapshot struct {
	ID                 uuid.UUID
	TenantID           uuid.UUID
	CustomerID         *uuid.UUID
	TableID            *uuid.UUID
	GuestName          string
	GuestPhone         string
	GuestEmail         string
	GuestCount         int
	Date               Date
	Window             TimeWindow
	Status             Status
	Source             Source
	Notes              string
	SpecialRequests    string
	CancellationReason *string
	ConfirmedAt        *time.Time
	SeatedAt           *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Reconstruct rebuilds an entity from stored state without re-running
// creation-time validation.
func Reconstruct(s Snapshot) *Reservation {
	return &Reservation{
		id:                 s.ID,
		tenantID:           s.TenantID,
		customerID:         s.CustomerID,
		tableID:            s.TableID,
		guestName:          s.GuestName,
		guestPhone:         s.GuestPhone,
		guestEmail:         s.GuestEmail,
		guestCount:         s.GuestCount,
		date:               s.Date,
		window:             s.Window,
		status:             s.Status,
		source:             s.Source,
		notes:              s.Notes,
		specialRequests:    s.SpecialRequests,
		cancellationReason: s.CancellationReason,
		confirmedAt:        s.ConfirmedAt,
		seatedAt:           s.SeatedAt,
		completedAt:        s.CompletedAt,
		cancelledAt:        s.CancelledAt,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
	}
}

func (r *Reservation) ToSnapshot() Snapshot {
	return Snapshot{
		ID:                 r.id,
		TenantID:           r.tenantID,
		CustomerID:         r.customerID,
		TableID:            r.tableID,
		GuestName:          r.guestName,
		GuestPhone:         r.guestPhone,
		GuestEmail:         r.guestEmail,
		GuestCount:         r.guestCount,
		Date:               r.date,
		Window:             r.window,
		Status:             r.status,
		Source:             r.source,
		Notes:              r.notes,
		SpecialRequests:    r.specialRequests,
		CancellationReason: r.cancellationReason,
		ConfirmedAt:        r.confirmedAt,
		SeatedAt:           r.seatedAt,
		CompletedAt:        r.completedAt,
		CancelledAt:        r.cancelledAt,
		CreatedAt:          r.createdAt,
		UpdatedAt:          r.updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) TenantID() uuid.UUID         { return r.tenantID }
func (r *Reservation) CustomerID() *uuid.UUID      { return r.customerID }
func (r *Reservation) TableID() *uuid.UUID         { return r.tableID }
func (r *Reservation) GuestName() string           { return r.guestName }
func (r *Reservation) GuestPhone() string          { return r.guestPhone }
func (r *Reservation) GuestEmail() string          { return r.guestEmail }
func (r *Reservation) GuestCount() int             { return r.guestCount }
func (r *Reservation) Date() Date                  { return r.date }
func (r *Reservation) Window() TimeWindow          { return r.window }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) Source() Source              { return r.source }
func (r *Reservation) Notes() string               { return r.notes }
func (r *Reservation) SpecialRequests() string     { return r.specialRequests }
func (r *Reservation) CancellationReason() *string { return r.cancellationReason }
func (r *Reservation) ConfirmedAt() *time.Time     { return r.confirmedAt }
func (r *Reservation) SeatedAt() *time.Time        { return r.seatedAt }
func (r *Reservation) CompletedAt() *time.Time     { return r.completedAt }
func (r *Reservation) CancelledAt() *time.Time     { return r.cancelledAt }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

// ----------------------------------------------------------------------------
// Lifecycle transitions
// ----------------------------------------------------------------------------

func (r *Reservation) transition(to Status) error {
	if !r.status.CanTransitionTo(to) {
		return &InvalidTransitionError{From: r.status, To: to}
	}
	r.status = to
	return nil
}

func (r *Reservation) Seat(now time.Time) error {
	if err := r.transition(StatusSeated); err != nil {
		return err
	}
	r.seatedAt = &now
	r.updatedAt = now
	return nil
}

func (r *Reservation) Complete(now time.Time) error {
	if err := r.transition(StatusCompleted); err != nil {
		return err
	}
	r.completedAt = &now
	r.updatedAt = now
	return nil
}

func (r *Reservation) MarkNoShow(now time.Time) error {
	if err := r.transition(StatusNoShow); err != nil {
		return err
	}
	r.updatedAt = now
	return nil
}

// Reopen reverts a mistaken no-show mark back to confirmed.
func (r *Reservation) Reopen(now time.Time) error {
	if err := r.transition(StatusConfirmed); err != nil {
		return err
	}
	r.updatedAt = now
	return nil
}

func (r *Reservation) Cancel(now time.Time, reason *string) error {
	if err := r.transition(StatusCancelled); err != nil {
		return err
	}
	r.cancelledAt = &now
	r.cancellationReason = reason
	r.updatedAt = now
	return nil
}

// ----------------------------------------------------------------------------
// Field edits
// ----------------------------------------------------------------------------

func (r *Reservation) ensureEditable() error {
	if r.status.IsTerminal() {
		return errs.Mark(errs.Newf("reservation is %s", r.status), ErrEditLocked)
	}
	return nil
}

func (r *Reservation) UpdateGuestName(name string, now time.Time) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	if name == "" {
		return ErrMissingGuestName
	}
	r.guestName = name
	r.updatedAt = now
	return nil
}

func (r *Reservation) UpdateContact(phone, email string, now time.Time) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	r.guestPhone = phone
	r.guestEmail = email
	r.updatedAt = now
	return nil
}

func (r *Reservation) UpdateGuestCount(count int, policy Policy, now time.Time) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	if count < 1 {
		return ErrPartyTooSmall
	}
	if err := validateParty(count, policy); err != nil {
		return err
	}
	r.guestCount = count
	r.updatedAt = now
	return nil
}

// Reschedule moves the reservation to a new date and window, re-validating
// duration and operating hours but not lead time.
func (r *Reservation) Reschedule(date Date, window TimeWindow, policy Policy, now time.Time) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	if err := validateWindow(window, policy); err != nil {
		return err
	}
	r.date = date
	r.window = window
	r.updatedAt = now
	return nil
}

func (r *Reservation) AssignTable(tableID *uuid.UUID, now time.Time) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	r.tableID = tableID
	r.updatedAt = now
	return nil
}

func (r *Reservation) LinkCustomer(customerID *uuid.UUID, now time.Time) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	r.customerID = customerID
	r.updatedAt = now
	return nil
}

func (r *Reservation) UpdateNotes(notes, requests string, now time.Time) error {
	if err := r.ensureEditable(); err != nil {
		return err
	}
	r.notes = notes
	r.specialRequests = requests
	r.updatedAt = now
	return nil
}

// ----------------------------------------------------------------------------
// Validation rules
// ----------------------------------------------------------------------------

func validateParty(count int, policy Policy) error {
	if policy.MaxPartySize > 0 && count > policy.MaxPartySize {
		return errs.Mark(errs.Newf("party of %d exceeds maximum %d", count, policy.MaxPartySize), ErrPartyTooLarge)
	}
	return nil
}

func validateWindow(window TimeWindow, policy Policy) error {
	if window.Minutes() <= 0 {
		return ErrInvalidDuration
	}
	// A booking ending exactly at closing is valid.
	if window.Start() < policy.OpeningTime || window.End() > policy.ClosingTime {
		return errs.Mark(
			errs.Newf("window %s is outside operating hours %s-%s",
				window, policy.OpeningTime, policy.ClosingTime),
			ErrOutsideOperatingHours,
		)
	}
	return nil
}

func validateLeadTime(date Date, window TimeWindow, policy Policy, now time.Time) error {
	start := date.At(window.Start(), now.Location())
	lead := start.Sub(now)
	if lead < time.Duration(policy.MinAdvanceHours)*time.Hour {
		return errs.Mark(
			errs.Newf("start %s is under the %dh minimum advance", start.Format(time.RFC3339), policy.MinAdvanceHours),
			ErrLeadTimeTooShort,
		)
	}
	if policy.MaxAdvanceDays > 0 && lead > time.Duration(policy.MaxAdvanceDays)*24*time.Hour {
		return errs.Mark(
			errs.Newf("start %s is beyond the %dd maximum advance", start.Format(time.RFC3339), policy.MaxAdvanceDays),
			ErrLeadTimeTooFar,
		)
	}
	return nil
}
