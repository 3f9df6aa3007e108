package queries

import (
	"time"

	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Read models (DTO for read side)
type ReservationView struct {
	ID                 uuid.UUID             `json:"id"`
	CustomerID         *uuid.UUID            `json:"customer_id,omitempty"`
	TableID            *uuid.UUID            `json:"table_id,omitempty"`
	TableNumber        *int                  `json:"table_number,omitempty"`
	GuestName          string                `json:"guest_name"`
	GuestPhone         string                `json:"guest_phone,omitempty"`
	GuestEmail         string                `json:"guest_email,omitempty"`
	GuestCount         int                   `json:"guest_count"`
	Date               reservation.Date      `json:"date"`
	StartTime          reservation.TimeOfDay `json:"start_time"`
	EndTime            reservation.TimeOfDay `json:"end_time"`
	DurationMinutes    int                   `json:"duration_minutes"`
	Status             string                `json:"status"`
	Source             string                `json:"source"`
	Notes              string                `json:"notes,omitempty"`
	SpecialRequests    string                `json:"special_requests,omitempty"`
	CancellationReason *string               `json:"cancellation_reason,omitempty"`
	ConfirmedAt        *time.Time            `json:"confirmed_at,omitempty"`
	SeatedAt           *time.Time            `json:"seated_at,omitempty"`
	CompletedAt        *time.Time            `json:"completed_at,omitempty"`
	CancelledAt        *time.Time            `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

type ReservationPage struct {
	Items []*ReservationView `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type ListFilter struct {
	From   *reservation.Date
	To     *reservation.Date
	Status *reservation.Status
	Search string
	Page   int
	Limit  int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
}

// DaySummary aggregates one day's load for the floor view.
type DaySummary struct {
	Date           reservation.Date `json:"date"`
	Confirmed      int              `json:"confirmed"`
	Seated         int              `json:"seated"`
	Completed      int              `json:"completed"`
	Cancelled      int              `json:"cancelled"`
	NoShow         int              `json:"no_show"`
	ExpectedGuests int              `json:"expected_guests"`
}

type SlotView struct {
	Time      reservation.TimeOfDay `json:"time"`
	Available bool                  `json:"available"`
	TableIDs  []uuid.UUID           `json:"table_ids,omitempty"`
}

type OperatingWindowView struct {
	OpeningTime reservation.TimeOfDay `json:"opening_time"`
	ClosingTime reservation.TimeOfDay `json:"closing_time"`
}

type AvailabilityView struct {
	Date             reservation.Date    `json:"date"`
	PartySize        int                 `json:"party_size"`
	OperatingWindow  OperatingWindowView `json:"operating_window"`
	HasFittingTables bool                `json:"has_fitting_tables"`
	Slots            []SlotView          `json:"slots"`
}

type SettingsView struct {
	OpeningTime            reservation.TimeOfDay `json:"opening_time"`
	ClosingTime            reservation.TimeOfDay `json:"closing_time"`
	SlotIntervalMinutes    int                   `json:"slot_interval_minutes"`
	DefaultDurationMinutes int                   `json:"default_duration_minutes"`
	MinAdvanceHours        int                   `json:"min_advance_hours"`
	MaxAdvanceDays         int                   `json:"max_advance_days"`
	MaxPartySize           int                   `json:"max_party_size"`
	AutoCancelMinutes      int                   `json:"auto_cancel_minutes"`
	ConfirmationRequired   bool                  `json:"confirmation_required"`
	AllowOnlineBooking     bool                  `json:"allow_online_booking"`
	IsEnabled              bool                  `json:"is_enabled"`
}
