// Package settings models the per-tenant operating configuration every other
// component consumes. Missing rows are created lazily with Defaults.
package settings

import (
	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/errs"
)

var (
	ErrClosingBeforeOpening = errs.New("closing time must be after opening time")
	ErrInvalidSlotInterval  = errs.New("slot interval must be positive")
	ErrInvalidDuration      = errs.New("default duration must be positive")
	ErrInvalidPartySize     = errs.New("max party size must be at least one")
	ErrInvalidAdvanceWindow = errs.New("advance window is inconsistent")
)

type Operating struct {
	OpeningTime            reservation.TimeOfDay
	ClosingTime            reservation.TimeOfDay
	SlotIntervalMinutes    int
	DefaultDurationMinutes int
	MinAdvanceHours        int
	MaxAdvanceDays         int
	MaxPartySize           int
	AutoCancelMinutes      int
	ConfirmationRequired   bool
	AllowOnlineBooking     bool
	IsEnabled              bool
}

// Defaults mirrors what a freshly onboarded tenant gets before touching the
// settings screen.
func Defaults() Operating {
	return Operating{
		OpeningTime:            reservation.TimeOfDay(11 * 60),
		ClosingTime:            reservation.TimeOfDay(22 * 60),
		SlotIntervalMinutes:    30,
		DefaultDurationMinutes: 90,
		MinAdvanceHours:        1,
		MaxAdvanceDays:         30,
		MaxPartySize:           12,
		AutoCancelMinutes:      30,
		ConfirmationRequired:   false,
		AllowOnlineBooking:     true,
		IsEnabled:              true,
	}
}

func (o Operating) Validate() error {
	if o.ClosingTime <= o.OpeningTime {
		return ErrClosingBeforeOpening
	}
	if o.SlotIntervalMinutes <= 0 {
		return ErrInvalidSlotInterval
	}
	if o.DefaultDurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if o.MaxPartySize < 1 {
		return ErrInvalidPartySize
	}
	if o.MinAdvanceHours < 0 || o.MaxAdvanceDays < 0 {
		return ErrInvalidAdvanceWindow
	}
	return nil
}

// Policy projects the settings onto the creation limits the reservation
// entity validates against.
func (o Operating) Policy() reservation.Policy {
	return reservation.Policy{
		OpeningTime:     o.OpeningTime,
		ClosingTime:     o.ClosingTime,
		MaxPartySize:    o.MaxPartySize,
		MinAdvanceHours: o.MinAdvanceHours,
		MaxAdvanceDays:  o.MaxAdvanceDays,
	}
}
