package request

import (
	"strings"

	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/patch"
	"tablebook/internal/usecase/commands"
)

type CreateReservationRequest struct {
	TableID         *uuid.UUID `json:"table_id,omitempty"`
	CustomerID      *uuid.UUID `json:"customer_id,omitempty"`
	GuestName       string     `json:"guest_name" binding:"required"`
	GuestPhone      string     `json:"guest_phone"`
	GuestEmail      string     `json:"guest_email" binding:"omitempty,email"`
	GuestCount      int        `json:"guest_count" binding:"required,min=1"`
	Date            string     `json:"date" binding:"required"`
	StartTime       string     `json:"start_time" binding:"required"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" binding:"omitempty,min=1"`
	Source          string     `json:"source,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	SpecialRequests string     `json:"special_requests,omitempty"`
}

func (r CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	date, err := reservation.ParseDate(r.Date)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	start, err := reservation.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	return commands.CreateReservationInput{
		CustomerID:      r.CustomerID,
		TableID:         r.TableID,
		GuestName:       strings.TrimSpace(r.GuestName),
		GuestPhone:      strings.TrimSpace(r.GuestPhone),
		GuestEmail:      strings.TrimSpace(r.GuestEmail),
		GuestCount:      r.GuestCount,
		Date:            date,
		StartTime:       start,
		DurationMinutes: r.DurationMinutes,
		Source:          reservation.Source(r.Source),
		Notes:           r.Notes,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// UpdateReservationRequest distinguishes omitted fields from explicit nulls,
// so PATCH can clear the table assignment with "table_id": null.
type UpdateReservationRequest struct {
	CustomerID      patch.Field[uuid.UUID]             `json:"customer_id"`
	TableID         patch.Field[uuid.UUID]             `json:"table_id"`
	GuestName       patch.Field[string]                `json:"guest_name"`
	GuestPhone      patch.Field[string]                `json:"guest_phone"`
	GuestEmail      patch.Field[string]                `json:"guest_email"`
	GuestCount      patch.Field[int]                   `json:"guest_count"`
	Date            patch.Field[reservation.Date]      `json:"date"`
	StartTime       patch.Field[reservation.TimeOfDay] `json:"start_time"`
	DurationMinutes patch.Field[int]                   `json:"duration_minutes"`
	Notes           patch.Field[string]                `json:"notes"`
	SpecialRequests patch.Field[string]                `json:"special_requests"`
}

func (r UpdateReservationRequest) ToInput() commands.UpdateReservationInput {
	return commands.UpdateReservationInput{
		CustomerID:      r.CustomerID,
		TableID:         r.TableID,
		GuestName:       r.GuestName,
		GuestPhone:      r.GuestPhone,
		GuestEmail:      r.GuestEmail,
		GuestCount:      r.GuestCount,
		Date:            r.Date,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
		SpecialRequests: r.SpecialRequests,
	}
}

type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r CancelReservationRequest) GetReason() *string {
	if r.Reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type ListReservationsQuery struct {
	From   string `form:"from"`
	To     string `form:"to"`
	Status string `form:"status"`
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type AvailabilityQuery struct {
	Date      string `form:"date" binding:"required"`
	PartySize int    `form:"party_size" binding:"required,min=1"`
}

type SummaryQuery struct {
	Date string `form:"date" binding:"required"`
}
