//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/settings"
	reqdto "tablebook/internal/handler/dto/request"
	"tablebook/internal/usecase/queries"
)

// ReservationBuilder assembles valid reservation input that individual tests
// mutate into the case under test. The default books a party of four,
// tomorrow at 18:00 for 90 minutes, under default operating settings.
type ReservationBuilder struct {
	TenantID        uuid.UUID
	CustomerID      *uuid.UUID
	TableID         *uuid.UUID
	GuestName       string
	GuestPhone      string
	GuestEmail      string
	GuestCount      int
	Date            reservation.Date
	StartTime       reservation.TimeOfDay
	DurationMinutes int
	Source          reservation.Source
	Notes           string
	Requests        string
	Policy          reservation.Policy
	Now             time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		TenantID:        uuid.New(),
		GuestName:       "Dana Whitfield",
		GuestPhone:      "+1-555-0142",
		GuestEmail:      "dana@example.com",
		GuestCount:      4,
		Date:            reservation.Date{Year: 2026, Month: time.September, Day: 2},
		StartTime:       reservation.TimeOfDay(18 * 60),
		DurationMinutes: 90,
		Source:          reservation.SourcePhone,
		Policy:          settings.Defaults().Policy(),
		Now:             now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) Window() reservation.TimeWindow {
	w, err := reservation.NewTimeWindow(b.StartTime, b.DurationMinutes)
	if err != nil {
		panic(err)
	}
	return w
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	window, err := reservation.NewTimeWindow(b.StartTime, b.DurationMinutes)
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(reservation.NewReservationParams{
		TenantID:   b.TenantID,
		CustomerID: b.CustomerID,
		TableID:    b.TableID,
		GuestName:  b.GuestName,
		GuestPhone: b.GuestPhone,
		GuestEmail: b.GuestEmail,
		GuestCount: b.GuestCount,
		Date:       b.Date,
		Window:     window,
		Source:     b.Source,
		Notes:      b.Notes,
		Requests:   b.Requests,
	}, b.Policy, b.Now)
}

// MustBuildDomain is for tests exercising behavior after a known-good build.
func (b *ReservationBuilder) MustBuildDomain() *reservation.Reservation {
	r, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return r
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	duration := b.DurationMinutes
	return reqdto.CreateReservationRequest{
		TableID:         b.TableID,
		CustomerID:      b.CustomerID,
		GuestName:       b.GuestName,
		GuestPhone:      b.GuestPhone,
		GuestEmail:      b.GuestEmail,
		GuestCount:      b.GuestCount,
		Date:            b.Date.String(),
		StartTime:       b.StartTime.String(),
		DurationMinutes: &duration,
		Source:          string(b.Source),
		Notes:           b.Notes,
		SpecialRequests: b.Requests,
	}
}

// BuildView mirrors what the read store would return for this reservation.
func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:              uuid.New(),
		CustomerID:      b.CustomerID,
		TableID:         b.TableID,
		GuestName:       b.GuestName,
		GuestPhone:      b.GuestPhone,
		GuestEmail:      b.GuestEmail,
		GuestCount:      b.GuestCount,
		Date:            b.Date,
		StartTime:       b.StartTime,
		EndTime:         b.StartTime.Add(b.DurationMinutes),
		DurationMinutes: b.DurationMinutes,
		Status:          string(reservation.StatusConfirmed),
		Source:          string(b.Source),
		CreatedAt:       b.Now,
		UpdatedAt:       b.Now,
	}
}
