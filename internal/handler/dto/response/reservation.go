package response

import (
	"time"

	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/usecase/queries"
)

type ReservationResponse struct {
	ID                 uuid.UUID  `json:"id"`
	CustomerID         *uuid.UUID `json:"customer_id,omitempty"`
	TableID            *uuid.UUID `json:"table_id,omitempty"`
	TableNumber        *int       `json:"table_number,omitempty"`
	GuestName          string     `json:"guest_name"`
	GuestPhone         string     `json:"guest_phone,omitempty"`
	GuestEmail         string     `json:"guest_email,omitempty"`
	GuestCount         int        `json:"guest_count"`
	Date               string     `json:"date"`
	StartTime          string     `json:"start_time"`
	EndTime            string     `json:"end_time"`
	DurationMinutes    int        `json:"duration_minutes"`
	Status             string     `json:"status"`
	Source             string     `json:"source"`
	Notes              string     `json:"notes,omitempty"`
	SpecialRequests    string     `json:"special_requests,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	SeatedAt           *time.Time `json:"seated_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type ReservationPageResponse struct {
	Items []*ReservationResponse `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

type DaySummaryResponse struct {
	Date           string `json:"date"`
	Confirmed      int    `json:"confirmed"`
	Seated         int    `json:"seated"`
	Completed      int    `json:"completed"`
	Cancelled      int    `json:"cancelled"`
	NoShow         int    `json:"no_show"`
	ExpectedGuests int    `json:"expected_guests"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:                 v.ID,
		CustomerID:         v.CustomerID,
		TableID:            v.TableID,
		TableNumber:        v.TableNumber,
		GuestName:          v.GuestName,
		GuestPhone:         v.GuestPhone,
		GuestEmail:         v.GuestEmail,
		GuestCount:         v.GuestCount,
		Date:               v.Date.String(),
		StartTime:          v.StartTime.String(),
		EndTime:            v.EndTime.String(),
		DurationMinutes:    v.DurationMinutes,
		Status:             v.Status,
		Source:             v.Source,
		Notes:              v.Notes,
		SpecialRequests:    v.SpecialRequests,
		CancellationReason: v.CancellationReason,
		ConfirmedAt:        v.ConfirmedAt,
		SeatedAt:           v.SeatedAt,
		CompletedAt:        v.CompletedAt,
		CancelledAt:        v.CancelledAt,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

// FromReservation maps an entity fresh out of a command; table_number is not
// loaded on the write path and stays unset.
func FromReservation(r *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                 r.ID(),
		CustomerID:         r.CustomerID(),
		TableID:            r.TableID(),
		GuestName:          r.GuestName(),
		GuestPhone:         r.GuestPhone(),
		GuestEmail:         r.GuestEmail(),
		GuestCount:         r.GuestCount(),
		Date:               r.Date().String(),
		StartTime:          r.Window().Start().String(),
		EndTime:            r.Window().End().String(),
		DurationMinutes:    r.Window().Minutes(),
		Status:             string(r.Status()),
		Source:             string(r.Source()),
		Notes:              r.Notes(),
		SpecialRequests:    r.SpecialRequests(),
		CancellationReason: r.CancellationReason(),
		ConfirmedAt:        r.ConfirmedAt(),
		SeatedAt:           r.SeatedAt(),
		CompletedAt:        r.CompletedAt(),
		CancelledAt:        r.CancelledAt(),
		CreatedAt:          r.CreatedAt(),
		UpdatedAt:          r.UpdatedAt(),
	}
}

func FromReservationPage(p *queries.ReservationPage) *ReservationPageResponse {
	items := make([]*ReservationResponse, len(p.Items))
	for i, v := range p.Items {
		items[i] = FromReservationView(v)
	}
	return &ReservationPageResponse{
		Items: items,
		Total: p.Total,
		Page:  p.Page,
		Limit: p.Limit,
	}
}

func FromDaySummary(s *queries.DaySummary) *DaySummaryResponse {
	return &DaySummaryResponse{
		Date:           s.Date.String(),
		Confirmed:      s.Confirmed,
		Seated:         s.Seated,
		Completed:      s.Completed,
		Cancelled:      s.Cancelled,
		NoShow:         s.NoShow,
		ExpectedGuests: s.ExpectedGuests,
	}
}
