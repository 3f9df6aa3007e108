package request

import (
	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/patch"
	"tablebook/internal/usecase/commands"
)

type UpdateSettingsRequest struct {
	OpeningTime            patch.Field[reservation.TimeOfDay] `json:"opening_time"`
	ClosingTime            patch.Field[reservation.TimeOfDay] `json:"closing_time"`
	SlotIntervalMinutes    patch.Field[int]                   `json:"slot_interval_minutes"`
	DefaultDurationMinutes patch.Field[int]                   `json:"default_duration_minutes"`
	MinAdvanceHours        patch.Field[int]                   `json:"min_advance_hours"`
	MaxAdvanceDays         patch.Field[int]                   `json:"max_advance_days"`
	MaxPartySize           patch.Field[int]                   `json:"max_party_size"`
	AutoCancelMinutes      patch.Field[int]                   `json:"auto_cancel_minutes"`
	ConfirmationRequired   patch.Field[bool]                  `json:"confirmation_required"`
	AllowOnlineBooking     patch.Field[bool]                  `json:"allow_online_booking"`
	IsEnabled              patch.Field[bool]                  `json:"is_enabled"`
}

func (r UpdateSettingsRequest) ToInput() commands.UpdateSettingsInput {
	return commands.UpdateSettingsInput{
		OpeningTime:            r.OpeningTime,
		ClosingTime:            r.ClosingTime,
		SlotIntervalMinutes:    r.SlotIntervalMinutes,
		DefaultDurationMinutes: r.DefaultDurationMinutes,
		MinAdvanceHours:        r.MinAdvanceHours,
		MaxAdvanceDays:         r.MaxAdvanceDays,
		MaxPartySize:           r.MaxPartySize,
		AutoCancelMinutes:      r.AutoCancelMinutes,
		ConfirmationRequired:   r.ConfirmationRequired,
		AllowOnlineBooking:     r.AllowOnlineBooking,
		IsEnabled:              r.IsEnabled,
	}
}
