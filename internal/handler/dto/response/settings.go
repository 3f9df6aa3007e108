package response

import (
	"tablebook/internal/usecase/queries"
)

type SettingsResponse struct {
	OpeningTime            string `json:"opening_time"`
	ClosingTime            string `json:"closing_time"`
	SlotIntervalMinutes    int    `json:"slot_interval_minutes"`
	DefaultDurationMinutes int    `json:"default_duration_minutes"`
	MinAdvanceHours        int    `json:"min_advance_hours"`
	MaxAdvanceDays         int    `json:"max_advance_days"`
	MaxPartySize           int    `json:"max_party_size"`
	AutoCancelMinutes      int    `json:"auto_cancel_minutes"`
	ConfirmationRequired   bool   `json:"confirmation_required"`
	AllowOnlineBooking     bool   `json:"allow_online_booking"`
	IsEnabled              bool   `json:"is_enabled"`
}

func FromSettingsView(v *queries.SettingsView) *SettingsResponse {
	return &SettingsResponse{
		OpeningTime:            v.OpeningTime.String(),
		ClosingTime:            v.ClosingTime.String(),
		SlotIntervalMinutes:    v.SlotIntervalMinutes,
		DefaultDurationMinutes: v.DefaultDurationMinutes,
		MinAdvanceHours:        v.MinAdvanceHours,
		MaxAdvanceDays:         v.MaxAdvanceDays,
		MaxPartySize:           v.MaxPartySize,
		AutoCancelMinutes:      v.AutoCancelMinutes,
		ConfirmationRequired:   v.ConfirmationRequired,
		AllowOnlineBooking:     v.AllowOnlineBooking,
		IsEnabled:              v.IsEnabled,
	}
}
