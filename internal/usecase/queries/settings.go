package queries

import (
	"context"

	"github.com/google/uuid"

	"tablebook/internal/domain/settings"
)

type SettingsQueries interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*SettingsView, error)
}

type settingsQueriesImpl struct {
	provider SettingsProvider
}

func NewSettingsQueries(provider SettingsProvider) SettingsQueries {
	return &settingsQueriesImpl{provider: provider}
}

func (q *settingsQueriesImpl) Get(ctx context.Context, tenantID uuid.UUID) (*SettingsView, error) {
	set, _, err := q.provider.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToSettingsView(set), nil
}

func ToSettingsView(set settings.Operating) *SettingsView {
	return &SettingsView{
		OpeningTime:            set.OpeningTime,
		ClosingTime:            set.ClosingTime,
		SlotIntervalMinutes:    set.SlotIntervalMinutes,
		DefaultDurationMinutes: set.DefaultDurationMinutes,
		MinAdvanceHours:        set.MinAdvanceHours,
		MaxAdvanceDays:         set.MaxAdvanceDays,
		MaxPartySize:           set.MaxPartySize,
		AutoCancelMinutes:      set.AutoCancelMinutes,
		ConfirmationRequired:   set.ConfirmationRequired,
		AllowOnlineBooking:     set.AllowOnlineBooking,
		IsEnabled:              set.IsEnabled,
	}
}
