package commands

import (
	"context"

	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/settings"
	"tablebook/internal/pkg/patch"
	"tablebook/internal/usecase/shared"
)

type UpdateSettingsInput struct {
	OpeningTime            patch.Field[reservation.TimeOfDay]
	ClosingTime            patch.Field[reservation.TimeOfDay]
	SlotIntervalMinutes    patch.Field[int]
	DefaultDurationMinutes patch.Field[int]
	MinAdvanceHours        patch.Field[int]
	MaxAdvanceDays         patch.Field[int]
	MaxPartySize           patch.Field[int]
	AutoCancelMinutes      patch.Field[int]
	ConfirmationRequired   patch.Field[bool]
	AllowOnlineBooking     patch.Field[bool]
	IsEnabled              patch.Field[bool]
}

type SettingsCommands interface {
	Update(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (settings.Operating, error)
}

type settingsCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewSettingsCommands(uow shared.UnitOfWork) SettingsCommands {
	return &settingsCommandsImpl{uow: uow}
}

// Update merges the patch onto the stored settings and validates the result
// as a whole, so a partial update can never leave an inconsistent row.
// Cached availability built under the old settings ages out with its TTL.
func (c *settingsCommandsImpl) Update(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (settings.Operating, error) {
	var result settings.Operating
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		set, _, err := tx.Settings().GetOrCreate(ctx, tenantID)
		if err != nil {
			return err
		}

		patch.Apply(&set.OpeningTime, input.OpeningTime)
		patch.Apply(&set.ClosingTime, input.ClosingTime)
		patch.Apply(&set.SlotIntervalMinutes, input.SlotIntervalMinutes)
		patch.Apply(&set.DefaultDurationMinutes, input.DefaultDurationMinutes)
		patch.Apply(&set.MinAdvanceHours, input.MinAdvanceHours)
		patch.Apply(&set.MaxAdvanceDays, input.MaxAdvanceDays)
		patch.Apply(&set.MaxPartySize, input.MaxPartySize)
		patch.Apply(&set.AutoCancelMinutes, input.AutoCancelMinutes)
		patch.Apply(&set.ConfirmationRequired, input.ConfirmationRequired)
		patch.Apply(&set.AllowOnlineBooking, input.AllowOnlineBooking)
		patch.Apply(&set.IsEnabled, input.IsEnabled)

		if err := set.Validate(); err != nil {
			return err
		}
		if err := tx.Settings().Update(ctx, tenantID, set); err != nil {
			return err
		}
		result = set
		return nil
	})
	if err != nil {
		return settings.Operating{}, err
	}
	return result, nil
}
