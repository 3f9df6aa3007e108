package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/settings"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"
)

type SettingsRepository struct {
	db db.DBTX
}

func NewSettingsRepository(dbtx db.DBTX) *SettingsRepository {
	return &SettingsRepository{db: dbtx}
}

// GetOrCreate inserts the default row on first access for a tenant. The
// creation is an explicit, logged side effect rather than something hidden
// in a read path.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, tenantID uuid.UUID) (settings.Operating, bool, error) {
	d := settings.Defaults()
	tag, err := r.db.Exec(ctx, `
		INSERT INTO operating_settings (
			tenant_id, opening_minutes, closing_minutes,
			slot_interval_minutes, default_duration_minutes,
			min_advance_hours, max_advance_days, max_party_size,
			auto_cancel_minutes, confirmation_required, allow_online_booking, is_enabled
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (tenant_id) DO NOTHING`,
		tenantID, d.OpeningTime.Minutes(), d.ClosingTime.Minutes(),
		d.SlotIntervalMinutes, d.DefaultDurationMinutes,
		d.MinAdvanceHours, d.MaxAdvanceDays, d.MaxPartySize,
		d.AutoCancelMinutes, d.ConfirmationRequired, d.AllowOnlineBooking, d.IsEnabled,
	)
	if err != nil {
		return settings.Operating{}, false, wrapPgErr("failed to ensure operating settings", err)
	}
	created := tag.RowsAffected() > 0
	if created {
		slog.InfoContext(ctx, "created default operating settings", "tenant_id", tenantID)
	}

	s, err := r.get(ctx, tenantID)
	if err != nil {
		return settings.Operating{}, created, err
	}
	return s, created, nil
}

func (r *SettingsRepository) get(ctx context.Context, tenantID uuid.UUID) (settings.Operating, error) {
	var (
		s                settingsRow
		opening, closing int
	)
	err := r.db.QueryRow(ctx, `
		SELECT opening_minutes, closing_minutes,
		       slot_interval_minutes, default_duration_minutes,
		       min_advance_hours, max_advance_days, max_party_size,
		       auto_cancel_minutes, confirmation_required, allow_online_booking, is_enabled
		FROM operating_settings
		WHERE tenant_id = $1`,
		tenantID,
	).Scan(
		&opening, &closing,
		&s.SlotIntervalMinutes, &s.DefaultDurationMinutes,
		&s.MinAdvanceHours, &s.MaxAdvanceDays, &s.MaxPartySize,
		&s.AutoCancelMinutes, &s.ConfirmationRequired, &s.AllowOnlineBooking, &s.IsEnabled,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return settings.Operating{}, infra.WrapRepoErr(infra.KindNotFound, "operating settings not found", err)
		}
		return settings.Operating{}, wrapPgErr("failed to read operating settings", err)
	}

	return settings.Operating{
		OpeningTime:            reservation.TimeOfDay(opening),
		ClosingTime:            reservation.TimeOfDay(closing),
		SlotIntervalMinutes:    s.SlotIntervalMinutes,
		DefaultDurationMinutes: s.DefaultDurationMinutes,
		MinAdvanceHours:        s.MinAdvanceHours,
		MaxAdvanceDays:         s.MaxAdvanceDays,
		MaxPartySize:           s.MaxPartySize,
		AutoCancelMinutes:      s.AutoCancelMinutes,
		ConfirmationRequired:   s.ConfirmationRequired,
		AllowOnlineBooking:     s.AllowOnlineBooking,
		IsEnabled:              s.IsEnabled,
	}, nil
}

// settingsRow mirrors the non-time columns during scanning.
type settingsRow struct {
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

func (r *SettingsRepository) Update(ctx context.Context, tenantID uuid.UUID, s settings.Operating) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE operating_settings SET
			opening_minutes = $2, closing_minutes = $3,
			slot_interval_minutes = $4, default_duration_minutes = $5,
			min_advance_hours = $6, max_advance_days = $7, max_party_size = $8,
			auto_cancel_minutes = $9, confirmation_required = $10,
			allow_online_booking = $11, is_enabled = $12,
			updated_at = now()
		WHERE tenant_id = $1`,
		tenantID, s.OpeningTime.Minutes(), s.ClosingTime.Minutes(),
		s.SlotIntervalMinutes, s.DefaultDurationMinutes,
		s.MinAdvanceHours, s.MaxAdvanceDays, s.MaxPartySize,
		s.AutoCancelMinutes, s.ConfirmationRequired, s.AllowOnlineBooking, s.IsEnabled,
	)
	if err != nil {
		return wrapPgErr("failed to update operating settings", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "operating settings not found", nil)
	}
	return nil
}
