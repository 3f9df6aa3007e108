package shared

import (
	"context"

	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/scheduling"
	"tablebook/internal/domain/settings"
	"tablebook/internal/domain/table"
)

// UnitOfWork scopes command work to one transaction. The conflict probe and
// the insert/update it guards must share a transaction, otherwise the
// no-double-booking invariant breaks under concurrent writes.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Settings() SettingsRepository
	Tables() TableCatalog
}

type ReservationRepository interface {
	Insert(ctx context.Context, r *reservation.Reservation) error
	Update(ctx context.Context, r *reservation.Reservation) error
	// FindByID locks the row for the remainder of the transaction.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*reservation.Reservation, error)
	// LockActiveByTable returns the active bookings on one table for a date,
	// locked so no concurrent writer can slip a conflicting row in.
	LockActiveByTable(ctx context.Context, tenantID, tableID uuid.UUID, date reservation.Date) ([]scheduling.Booking, error)
	// LockActiveByDate does the same across all tables, for auto-assignment.
	LockActiveByDate(ctx context.Context, tenantID uuid.UUID, date reservation.Date) ([]scheduling.Booking, error)
}

type SettingsRepository interface {
	// GetOrCreate returns the tenant settings, inserting Defaults on first
	// access. The created flag lets callers log the lazy creation.
	GetOrCreate(ctx context.Context, tenantID uuid.UUID) (settings.Operating, bool, error)
	Update(ctx context.Context, tenantID uuid.UUID, s settings.Operating) error
}

// TableCatalog is the consumed interface over the table-catalog module.
type TableCatalog interface {
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]table.Table, error)
}

// Overdue identifies a reservation flipped to no_show by the sweep.
type Overdue struct {
	TenantID uuid.UUID
	ID       uuid.UUID
	Date     reservation.Date
}

// Sweeper is the storage primitive behind the periodic no-show sweep. The
// status check and write are one atomic statement so a concurrent manual
// seat() always wins or loses cleanly, never both.
type Sweeper interface {
	SweepOverdueConfirmed(ctx context.Context) ([]Overdue, error)
}
