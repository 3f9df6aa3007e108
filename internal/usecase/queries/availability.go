package queries

import (
	"context"

	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/scheduling"
	"tablebook/internal/domain/settings"
	"tablebook/internal/domain/table"
	"tablebook/internal/pkg/clock"
)

type AvailabilityQueries interface {
	Get(ctx context.Context, tenantID uuid.UUID, date reservation.Date, partySize int) (*AvailabilityView, error)
}

// SettingsProvider returns fully-populated settings, creating defaults on a
// tenant's first access.
type SettingsProvider interface {
	GetOrCreate(ctx context.Context, tenantID uuid.UUID) (settings.Operating, bool, error)
}

type TableCatalog interface {
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]table.Table, error)
}

// AvailabilityCache is a best-effort read-through cache. Misses and cache
// outages both fall through to the calculator.
type AvailabilityCache interface {
	Get(ctx context.Context, tenantID uuid.UUID, date reservation.Date, partySize int) (*AvailabilityView, bool)
	Set(ctx context.Context, tenantID uuid.UUID, date reservation.Date, partySize int, view *AvailabilityView)
	InvalidateDate(ctx context.Context, tenantID uuid.UUID, date reservation.Date)
}

type availabilityQueriesImpl struct {
	settings     SettingsProvider
	tables       TableCatalog
	reservations ReservationReadStore
	cache        AvailabilityCache
	clock        clock.Clock
}

func NewAvailabilityQueries(
	settingsProvider SettingsProvider,
	tables TableCatalog,
	reservations ReservationReadStore,
	cache AvailabilityCache,
	clk clock.Clock,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		settings:     settingsProvider,
		tables:       tables,
		reservations: reservations,
		cache:        cache,
		clock:        clk,
	}
}

func (q *availabilityQueriesImpl) Get(ctx context.Context, tenantID uuid.UUID, date reservation.Date, partySize int) (*AvailabilityView, error) {
	if partySize < 1 {
		return nil, reservation.ErrPartyTooSmall
	}

	if view, ok := q.cache.Get(ctx, tenantID, date, partySize); ok {
		return view, nil
	}

	set, _, err := q.settings.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !set.IsEnabled {
		return nil, reservation.ErrBookingDisabled
	}

	tables, err := q.tables.ListActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	bookings, err := q.reservations.ActiveByDate(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}

	candidates := scheduling.CandidateTables(tables, partySize)
	slots := scheduling.Slots(set, date, candidates, bookings, q.clock.Now())

	view := &AvailabilityView{
		Date:      date,
		PartySize: partySize,
		OperatingWindow: OperatingWindowView{
			OpeningTime: set.OpeningTime,
			ClosingTime: set.ClosingTime,
		},
		HasFittingTables: len(candidates) > 0,
		Slots:            toSlotViews(slots),
	}

	q.cache.Set(ctx, tenantID, date, partySize, view)
	return view, nil
}

func toSlotViews(slots []scheduling.Slot) []SlotView {
	out := make([]SlotView, len(slots))
	for i, s := range slots {
		out[i] = SlotView{
			Time:      s.Time,
			Available: s.Available,
			TableIDs:  s.TableIDs,
		}
	}
	return out
}
