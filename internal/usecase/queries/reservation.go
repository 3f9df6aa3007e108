package queries

import (
	"context"

	"github.com/google/uuid"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/scheduling"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/errs"
)

var ErrReservationNotFound = errs.New("reservation not found")

type ReservationQueries interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) (*ReservationPage, error)
	DaySummary(ctx context.Context, tenantID uuid.UUID, date reservation.Date) (*DaySummary, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]*ReservationView, int64, error)
	DaySummary(ctx context.Context, tenantID uuid.UUID, date reservation.Date) (*DaySummary, error)
	// ActiveByDate feeds the availability calculator; a plain read, no locks.
	ActiveByDate(ctx context.Context, tenantID uuid.UUID, date reservation.Date) ([]scheduling.Booking, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, tenantID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) (*ReservationPage, error) {
	filter.Normalize()
	items, total, err := q.store.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	return &ReservationPage{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (q *reservationQueriesImpl) DaySummary(ctx context.Context, tenantID uuid.UUID, date reservation.Date) (*DaySummary, error) {
	return q.store.DaySummary(ctx, tenantID, date)
}
