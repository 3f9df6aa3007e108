package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/scheduling"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"
	"tablebook/internal/usecase/queries"
)

const reservationViewColumns = `
	r.id, r.customer_id, r.table_id, t.table_number,
	r.guest_name, r.guest_phone, r.guest_email, r.guest_count,
	r.reservation_date, r.start_minutes, r.end_minutes,
	r.status, r.source, r.notes, r.special_requests, r.cancellation_reason,
	r.confirmed_at, r.seated_at, r.completed_at, r.cancelled_at,
	r.created_at, r.updated_at`

const reservationViewFrom = `
	FROM reservations r
	LEFT JOIN restaurant_tables t ON t.id = r.table_id`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+reservationViewColumns+reservationViewFrom+`
		WHERE r.tenant_id = $1 AND r.id = $2`,
		tenantID, id,
	)
	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find reservation", err)
	}
	return view, nil
}

// List applies the optional filters as numbered parameters; filter values
// never reach the query text itself.
func (r *ReservationReadStore) List(ctx context.Context, tenantID uuid.UUID, filter queries.ListFilter) ([]*queries.ReservationView, int64, error) {
	where := []string{"r.tenant_id = $1"}
	args := []any{tenantID}

	if filter.From != nil {
		args = append(args, dateToPg(*filter.From))
		where = append(where, fmt.Sprintf("r.reservation_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, dateToPg(*filter.To))
		where = append(where, fmt.Sprintf("r.reservation_date <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(r.guest_name ILIKE $%d OR r.guest_phone ILIKE $%d)", n, n))
	}
	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reservations r`+whereClause, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to count reservations", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	rows, err := r.db.Query(ctx,
		`SELECT `+reservationViewColumns+reservationViewFrom+whereClause+`
		ORDER BY r.reservation_date, r.start_minutes, r.created_at
		LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to list reservations", err)
	}
	defer rows.Close()

	var items []*queries.ReservationView
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation", err)
		}
		items = append(items, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to read reservations", err)
	}
	return items, total, nil
}

func (r *ReservationReadStore) DaySummary(ctx context.Context, tenantID uuid.UUID, date reservation.Date) (*queries.DaySummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(guest_count), 0)
		FROM reservations
		WHERE tenant_id = $1 AND reservation_date = $2
		GROUP BY status`,
		tenantID, dateToPg(date),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to summarize day", err)
	}
	defer rows.Close()

	summary := &queries.DaySummary{Date: date}
	for rows.Next() {
		var (
			status string
			count  int
			guests int
		)
		if err := rows.Scan(&status, &count, &guests); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan day summary", err)
		}
		switch reservation.Status(status) {
		case reservation.StatusConfirmed:
			summary.Confirmed = count
			summary.ExpectedGuests += guests
		case reservation.StatusSeated:
			summary.Seated = count
			summary.ExpectedGuests += guests
		case reservation.StatusCompleted:
			summary.Completed = count
		case reservation.StatusCancelled:
			summary.Cancelled = count
		case reservation.StatusNoShow:
			summary.NoShow = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read day summary", err)
	}
	return summary, nil
}

func (r *ReservationReadStore) ActiveByDate(ctx context.Context, tenantID uuid.UUID, date reservation.Date) ([]scheduling.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, table_id, guest_name, start_minutes, end_minutes
		FROM reservations
		WHERE tenant_id = $1 AND reservation_date = $2
		  AND table_id IS NOT NULL
		  AND status IN ('confirmed', 'seated')`,
		tenantID, dateToPg(date),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list active reservations", err)
	}
	defer rows.Close()

	var out []scheduling.Booking
	for rows.Next() {
		var (
			id         uuid.UUID
			tableID    pgtype.UUID
			guestName  string
			start, end int
		)
		if err := rows.Scan(&id, &tableID, &guestName, &start, &end); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan active reservation", err)
		}
		window, err := reservation.NewTimeWindow(reservation.TimeOfDay(start), end-start)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "stored reservation interval is invalid", err)
		}
		out = append(out, scheduling.Booking{
			ReservationID: id,
			TableID:       pgconv.UUIDPtrFromPgtype(tableID),
			GuestName:     guestName,
			Window:        window,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read active reservations", err)
	}
	return out, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		v                  queries.ReservationView
		customerID         pgtype.UUID
		tableID            pgtype.UUID
		tableNumber        pgtype.Int4
		date               pgtype.Date
		start, end         int
		cancellationReason pgtype.Text
		confirmedAt        pgtype.Timestamptz
		seatedAt           pgtype.Timestamptz
		completedAt        pgtype.Timestamptz
		cancelledAt        pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &customerID, &tableID, &tableNumber,
		&v.GuestName, &v.GuestPhone, &v.GuestEmail, &v.GuestCount,
		&date, &start, &end,
		&v.Status, &v.Source, &v.Notes, &v.SpecialRequests, &cancellationReason,
		&confirmedAt, &seatedAt, &completedAt, &cancelledAt,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.CustomerID = pgconv.UUIDPtrFromPgtype(customerID)
	v.TableID = pgconv.UUIDPtrFromPgtype(tableID)
	if tableNumber.Valid {
		n := int(tableNumber.Int32)
		v.TableNumber = &n
	}
	v.Date = reservation.DateOf(date.Time)
	v.StartTime = reservation.TimeOfDay(start)
	v.EndTime = reservation.TimeOfDay(end)
	v.DurationMinutes = end - start
	v.CancellationReason = pgconv.StringPtrFromPgtype(cancellationReason)
	v.ConfirmedAt = pgconv.TimePtrFromPgtype(confirmedAt)
	v.SeatedAt = pgconv.TimePtrFromPgtype(seatedAt)
	v.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
	v.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	return &v, nil
}

func dateToPg(d reservation.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes pattern metacharacters so a search for "100%"
// matches the literal text instead of everything starting with "100".
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
