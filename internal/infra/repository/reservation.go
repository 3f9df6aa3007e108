package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/scheduling"
	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/pkg/pgconv"
	"tablebook/internal/usecase/shared"
)

const reservationColumns = `
	id, tenant_id, customer_id, table_id,
	guest_name, guest_phone, guest_email, guest_count,
	reservation_date, start_minutes, end_minutes,
	status, source, notes, special_requests, cancellation_reason,
	confirmed_at, seated_at, completed_at, cancelled_at,
	created_at, updated_at`

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) error {
	s := res.ToSnapshot()
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		s.ID, s.TenantID,
		pgconv.UUIDPtrToPgtype(s.CustomerID), pgconv.UUIDPtrToPgtype(s.TableID),
		s.GuestName, s.GuestPhone, s.GuestEmail, s.GuestCount,
		dateToPg(s.Date), s.Window.Start().Minutes(), s.Window.End().Minutes(),
		string(s.Status), string(s.Source), s.Notes, s.SpecialRequests,
		pgconv.StringPtrToPgtype(s.CancellationReason),
		pgconv.TimePtrToPgtype(s.ConfirmedAt), pgconv.TimePtrToPgtype(s.SeatedAt),
		pgconv.TimePtrToPgtype(s.CompletedAt), pgconv.TimePtrToPgtype(s.CancelledAt),
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return wrapPgErr("failed to insert reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	s := res.ToSnapshot()
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations SET
			customer_id = $3, table_id = $4,
			guest_name = $5, guest_phone = $6, guest_email = $7, guest_count = $8,
			reservation_date = $9, start_minutes = $10, end_minutes = $11,
			status = $12, source = $13, notes = $14, special_requests = $15,
			cancellation_reason = $16,
			confirmed_at = $17, seated_at = $18, completed_at = $19, cancelled_at = $20,
			updated_at = $21
		WHERE tenant_id = $1 AND id = $2`,
		s.TenantID, s.ID,
		pgconv.UUIDPtrToPgtype(s.CustomerID), pgconv.UUIDPtrToPgtype(s.TableID),
		s.GuestName, s.GuestPhone, s.GuestEmail, s.GuestCount,
		dateToPg(s.Date), s.Window.Start().Minutes(), s.Window.End().Minutes(),
		string(s.Status), string(s.Source), s.Notes, s.SpecialRequests,
		pgconv.StringPtrToPgtype(s.CancellationReason),
		pgconv.TimePtrToPgtype(s.ConfirmedAt), pgconv.TimePtrToPgtype(s.SeatedAt),
		pgconv.TimePtrToPgtype(s.CompletedAt), pgconv.TimePtrToPgtype(s.CancelledAt),
		s.UpdatedAt,
	)
	if err != nil {
		return wrapPgErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE tenant_id = $1 AND id = $2
		FOR UPDATE`,
		tenantID, id,
	)
	res, err := scanReservation(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
		}
		return nil, wrapPgErr("failed to find reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) LockActiveByTable(ctx context.Context, tenantID, tableID uuid.UUID, date reservation.Date) ([]scheduling.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, table_id, guest_name, start_minutes, end_minutes
		FROM reservations
		WHERE tenant_id = $1 AND table_id = $2 AND reservation_date = $3
		  AND status IN ('confirmed', 'seated')
		FOR UPDATE`,
		tenantID, tableID, dateToPg(date),
	)
	if err != nil {
		return nil, wrapPgErr("failed to lock active reservations by table", err)
	}
	return collectBookings(rows)
}

func (r *ReservationRepository) LockActiveByDate(ctx context.Context, tenantID uuid.UUID, date reservation.Date) ([]scheduling.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, table_id, guest_name, start_minutes, end_minutes
		FROM reservations
		WHERE tenant_id = $1 AND reservation_date = $2
		  AND table_id IS NOT NULL
		  AND status IN ('confirmed', 'seated')
		FOR UPDATE`,
		tenantID, dateToPg(date),
	)
	if err != nil {
		return nil, wrapPgErr("failed to lock active reservations by date", err)
	}
	return collectBookings(rows)
}

// SweepOverdueConfirmed flips confirmed reservations past their tenant's
// auto-cancel grace to no_show in one statement; the status predicate makes
// it a no-op for anything a staff member seated concurrently.
func (r *ReservationRepository) SweepOverdueConfirmed(ctx context.Context) ([]shared.Overdue, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE reservations r
		SET status = 'no_show', updated_at = now()
		FROM operating_settings s
		WHERE r.tenant_id = s.tenant_id
		  AND r.status = 'confirmed'
		  AND s.auto_cancel_minutes > 0
		  AND r.reservation_date::timestamptz
		      + make_interval(mins => r.start_minutes + s.auto_cancel_minutes) < now()
		RETURNING r.tenant_id, r.id, r.reservation_date`)
	if err != nil {
		return nil, wrapPgErr("failed to sweep overdue reservations", err)
	}
	defer rows.Close()

	var out []shared.Overdue
	for rows.Next() {
		var sw shared.Overdue
		var date pgtype.Date
		if err := rows.Scan(&sw.TenantID, &sw.ID, &date); err != nil {
			return nil, wrapPgErr("failed to scan swept reservation", err)
		}
		sw.Date = reservation.DateOf(date.Time)
		out = append(out, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read swept reservations", err)
	}
	return out, nil
}

func collectBookings(rows pgx.Rows) ([]scheduling.Booking, error) {
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
			return nil, wrapPgErr("failed to scan active reservation", err)
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
		return nil, wrapPgErr("failed to read active reservations", err)
	}
	return out, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		s                  reservation.Snapshot
		customerID         pgtype.UUID
		tableID            pgtype.UUID
		date               pgtype.Date
		start, end         int
		status, source     string
		cancellationReason pgtype.Text
		confirmedAt        pgtype.Timestamptz
		seatedAt           pgtype.Timestamptz
		completedAt        pgtype.Timestamptz
		cancelledAt        pgtype.Timestamptz
	)
	err := row.Scan(
		&s.ID, &s.TenantID, &customerID, &tableID,
		&s.GuestName, &s.GuestPhone, &s.GuestEmail, &s.GuestCount,
		&date, &start, &end,
		&status, &source, &s.Notes, &s.SpecialRequests, &cancellationReason,
		&confirmedAt, &seatedAt, &completedAt, &cancelledAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	window, err := reservation.NewTimeWindow(reservation.TimeOfDay(start), end-start)
	if err != nil {
		return nil, err
	}

	s.CustomerID = pgconv.UUIDPtrFromPgtype(customerID)
	s.TableID = pgconv.UUIDPtrFromPgtype(tableID)
	s.Date = reservation.DateOf(date.Time)
	s.Window = window
	s.Status = reservation.Status(status)
	s.Source = reservation.Source(source)
	s.CancellationReason = pgconv.StringPtrFromPgtype(cancellationReason)
	s.ConfirmedAt = pgconv.TimePtrFromPgtype(confirmedAt)
	s.SeatedAt = pgconv.TimePtrFromPgtype(seatedAt)
	s.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
	s.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)

	return reservation.Reconstruct(s), nil
}
