//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebook/internal/domain/reservation"
	"tablebook/tests/common/builder"
)

type testCase struct {
	name   string
	mutate func(*builder.ReservationBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewReservationBuilder().With(tc.mutate)
			_, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, b.TenantID, actual.TenantID())
		assert.Equal(t, reservation.StatusConfirmed, actual.Status())
		assert.Equal(t, "Dana Whitfield", actual.GuestName())
		assert.Equal(t, 4, actual.GuestCount())
		require.NotNil(t, actual.ConfirmedAt())
		assert.Equal(t, b.Now, *actual.ConfirmedAt())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("defaults source to phone", func(t *testing.T) {
		b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Source = ""
		})
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, reservation.SourcePhone, actual.Source())
	})

	t.Run("guest validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing guest name",
				mutate: func(b *builder.ReservationBuilder) { b.GuestName = "" },
				errIs:  reservation.ErrMissingGuestName,
			},
			{
				name:   "zero party",
				mutate: func(b *builder.ReservationBuilder) { b.GuestCount = 0 },
				errIs:  reservation.ErrPartyTooSmall,
			},
			{
				name:   "party at maximum",
				mutate: func(b *builder.ReservationBuilder) { b.GuestCount = b.Policy.MaxPartySize },
			},
			{
				name:   "party above maximum",
				mutate: func(b *builder.ReservationBuilder) { b.GuestCount = b.Policy.MaxPartySize + 1 },
				errIs:  reservation.ErrPartyTooLarge,
			},
		})
	})

	t.Run("operating hours", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "starts before opening",
				mutate: func(b *builder.ReservationBuilder) {
					b.StartTime = b.Policy.OpeningTime - 1
				},
				errIs: reservation.ErrOutsideOperatingHours,
			},
			{
				name: "starts at opening",
				mutate: func(b *builder.ReservationBuilder) {
					b.StartTime = b.Policy.OpeningTime
				},
			},
			{
				name: "ends exactly at closing",
				mutate: func(b *builder.ReservationBuilder) {
					b.StartTime = b.Policy.ClosingTime.Add(-b.DurationMinutes)
				},
			},
			{
				name: "ends one minute past closing",
				mutate: func(b *builder.ReservationBuilder) {
					b.StartTime = b.Policy.ClosingTime.Add(-b.DurationMinutes + 1)
				},
				errIs: reservation.ErrOutsideOperatingHours,
			},
			{
				name:   "zero duration",
				mutate: func(b *builder.ReservationBuilder) { b.DurationMinutes = 0 },
				errIs:  reservation.ErrInvalidDuration,
			},
		})
	})

	t.Run("lead time", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "under minimum advance",
				mutate: func(b *builder.ReservationBuilder) {
					b.Date = reservation.DateOf(b.Now)
					b.StartTime = reservation.TimeOfDay(12*60 + 30) // 30min out, min is 1h
				},
				errIs: reservation.ErrLeadTimeTooShort,
			},
			{
				name: "beyond maximum advance",
				mutate: func(b *builder.ReservationBuilder) {
					b.Date = reservation.DateOf(b.Now.AddDate(0, 0, b.Policy.MaxAdvanceDays+1))
				},
				errIs: reservation.ErrLeadTimeTooFar,
			},
			{
				name: "at the edge of the advance window",
				mutate: func(b *builder.ReservationBuilder) {
					b.Date = reservation.DateOf(b.Now.AddDate(0, 0, b.Policy.MaxAdvanceDays - 1))
				},
			},
		})
	})
}

func TestReservationTransitions(t *testing.T) {
	now := time.Date(2026, time.September, 2, 18, 5, 0, 0, time.UTC)

	t.Run("seat then complete", func(t *testing.T) {
		r := builder.NewReservationBuilder().MustBuildDomain()

		require.NoError(t, r.Seat(now))
		assert.Equal(t, reservation.StatusSeated, r.Status())
		require.NotNil(t, r.SeatedAt())

		require.NoError(t, r.Complete(now.Add(90*time.Minute)))
		assert.Equal(t, reservation.StatusCompleted, r.Status())
		require.NotNil(t, r.CompletedAt())
	})

	t.Run("no-show and reopen", func(t *testing.T) {
		r := builder.NewReservationBuilder().MustBuildDomain()

		require.NoError(t, r.MarkNoShow(now))
		assert.Equal(t, reservation.StatusNoShow, r.Status())

		require.NoError(t, r.Reopen(now.Add(time.Minute)))
		assert.Equal(t, reservation.StatusConfirmed, r.Status())
	})

	t.Run("cancel records reason and timestamp", func(t *testing.T) {
		r := builder.NewReservationBuilder().MustBuildDomain()
		reason := "guest called to cancel"

		require.NoError(t, r.Cancel(now, &reason))
		assert.Equal(t, reservation.StatusCancelled, r.Status())
		require.NotNil(t, r.CancelledAt())
		require.NotNil(t, r.CancellationReason())
		assert.Equal(t, reason, *r.CancellationReason())
	})

	t.Run("completed is terminal", func(t *testing.T) {
		r := builder.NewReservationBuilder().MustBuildDomain()
		require.NoError(t, r.Seat(now))
		require.NoError(t, r.Complete(now))

		err := r.Cancel(now, nil)
		require.ErrorIs(t, err, reservation.ErrInvalidTransition)

		var transitionErr *reservation.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, reservation.StatusCompleted, transitionErr.From)
		assert.Equal(t, reservation.StatusCancelled, transitionErr.To)
	})

	t.Run("cannot complete without seating", func(t *testing.T) {
		r := builder.NewReservationBuilder().MustBuildDomain()
		require.ErrorIs(t, r.Complete(now), reservation.ErrInvalidTransition)
	})

	t.Run("cannot reopen a cancellation", func(t *testing.T) {
		r := builder.NewReservationBuilder().MustBuildDomain()
		require.NoError(t, r.Cancel(now, nil))
		require.ErrorIs(t, r.Reopen(now), reservation.ErrInvalidTransition)
	})
}

func TestReservationEdits(t *testing.T) {
	now := time.Date(2026, time.September, 1, 13, 0, 0, 0, time.UTC)
	policy := builder.NewReservationBuilder().Policy

	t.Run("reschedule skips lead time check", func(t *testing.T) {
		r := builder.NewReservationBuilder().MustBuildDomain()

		// Move to a window that would fail the creation-time advance check.
		soon := reservation.DateOf(now)
		window, err := reservation.NewTimeWindow(reservation.TimeOfDay(13*60+15), 60)
		require.NoError(t, err)

		require.NoError(t, r.Reschedule(soon, window, policy, now))
		assert.True(t, r.Date().Equal(soon))
		assert.Equal(t, window, r.Window())
	})

	t.Run("reschedule still enforces operating hours", func(t *testing.T) {
		r := builder.NewReservationBuilder().MustBuildDomain()
		window, err := reservation.NewTimeWindow(policy.ClosingTime, 60)
		require.NoError(t, err)

		err = r.Reschedule(r.Date(), window, policy, now)
		require.ErrorIs(t, err, reservation.ErrOutsideOperatingHours)
	})

	t.Run("guest count edit revalidates against policy", func(t *testing.T) {
		r := builder.NewReservationBuilder().MustBuildDomain()
		err := r.UpdateGuestCount(policy.MaxPartySize+1, policy, now)
		require.ErrorIs(t, err, reservation.ErrPartyTooLarge)
	})

	t.Run("terminal reservations reject edits", func(t *testing.T) {
		r := builder.NewReservationBuilder().MustBuildDomain()
		require.NoError(t, r.Cancel(now, nil))

		require.ErrorIs(t, r.UpdateGuestName("New Name", now), reservation.ErrEditLocked)
		require.ErrorIs(t, r.UpdateGuestCount(2, policy, now), reservation.ErrEditLocked)
		require.ErrorIs(t, r.AssignTable(nil, now), reservation.ErrEditLocked)
		require.ErrorIs(t, r.UpdateNotes("n", "r", now), reservation.ErrEditLocked)
	})

	t.Run("no-show reservations stay editable", func(t *testing.T) {
		r := builder.NewReservationBuilder().MustBuildDomain()
		require.NoError(t, r.MarkNoShow(now))
		require.NoError(t, r.UpdateGuestName("Corrected Name", now))
		assert.Equal(t, "Corrected Name", r.GuestName())
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	r := builder.NewReservationBuilder().MustBuildDomain()
	tableID := uuid.New()
	require.NoError(t, r.AssignTable(&tableID, time.Now()))

	rebuilt := reservation.Reconstruct(r.ToSnapshot())
	assert.Equal(t, r.ToSnapshot(), rebuilt.ToSnapshot())
}
