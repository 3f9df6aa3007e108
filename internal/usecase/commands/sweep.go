package commands

import (
	"context"
	"log/slog"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/usecase/shared"
)

type SweepCommands interface {
	// SweepOverdue flips confirmed reservations past their grace period to
	// no_show and returns how many were flipped.
	SweepOverdue(ctx context.Context) (int, error)
}

type sweepCommandsImpl struct {
	sweeper shared.Sweeper
	events  EventPublisher
	cache   AvailabilityInvalidator
	clock   clock.Clock
}

func NewSweepCommands(
	sweeper shared.Sweeper,
	events EventPublisher,
	cache AvailabilityInvalidator,
	clk clock.Clock,
) SweepCommands {
	return &sweepCommandsImpl{sweeper: sweeper, events: events, cache: cache, clock: clk}
}

func (c *sweepCommandsImpl) SweepOverdue(ctx context.Context) (int, error) {
	swept, err := c.sweeper.SweepOverdueConfirmed(ctx)
	if err != nil {
		return 0, err
	}

	now := c.clock.Now()
	for _, o := range swept {
		c.cache.InvalidateDate(ctx, o.TenantID, o.Date)
		c.events.PublishReservationEvent(ctx, ReservationEvent{
			Event:         "no_show",
			TenantID:      o.TenantID,
			ReservationID: o.ID,
			Status:        string(reservation.StatusNoShow),
			Date:          o.Date,
			OccurredAt:    now,
		})
	}
	if len(swept) > 0 {
		slog.InfoContext(ctx, "swept overdue reservations to no-show", "count", len(swept))
	}
	return len(swept), nil
}
