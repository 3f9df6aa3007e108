package components

import (
	"context"

	"go.uber.org/fx"

	"tablebook/internal/jobs"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/commands"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		func(sweep commands.SweepCommands, cfg config.Config) *jobs.SweepRunner {
			return jobs.NewSweepRunner(sweep, cfg.Jobs)
		},
	),
	fx.Invoke(registerSweepRunner),
)

func registerSweepRunner(lc fx.Lifecycle, runner *jobs.SweepRunner) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			runner.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			runner.Stop()
			return nil
		},
	})
}
