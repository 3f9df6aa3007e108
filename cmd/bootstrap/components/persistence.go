package components

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"tablebook/internal/infra/db"
	"tablebook/internal/infra/readstore"
	"tablebook/internal/infra/repository"
	"tablebook/internal/infra/uow"
	"tablebook/internal/usecase/queries"
	"tablebook/internal/usecase/shared"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUnitOfWork,
			fx.As(new(shared.UnitOfWork)),
		),
		// The sweep statement is atomic and needs no surrounding transaction,
		// so the sweeper runs straight on the pool.
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(shared.Sweeper)),
		),
		fx.Annotate(
			repository.NewSettingsRepository,
			fx.As(new(queries.SettingsProvider)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewTableReadStore,
			fx.As(new(queries.TableCatalog)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
