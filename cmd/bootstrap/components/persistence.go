package components

import (
	"library-lending/internal/infra/readstore"
	"library-lending/internal/infra/uow"
	"library-lending/internal/pkg/config"
	"library-lending/internal/usecase/queries"
	"library-lending/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Write-side repositories are built per transaction by the unit of work; only the read
// stores and the unit of work itself are provided here.
var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
)

var baseOption = fx.Provide(
	NewDBTX,
	NewTxRetryPolicy,
	uow.NewPostgresUoW,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewBookReadStore,
			fx.As(new(queries.BookReadStore)),
		),
		fx.Annotate(
			readstore.NewLoanReadStore,
			fx.As(new(queries.LoanReadStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewBookRequestReadStore,
			fx.As(new(queries.BookRequestReadStore)),
		),
		fx.Annotate(
			readstore.NewNotificationReadStore,
			fx.As(new(queries.NotificationReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) shared.DBTX {
	return pool
}

func NewTxRetryPolicy(cfg config.Config) uow.RetryPolicy {
	return uow.NewRetryPolicy(cfg.DB)
}
