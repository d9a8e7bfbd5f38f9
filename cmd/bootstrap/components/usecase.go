package components

import (
	"library-lending/internal/pkg/clock"
	"library-lending/internal/usecase/commands"
	"library-lending/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCatalogUseCase,
		commands.NewLendingUseCase,
		commands.NewReservationUseCase,
		commands.NewBookRequestUseCase,
		commands.NewNotificationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookQueries,
		queries.NewLoanQueries,
		queries.NewReservationQueries,
		queries.NewBookRequestQueries,
		queries.NewNotificationQueries,
	),
)
