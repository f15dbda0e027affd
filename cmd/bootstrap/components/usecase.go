package components

import (
	"facility-reservation/internal/pkg/clock"
	"facility-reservation/internal/usecase/commands"
	"facility-reservation/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewEventCommands,
		commands.NewRequestCommands,
		commands.NewChangeCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewEventQueries,
		queries.NewRequestQueries,
		queries.NewBookingQueries,
		queries.NewChangeQueries,
		queries.NewRoomQueries,
	),
)
