package components

import (
	"facility-reservation/internal/handler"
	"facility-reservation/internal/handler/api"
	"facility-reservation/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewEventHandler,
		api.NewRoomRequestHandler,
		api.NewChangeHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
