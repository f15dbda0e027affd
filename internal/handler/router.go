package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"facility-reservation/internal/handler/api"
	"facility-reservation/internal/handler/middleware"
	"facility-reservation/internal/pkg/authz"
	"facility-reservation/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	eventHandler *api.EventHandler,
	roomRequestHandler *api.RoomRequestHandler,
	changeHandler *api.ChangeHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, eventHandler, roomRequestHandler, changeHandler, bookingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	eventHandler *api.EventHandler,
	roomRequestHandler *api.RoomRequestHandler,
	changeHandler *api.ChangeHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		events := apiGroup.Group("/events")
		{
			addRoutes(events, []route{
				{Method: http.MethodPost, Path: "", Handler: eventHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: eventHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: eventHandler.Get},
				{Method: http.MethodPost, Path: "/:id/submit", Handler: eventHandler.Submit},
				{Method: http.MethodPost, Path: "/:id/request-cancellation", Handler: eventHandler.RequestCancellation},
			})
			addRoutes(events, []route{
				{Method: http.MethodPost, Path: "/:id/approve", Handler: eventHandler.Approve,
					Mw: []gin.HandlerFunc{authMiddleware.RequireCapability(authz.ActionApproveEvent)}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: eventHandler.Reject,
					Mw: []gin.HandlerFunc{authMiddleware.RequireCapability(authz.ActionApproveEvent)}},
				{Method: http.MethodPost, Path: "/:id/decide-cancellation", Handler: eventHandler.DecideCancellation,
					Mw: []gin.HandlerFunc{authMiddleware.RequireCapability(authz.ActionApproveEvent)}},
			})
		}

		requests := apiGroup.Group("/room-requests")
		{
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "", Handler: roomRequestHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: roomRequestHandler.ListByUnit},
				{Method: http.MethodGet, Path: "/:id", Handler: roomRequestHandler.Get},
				{Method: http.MethodPut, Path: "/:id/lines", Handler: roomRequestHandler.EditLines},
				{Method: http.MethodDelete, Path: "/:id", Handler: roomRequestHandler.Cancel},
			})
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "/lines/:lineId/resolve", Handler: roomRequestHandler.ResolveLine,
					Mw: []gin.HandlerFunc{authMiddleware.RequireCapability(authz.ActionResolveLine)}},
			})
		}

		changes := apiGroup.Group("/change-requests")
		{
			addRoutes(changes, []route{
				{Method: http.MethodPost, Path: "", Handler: changeHandler.Submit},
				{Method: http.MethodGet, Path: "", Handler: changeHandler.ListByBooking},
				{Method: http.MethodGet, Path: "/:id", Handler: changeHandler.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: changeHandler.Cancel},
			})
			addRoutes(changes, []route{
				{Method: http.MethodPost, Path: "/:id/decide", Handler: changeHandler.Decide,
					Mw: []gin.HandlerFunc{authMiddleware.RequireCapability(authz.ActionDecideChange)}},
			})
		}

		rooms := apiGroup.Group("/rooms")
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListRooms},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetRoom},
				{Method: http.MethodGet, Path: "/:id/schedule", Handler: bookingHandler.RoomSchedule},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
