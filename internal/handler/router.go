package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"library-lending/internal/domain/user"
	"library-lending/internal/handler/api"
	"library-lending/internal/handler/middleware"
	"library-lending/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups every API handler so the router signature stays stable as endpoints grow.
type Handlers struct {
	Auth         *api.AuthHandler
	Book         *api.BookHandler
	Loan         *api.LoanHandler
	Reservation  *api.ReservationHandler
	BookRequest  *api.BookRequestHandler
	Notification *api.NotificationHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	staff := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleLibrarian)}
	// public routes still attribute the request to a caller when a token is sent
	optional := []gin.HandlerFunc{authMiddleware.OptionalAuth()}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		auth.Use(authMiddleware.RequireAuth())
		addRoutes(auth, []route{
			{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
		})

		books := apiGroup.Group("/books")
		{
			addRoutes(books, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Book.List, Mw: optional},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Book.Get, Mw: optional},
			})

			booksAuth := books.Group("")
			booksAuth.Use(authMiddleware.RequireAuth())
			addRoutes(booksAuth, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Book.Create, Mw: staff},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Book.Update, Mw: staff},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Book.Delete, Mw: staff},
			})
		}

		loans := apiGroup.Group("/loans")
		loans.Use(authMiddleware.RequireAuth())
		addRoutes(loans, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Loan.Issue},
			{Method: http.MethodGet, Path: "", Handler: h.Loan.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Loan.Get},
			{Method: http.MethodPost, Path: "/:id/return-request", Handler: h.Loan.RequestReturn},
			{Method: http.MethodPost, Path: "/:id/return-approve", Handler: h.Loan.ApproveReturn, Mw: staff},
			{Method: http.MethodPost, Path: "/:id/return-reject", Handler: h.Loan.RejectReturn, Mw: staff},
		})

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		addRoutes(reservations, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Reservation.List},
			{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Reservation.Approve, Mw: staff},
			{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Reservation.Reject, Mw: staff},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.Cancel},
		})

		requests := apiGroup.Group("/book-requests")
		requests.Use(authMiddleware.RequireAuth())
		addRoutes(requests, []route{
			{Method: http.MethodPost, Path: "", Handler: h.BookRequest.Submit},
			{Method: http.MethodGet, Path: "", Handler: h.BookRequest.List},
			{Method: http.MethodPost, Path: "/:id/approve", Handler: h.BookRequest.Approve, Mw: staff},
			{Method: http.MethodPost, Path: "/:id/reject", Handler: h.BookRequest.Reject, Mw: staff},
		})

		notifications := apiGroup.Group("/notifications")
		notifications.Use(authMiddleware.RequireAuth())
		addRoutes(notifications, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Notification.List},
			{Method: http.MethodPost, Path: "/read-all", Handler: h.Notification.MarkAllRead},
			{Method: http.MethodPost, Path: "/:id/read", Handler: h.Notification.MarkRead},
		})
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
			h = chainHandlers(append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)...)
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
