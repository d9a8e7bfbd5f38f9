package components

import (
	"library-lending/internal/handler"
	"library-lending/internal/handler/api"
	"library-lending/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookHandler,
		api.NewLoanHandler,
		api.NewReservationHandler,
		api.NewBookRequestHandler,
		api.NewNotificationHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Auth         *api.AuthHandler
	Book         *api.BookHandler
	Loan         *api.LoanHandler
	Reservation  *api.ReservationHandler
	BookRequest  *api.BookRequestHandler
	Notification *api.NotificationHandler
}

func NewHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Auth:         p.Auth,
		Book:         p.Book,
		Loan:         p.Loan,
		Reservation:  p.Reservation,
		BookRequest:  p.BookRequest,
		Notification: p.Notification,
	}
}
