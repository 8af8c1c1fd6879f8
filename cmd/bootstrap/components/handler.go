package components

import (
	"foodshare/internal/handler"
	"foodshare/internal/handler/api"
	"foodshare/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewUserHandler,
		api.NewListingHandler,
		api.NewDonationHandler,
		api.NewAnalyticsHandler,
		middleware.NewAuthMiddleware,
		func(auth *api.AuthHandler, user *api.UserHandler, listing *api.ListingHandler, donation *api.DonationHandler, analytics *api.AnalyticsHandler) handler.Handlers {
			return handler.Handlers{
				Auth:      auth,
				User:      user,
				Listing:   listing,
				Donation:  donation,
				Analytics: analytics,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
