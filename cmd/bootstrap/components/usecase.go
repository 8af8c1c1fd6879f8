package components

import (
	"foodshare/internal/pkg/clock"
	"foodshare/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewTokenValidator,
		usecase.NewAuthUseCase,
		usecase.NewUserUseCase,
		usecase.NewListingUseCase,
		usecase.NewDonationUseCase,
		usecase.NewAnalyticsUseCase,
	),
)
