package components

import (
	"foodshare/internal/infra/repository"
	"foodshare/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
			fx.As(new(usecase.UserQueryRepository)),
		),
		fx.Annotate(
			repository.NewListingRepository,
			fx.As(new(usecase.ListingRepository)),
			fx.As(new(usecase.ListingLockRepository)),
		),
		fx.Annotate(
			repository.NewDonationRepository,
			fx.As(new(usecase.DonationRepository)),
		),
		fx.Annotate(
			repository.NewAnalyticsRepository,
			fx.As(new(usecase.AnalyticsRepository)),
		),
	),
)
