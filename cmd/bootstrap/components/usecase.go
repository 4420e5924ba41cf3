package components

import (
	"shopcore/internal/pkg/clock"
	"shopcore/internal/pkg/config"
	"shopcore/internal/usecase/commands"
	"shopcore/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.PricingConfig {
		return cfg.Pricing
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCheckoutUseCase,
		commands.NewCartUseCase,
		commands.NewOrderStatusUseCase,
		commands.NewLoyaltyUseCase,
		commands.NewDiscountUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
		queries.NewLoyaltyQueries,
		queries.NewDiscountQueries,
	),
)
