package components

import (
	"shopcore/internal/infra/cartstore"
	"shopcore/internal/infra/db"
	"shopcore/internal/infra/gateway"
	"shopcore/internal/infra/readstore"
	"shopcore/internal/infra/uow"
	"shopcore/internal/pkg/config"
	"shopcore/internal/usecase/commands"
	"shopcore/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		uow.NewPostgresUoW,
		// Read-side stores
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderViewRepo)),
		),
		fx.Annotate(
			readstore.NewLoyaltyReadStore,
			fx.As(new(queries.LoyaltyViewRepo)),
		),
		fx.Annotate(
			readstore.NewDiscountReadStore,
			fx.As(new(queries.DiscountViewRepo)),
		),
		// Cart storage
		NewCartStore,
		// Remote services
		NewCatalogGateway,
		NewIdentityGateway,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewCartStore(client *redis.Client, cfg config.Config) commands.CartStore {
	return cartstore.NewRedisCartStore(client, cfg.Redis.CartTTL)
}

func NewCatalogGateway(cfg config.Config) commands.CatalogGateway {
	return gateway.NewCatalogClient(cfg.Gateway)
}

func NewIdentityGateway(cfg config.Config) commands.IdentityGateway {
	return gateway.NewIdentityClient(cfg.Gateway)
}
