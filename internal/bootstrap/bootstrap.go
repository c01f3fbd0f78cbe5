package bootstrap

import (
	tickerDomain "github.com/muhammadchandra19/hodlinfo/internal/domain/ticker"
	"github.com/muhammadchandra19/hodlinfo/internal/metrics"
	"github.com/muhammadchandra19/hodlinfo/pkg/config"
	"github.com/muhammadchandra19/hodlinfo/pkg/logger"
	"github.com/muhammadchandra19/hodlinfo/pkg/postgresql"
	"github.com/muhammadchandra19/hodlinfo/pkg/redis"
)

// Bootstrap is the bootstrap for the ticker service.
type Bootstrap struct {
	Usecase    Usecase
	Logger     logger.Interface
	REST       REST
	Repository Repository
	Metrics    *metrics.Metrics

	Config     *config.Config
	PostgreSQL postgresql.PostgreSQLClient
	Redis      redis.Client
	Publisher  tickerDomain.Publisher
}

// BoostrapConfig is the config for the bootstrap. Redis and Publisher are optional.
type BoostrapConfig struct {
	Config     *config.Config
	PostgreSQL postgresql.PostgreSQLClient
	Redis      redis.Client
	Publisher  tickerDomain.Publisher
	Logger     logger.Interface
	Metrics    *metrics.Metrics
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config BoostrapConfig) Bootstrap {
	b.Config = config.Config
	b.PostgreSQL = config.PostgreSQL
	b.Redis = config.Redis
	b.Publisher = config.Publisher
	b.Logger = config.Logger
	b.Metrics = config.Metrics

	b.registerRepository()
	b.registerUsecase()
	b.registerREST()

	return *b
}
