package app

import (
	"context"

	"github.com/muhammadchandra19/hodlinfo/internal/bootstrap"
	"github.com/muhammadchandra19/hodlinfo/internal/infrastructure/kafka/publisher"
	"github.com/muhammadchandra19/hodlinfo/internal/metrics"
	"github.com/muhammadchandra19/hodlinfo/pkg/config"
	"github.com/muhammadchandra19/hodlinfo/pkg/errors"
	"github.com/muhammadchandra19/hodlinfo/pkg/logger"
	"github.com/muhammadchandra19/hodlinfo/pkg/postgresql"
	"github.com/muhammadchandra19/hodlinfo/pkg/redis"
)

// App owns the process-wide handles of the ticker service.
type App struct {
	Config    *config.Config
	Logger    *logger.Logger
	Bootstrap bootstrap.Bootstrap

	db        postgresql.PostgreSQLClient
	redis     redis.Client
	publisher *publisher.Publisher
}

// New connects the backing services and wires the bootstrap.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)))
	if err != nil {
		return nil, err
	}

	a := &App{
		Config: cfg,
		Logger: log,
	}

	if err := a.initDB(ctx); err != nil {
		return nil, err
	}

	if err := a.initRedis(ctx); err != nil {
		a.db.Close()
		return nil, err
	}

	a.initPublisher()

	bsConfig := bootstrap.BoostrapConfig{
		Config:     cfg,
		PostgreSQL: a.db,
		Logger:     log,
		Metrics:    metrics.New(metrics.DefaultConfig()),
	}
	if a.redis != nil {
		bsConfig.Redis = a.redis
	}
	if a.publisher != nil {
		bsConfig.Publisher = a.publisher
	}

	b := &bootstrap.Bootstrap{}
	a.Bootstrap = b.Init(bsConfig)

	return a, nil
}

// EnsureSchema creates the tickers table when it is missing.
func (a *App) EnsureSchema(ctx context.Context) error {
	return a.Bootstrap.Repository.TickerRepository.EnsureSchema(ctx)
}

// Close releases every handle opened by New.
func (a *App) Close(ctx context.Context) {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.Logger.Error(errors.TracerFromError(err))
		}
	}

	if a.redis != nil {
		if err := a.redis.Disconnect(ctx); err != nil {
			a.Logger.Error(errors.TracerFromError(err))
		}
	}

	a.db.Close()
	_ = a.Logger.Sync()
}

func (a *App) initDB(ctx context.Context) error {
	db, err := postgresql.NewClient(ctx, a.Config.PostgreSQL)
	if err != nil {
		a.Logger.Error(errors.TracerFromError(err))
		return err
	}

	a.Logger.Info("Connection to PostgreSQL has been established successfully.",
		logger.NewField("host", db.Host()),
		logger.NewField("database", db.DatabaseName()),
	)
	a.db = db

	return nil
}

func (a *App) initRedis(ctx context.Context) error {
	if !a.Config.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(a.Logger, &a.Config.Redis.Config)
	if err := client.Connect(ctx); err != nil {
		a.Logger.Error(errors.TracerFromError(err))
		return err
	}
	a.redis = client

	return nil
}

func (a *App) initPublisher() {
	if !a.Config.Kafka.Enabled {
		return
	}

	a.publisher = publisher.NewPublisher(a.Config.Kafka, a.Logger)
	a.Logger.Info("Publishing sync events",
		logger.NewField("brokers", a.Config.Kafka.Brokers),
		logger.NewField("topic", a.Config.Kafka.Topic),
	)
}
