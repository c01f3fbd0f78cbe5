package bootstrap

import (
	"context"
	"net/http"

	"github.com/muhammadchandra19/hodlinfo/internal/rest"
	"github.com/muhammadchandra19/hodlinfo/pkg/httplib/healthcheck"
)

// REST is the HTTP surface of the ticker service.
type REST struct {
	TickerHandler *rest.TickerHandler
	HealthCheck   *healthcheck.HealthCheck
	Router        http.Handler
}

// registerREST registers the HTTP handlers and router.
func (b *Bootstrap) registerREST() {
	b.REST.TickerHandler = rest.NewTickerHandler(b.Usecase.TickerUsecase, b.Logger)

	b.REST.HealthCheck = healthcheck.New(b.Config.App.ReadTimeout).
		Register("postgresql", func(ctx context.Context) healthcheck.Report {
			return b.PostgreSQL.CheckHealth(ctx)
		})

	b.REST.Router = rest.NewRouter(rest.RouterConfig{
		Ticker:      b.REST.TickerHandler,
		HealthCheck: b.REST.HealthCheck,
		Metrics:     b.Metrics,
		Logger:      b.Logger,
		PublicDir:   b.Config.App.PublicDir,
	})
}
