package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/muhammadchandra19/hodlinfo/internal/metrics"
	"github.com/muhammadchandra19/hodlinfo/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/hodlinfo/pkg/logger"
)

// RouterConfig is the config for the router.
type RouterConfig struct {
	Ticker      *TickerHandler
	HealthCheck *healthcheck.HealthCheck
	Metrics     *metrics.Metrics
	Logger      logger.Interface
	PublicDir   string
}

// NewRouter builds the HTTP routes:
//
//	GET /fetch-data  sync the tickers
//	GET /tickers     list the stored tickers
//	GET /health      liveness
//	GET /ready       readiness
//	GET /metrics     prometheus exposition
//	GET /*           static files from PublicDir
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestContext)
	r.Use(AccessLog(cfg.Logger, cfg.Metrics))
	r.Use(middleware.Recoverer)
	if cfg.HealthCheck != nil {
		r.Use(cfg.HealthCheck.Handler)
	}

	r.Get("/fetch-data", cfg.Ticker.FetchData)
	r.Get("/tickers", cfg.Ticker.Tickers)

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	if cfg.PublicDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.PublicDir)))
	}

	return r
}
