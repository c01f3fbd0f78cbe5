package bootstrap

import (
	tickerDomain "github.com/muhammadchandra19/hodlinfo/internal/domain/ticker"
	"github.com/muhammadchandra19/hodlinfo/internal/infrastructure/redis/synclock"
	"github.com/muhammadchandra19/hodlinfo/internal/infrastructure/wazirx"
	tickerUc "github.com/muhammadchandra19/hodlinfo/internal/usecase/ticker"
)

// Usecase is the usecase for the ticker service.
type Usecase struct {
	TickerUsecase tickerDomain.Usecase
}

// registerUsecase registers the usecase.
func (b *Bootstrap) registerUsecase() {
	upstream := b.Config.Upstream
	fetcher := wazirx.NewClient(upstream.BaseURL, b.Logger,
		wazirx.WithTickersPath(upstream.TickersPath),
		wazirx.WithTimeout(upstream.Timeout),
		wazirx.WithUserAgent(upstream.UserAgent),
	)

	opts := []tickerUc.Option{
		tickerUc.WithMetrics(b.Metrics),
	}

	if b.Redis != nil {
		key := b.Config.Redis.Key(b.Config.Sync.LockKey)
		opts = append(opts, tickerUc.WithLocker(synclock.New(b.Redis, key, b.Config.Sync.LockTTL, b.Logger)))
	}

	if b.Publisher != nil {
		opts = append(opts, tickerUc.WithPublisher(b.Publisher))
	}

	b.Usecase.TickerUsecase = tickerUc.NewUsecase(fetcher, b.Repository.TickerRepository, b.Logger, opts...)
}
