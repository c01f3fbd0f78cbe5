package ticker

import (
	"context"
	"time"

	tickerDomain "github.com/muhammadchandra19/hodlinfo/internal/domain/ticker"
	v1 "github.com/muhammadchandra19/hodlinfo/internal/domain/ticker/v1"
	tickerInfra "github.com/muhammadchandra19/hodlinfo/internal/infrastructure/postgresql/ticker"
	"github.com/muhammadchandra19/hodlinfo/internal/infrastructure/wazirx"
	"github.com/muhammadchandra19/hodlinfo/internal/metrics"
	"github.com/muhammadchandra19/hodlinfo/pkg/errors"
	"github.com/muhammadchandra19/hodlinfo/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// SyncLimit is the number of upstream tickers kept by a sync.
const SyncLimit = 10

const syncKey = "sync"

// Usecase is the usecase for the ticker.
type Usecase struct {
	fetcher          tickerDomain.Fetcher
	tickerRepository tickerInfra.TickerRepository
	logger           logger.Interface

	locker    tickerDomain.Locker
	publisher tickerDomain.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time

	group singleflight.Group
}

// Option configures the usecase.
type Option func(*Usecase)

// WithLocker guards syncs with a cross-process lock.
func WithLocker(locker tickerDomain.Locker) Option {
	return func(u *Usecase) {
		u.locker = locker
	}
}

// WithPublisher announces successful syncs.
func WithPublisher(publisher tickerDomain.Publisher) Option {
	return func(u *Usecase) {
		u.publisher = publisher
	}
}

// WithMetrics records sync metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(u *Usecase) {
		u.metrics = m
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

// NewUsecase creates a new ticker usecase.
func NewUsecase(fetcher tickerDomain.Fetcher, tickerRepository tickerInfra.TickerRepository, logger logger.Interface, opts ...Option) *Usecase {
	u := &Usecase{
		fetcher:          fetcher,
		tickerRepository: tickerRepository,
		logger:           logger,
		now:              time.Now,
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

// Sync fetches the upstream tickers and replaces the stored snapshot with the
// first SyncLimit of them. Concurrent calls share one run and its result.
func (u *Usecase) Sync(ctx context.Context) (*v1.SyncResult, error) {
	runCtx := context.WithoutCancel(ctx)
	ch := u.group.DoChan(syncKey, func() (any, error) {
		return u.sync(runCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*v1.SyncResult), nil
	case <-ctx.Done():
		return nil, pipelineError(ctx.Err())
	}
}

func (u *Usecase) sync(ctx context.Context) (*v1.SyncResult, error) {
	start := u.now()

	if u.locker != nil {
		release, err := u.locker.Acquire(ctx)
		if err != nil {
			return nil, u.fail(ctx, start, err)
		}
		defer func() {
			if err := release(ctx); err != nil {
				u.logger.ErrorContext(ctx, errors.TracerFromError(err))
			}
		}()
	}

	u.logger.InfoContext(ctx, "Fetching data from API...")
	fetched, err := u.fetcher.FetchTickers(ctx)
	if err != nil {
		return nil, u.fail(ctx, start, err)
	}

	if len(fetched) > SyncLimit {
		fetched = fetched[:SyncLimit]
	}
	records, symbols := toRecords(fetched)

	u.logger.InfoContext(ctx, "Synchronizing database...")
	u.logger.InfoContext(ctx, "Storing fetched data into database...", logger.Field{
		Key:   "count",
		Value: len(records),
	})

	stored, err := u.tickerRepository.ResetAndStoreAll(ctx, records)
	if err != nil {
		return nil, u.fail(ctx, start, err)
	}

	result := &v1.SyncResult{
		Stored:   stored,
		SyncedAt: u.now().UTC(),
		Symbols:  symbols,
	}

	u.metrics.ObserveSync(metrics.ResultSuccess, result.SyncedAt.Sub(start), stored, result.SyncedAt)
	u.logger.InfoContext(ctx, "Data fetched and stored successfully.", logger.Field{
		Key:   "stored",
		Value: stored,
	})

	u.publish(ctx, result)

	return result, nil
}

func (u *Usecase) publish(ctx context.Context, result *v1.SyncResult) {
	if u.publisher == nil {
		return
	}

	if err := u.publisher.PublishSynced(ctx, v1.NewSyncEvent(result)); err != nil {
		u.metrics.IncPublishErrors()
		u.logger.WarnContext(ctx, "Failed to publish sync event", logger.Field{
			Key:   "error",
			Value: err.Error(),
		})
	}
}

func (u *Usecase) fail(ctx context.Context, start time.Time, err error) error {
	u.metrics.ObserveSync(metrics.ResultFailure, u.now().Sub(start), 0, time.Time{})
	u.logger.ErrorContext(ctx, errors.TracerFromError(err), logger.Field{
		Key:   "step",
		Value: "fetch-data",
	})

	return pipelineError(err)
}

// List returns every stored ticker annotated with its 1-based position.
func (u *Usecase) List(ctx context.Context) ([]*v1.ListedTicker, error) {
	u.logger.InfoContext(ctx, "Retrieving stored data from database...")

	tickers, err := u.tickerRepository.ListAll(ctx)
	if err != nil {
		u.logger.ErrorContext(ctx, errors.TracerFromError(err))
		return nil, err
	}

	listed := make([]*v1.ListedTicker, 0, len(tickers))
	for i, t := range tickers {
		listed = append(listed, &v1.ListedTicker{
			SrNo:   i + 1,
			Ticker: t,
		})
	}

	u.logger.InfoContext(ctx, "Data retrieved successfully.", logger.Field{
		Key:   "count",
		Value: len(listed),
	})

	return listed, nil
}

func toRecords(fetched []*wazirx.Ticker) ([]*tickerInfra.Ticker, []string) {
	records := make([]*tickerInfra.Ticker, 0, len(fetched))
	symbols := make([]string, 0, len(fetched))

	for _, t := range fetched {
		records = append(records, &tickerInfra.Ticker{
			BaseUnit:  t.BaseUnit,
			QuoteUnit: t.QuoteUnit,
			Low:       t.Low.InexactFloat64(),
			High:      t.High.InexactFloat64(),
			Last:      t.Last.InexactFloat64(),
			Open:      t.Open.InexactFloat64(),
			Volume:    t.Volume.InexactFloat64(),
			Sell:      t.Sell.InexactFloat64(),
			Buy:       t.Buy.InexactFloat64(),
			At:        t.At.IntPart(),
			Name:      t.Name,
		})
		symbols = append(symbols, t.Symbol)
	}

	return records, symbols
}

func pipelineError(err error) error {
	return errors.NewErrorDetails(err.Error(), string(errors.PipelineError), "fetch-data").Wrap(err)
}
