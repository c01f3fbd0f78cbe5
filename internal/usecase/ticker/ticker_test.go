package ticker

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tickerDomain "github.com/muhammadchandra19/hodlinfo/internal/domain/ticker"
	tickerMock "github.com/muhammadchandra19/hodlinfo/internal/domain/ticker/mock"
	v1 "github.com/muhammadchandra19/hodlinfo/internal/domain/ticker/v1"
	tickerInfra "github.com/muhammadchandra19/hodlinfo/internal/infrastructure/postgresql/ticker"
	tickerRepoMock "github.com/muhammadchandra19/hodlinfo/internal/infrastructure/postgresql/ticker/mock"
	"github.com/muhammadchandra19/hodlinfo/internal/infrastructure/wazirx"
	"github.com/muhammadchandra19/hodlinfo/internal/metrics"
	"github.com/muhammadchandra19/hodlinfo/pkg/errors"
	mockLogger "github.com/muhammadchandra19/hodlinfo/pkg/logger/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func upstreamTickers(n int) []*wazirx.Ticker {
	tickers := make([]*wazirx.Ticker, 0, n)
	for i := 0; i < n; i++ {
		tickers = append(tickers, &wazirx.Ticker{
			Symbol:    fmt.Sprintf("coin%dinr", i),
			BaseUnit:  fmt.Sprintf("coin%d", i),
			QuoteUnit: "inr",
			Low:       decimal.RequireFromString("100.25"),
			High:      decimal.RequireFromString("120"),
			Last:      decimal.NewFromInt(int64(110 + i)),
			Open:      decimal.RequireFromString("105.5"),
			Volume:    decimal.RequireFromString("0.125"),
			Sell:      decimal.RequireFromString("111"),
			Buy:       decimal.RequireFromString("109"),
			At:        decimal.NewFromInt(1588000000 + int64(i)),
			Name:      fmt.Sprintf("COIN%d/INR", i),
		})
	}
	return tickers
}

func ignoreInfo(log *mockLogger.MockInterface) {
	log.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
}

func TestTicker_Sync(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(t *testing.T, fetcher *tickerMock.MockFetcher, repo *tickerRepoMock.MockTickerRepository, locker *tickerMock.MockLocker, publisher *tickerMock.MockPublisher, log *mockLogger.MockInterface)
		assertFn func(t *testing.T, res *v1.SyncResult, err error)
	}{
		{
			name: "stores the first ten in upstream order",
			mockFn: func(t *testing.T, fetcher *tickerMock.MockFetcher, repo *tickerRepoMock.MockTickerRepository, locker *tickerMock.MockLocker, publisher *tickerMock.MockPublisher, log *mockLogger.MockInterface) {
				ignoreInfo(log)
				released := false
				locker.EXPECT().Acquire(gomock.Any()).Return(tickerDomain.ReleaseFunc(func(ctx context.Context) error {
					released = true
					return nil
				}), nil)
				fetcher.EXPECT().FetchTickers(gomock.Any()).Return(upstreamTickers(12), nil)
				repo.EXPECT().ResetAndStoreAll(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, records []*tickerInfra.Ticker) (int, error) {
					if !assert.Len(t, records, SyncLimit) {
						return 0, stderrors.New("unexpected record count")
					}
					for i, r := range records {
						assert.Equal(t, fmt.Sprintf("COIN%d/INR", i), r.Name)
						assert.Equal(t, float64(110+i), r.Last)
						assert.Equal(t, int64(1588000000+i), r.At)
					}
					assert.Equal(t, 100.25, records[0].Low)
					assert.Equal(t, 0.125, records[0].Volume)
					assert.Equal(t, "inr", records[0].QuoteUnit)
					assert.False(t, released)
					return len(records), nil
				})
				publisher.EXPECT().PublishSynced(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, event *v1.SyncEvent) error {
					assert.Equal(t, v1.SyncedEventName, event.Event)
					assert.Equal(t, 10, event.Stored)
					assert.Len(t, event.Symbols, 10)
					assert.Equal(t, fixedNow, event.SyncedAt)
					return nil
				})
			},
			assertFn: func(t *testing.T, res *v1.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 10, res.Stored)
				assert.Equal(t, fixedNow, res.SyncedAt)
				assert.Equal(t, "coin0inr", res.Symbols[0])
				assert.Equal(t, "coin9inr", res.Symbols[9])
			},
		},
		{
			name: "fewer than ten are all stored",
			mockFn: func(t *testing.T, fetcher *tickerMock.MockFetcher, repo *tickerRepoMock.MockTickerRepository, locker *tickerMock.MockLocker, publisher *tickerMock.MockPublisher, log *mockLogger.MockInterface) {
				ignoreInfo(log)
				locker.EXPECT().Acquire(gomock.Any()).Return(tickerDomain.ReleaseFunc(func(ctx context.Context) error { return nil }), nil)
				fetcher.EXPECT().FetchTickers(gomock.Any()).Return(upstreamTickers(3), nil)
				repo.EXPECT().ResetAndStoreAll(gomock.Any(), gomock.Len(3)).Return(3, nil)
				publisher.EXPECT().PublishSynced(gomock.Any(), gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, res *v1.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 3, res.Stored)
				assert.Equal(t, []string{"coin0inr", "coin1inr", "coin2inr"}, res.Symbols)
			},
		},
		{
			name: "empty upstream recreates an empty store",
			mockFn: func(t *testing.T, fetcher *tickerMock.MockFetcher, repo *tickerRepoMock.MockTickerRepository, locker *tickerMock.MockLocker, publisher *tickerMock.MockPublisher, log *mockLogger.MockInterface) {
				ignoreInfo(log)
				locker.EXPECT().Acquire(gomock.Any()).Return(tickerDomain.ReleaseFunc(func(ctx context.Context) error { return nil }), nil)
				fetcher.EXPECT().FetchTickers(gomock.Any()).Return([]*wazirx.Ticker{}, nil)
				repo.EXPECT().ResetAndStoreAll(gomock.Any(), gomock.Len(0)).Return(0, nil)
				publisher.EXPECT().PublishSynced(gomock.Any(), gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, res *v1.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, res.Stored)
			},
		},
		{
			name: "upstream failure leaves the store untouched",
			mockFn: func(t *testing.T, fetcher *tickerMock.MockFetcher, repo *tickerRepoMock.MockTickerRepository, locker *tickerMock.MockLocker, publisher *tickerMock.MockPublisher, log *mockLogger.MockInterface) {
				ignoreInfo(log)
				locker.EXPECT().Acquire(gomock.Any()).Return(tickerDomain.ReleaseFunc(func(ctx context.Context) error { return nil }), nil)
				fetcher.EXPECT().FetchTickers(gomock.Any()).Return(nil, errors.NewErrorDetails(
					"failed to fetch tickers: request failed with status code 503",
					string(errors.UpstreamFetchError),
					"tickers",
				))
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any())
			},
			assertFn: func(t *testing.T, res *v1.SyncResult, err error) {
				assert.Nil(t, res)
				assert.EqualError(t, err, "failed to fetch tickers: request failed with status code 503")
				assert.Equal(t, string(errors.PipelineError), errors.CodeOf(err))
			},
		},
		{
			name: "store failure",
			mockFn: func(t *testing.T, fetcher *tickerMock.MockFetcher, repo *tickerRepoMock.MockTickerRepository, locker *tickerMock.MockLocker, publisher *tickerMock.MockPublisher, log *mockLogger.MockInterface) {
				ignoreInfo(log)
				locker.EXPECT().Acquire(gomock.Any()).Return(tickerDomain.ReleaseFunc(func(ctx context.Context) error { return nil }), nil)
				fetcher.EXPECT().FetchTickers(gomock.Any()).Return(upstreamTickers(2), nil)
				repo.EXPECT().ResetAndStoreAll(gomock.Any(), gomock.Any()).Return(0, stderrors.New("failed to insert ticker 2 (COIN1/INR): boom"))
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any())
			},
			assertFn: func(t *testing.T, res *v1.SyncResult, err error) {
				assert.Nil(t, res)
				assert.EqualError(t, err, "failed to insert ticker 2 (COIN1/INR): boom")
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.PipelineError)))
			},
		},
		{
			name: "sync already in progress elsewhere",
			mockFn: func(t *testing.T, fetcher *tickerMock.MockFetcher, repo *tickerRepoMock.MockTickerRepository, locker *tickerMock.MockLocker, publisher *tickerMock.MockPublisher, log *mockLogger.MockInterface) {
				locker.EXPECT().Acquire(gomock.Any()).Return(nil, errors.NewErrorDetails(
					"sync already in progress",
					string(errors.SyncInProgressError),
					"hodlinfo:sync:lock",
				))
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any())
			},
			assertFn: func(t *testing.T, res *v1.SyncResult, err error) {
				assert.Nil(t, res)
				assert.EqualError(t, err, "sync already in progress")
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.PipelineError)))
			},
		},
		{
			name: "publish failure does not fail the sync",
			mockFn: func(t *testing.T, fetcher *tickerMock.MockFetcher, repo *tickerRepoMock.MockTickerRepository, locker *tickerMock.MockLocker, publisher *tickerMock.MockPublisher, log *mockLogger.MockInterface) {
				ignoreInfo(log)
				locker.EXPECT().Acquire(gomock.Any()).Return(tickerDomain.ReleaseFunc(func(ctx context.Context) error { return nil }), nil)
				fetcher.EXPECT().FetchTickers(gomock.Any()).Return(upstreamTickers(1), nil)
				repo.EXPECT().ResetAndStoreAll(gomock.Any(), gomock.Any()).Return(1, nil)
				publisher.EXPECT().PublishSynced(gomock.Any(), gomock.Any()).Return(stderrors.New("kafka: leader not available"))
				log.EXPECT().WarnContext(gomock.Any(), "Failed to publish sync event", gomock.Any())
			},
			assertFn: func(t *testing.T, res *v1.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, res.Stored)
			},
		},
		{
			name: "release failure is logged only",
			mockFn: func(t *testing.T, fetcher *tickerMock.MockFetcher, repo *tickerRepoMock.MockTickerRepository, locker *tickerMock.MockLocker, publisher *tickerMock.MockPublisher, log *mockLogger.MockInterface) {
				ignoreInfo(log)
				locker.EXPECT().Acquire(gomock.Any()).Return(tickerDomain.ReleaseFunc(func(ctx context.Context) error {
					return stderrors.New("redis: connection closed")
				}), nil)
				fetcher.EXPECT().FetchTickers(gomock.Any()).Return(upstreamTickers(1), nil)
				repo.EXPECT().ResetAndStoreAll(gomock.Any(), gomock.Any()).Return(1, nil)
				publisher.EXPECT().PublishSynced(gomock.Any(), gomock.Any()).Return(nil)
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any())
			},
			assertFn: func(t *testing.T, res *v1.SyncResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, res.Stored)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			fetcher := tickerMock.NewMockFetcher(ctrl)
			repo := tickerRepoMock.NewMockTickerRepository(ctrl)
			locker := tickerMock.NewMockLocker(ctrl)
			publisher := tickerMock.NewMockPublisher(ctrl)
			log := mockLogger.NewMockInterface(ctrl)

			tc.mockFn(t, fetcher, repo, locker, publisher, log)

			uc := NewUsecase(fetcher, repo, log,
				WithLocker(locker),
				WithPublisher(publisher),
				WithMetrics(metrics.New(metrics.DefaultConfig())),
				WithClock(func() time.Time { return fixedNow }),
			)

			res, err := uc.Sync(context.Background())
			tc.assertFn(t, res, err)
		})
	}
}

func TestTicker_SyncWithoutOptionalDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := tickerMock.NewMockFetcher(ctrl)
	repo := tickerRepoMock.NewMockTickerRepository(ctrl)
	log := mockLogger.NewMockInterface(ctrl)
	ignoreInfo(log)

	fetcher.EXPECT().FetchTickers(gomock.Any()).Return(upstreamTickers(4), nil)
	repo.EXPECT().ResetAndStoreAll(gomock.Any(), gomock.Len(4)).Return(4, nil)

	res, err := NewUsecase(fetcher, repo, log).Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Stored)
}

func TestTicker_SyncSharesConcurrentRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := tickerMock.NewMockFetcher(ctrl)
	repo := tickerRepoMock.NewMockTickerRepository(ctrl)
	log := mockLogger.NewMockInterface(ctrl)
	ignoreInfo(log)

	started := make(chan struct{})
	unblock := make(chan struct{})

	fetcher.EXPECT().FetchTickers(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]*wazirx.Ticker, error) {
		close(started)
		<-unblock
		return upstreamTickers(2), nil
	}).Times(1)
	repo.EXPECT().ResetAndStoreAll(gomock.Any(), gomock.Any()).Return(2, nil).Times(1)

	uc := NewUsecase(fetcher, repo, log)

	const callers = 3
	results := make([]*v1.SyncResult, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = uc.Sync(context.Background())
	}()

	<-started
	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = uc.Sync(context.Background())
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(unblock)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 2, results[i].Stored)
	}
}

func TestTicker_SyncOutlivesCanceledCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := tickerMock.NewMockFetcher(ctrl)
	repo := tickerRepoMock.NewMockTickerRepository(ctrl)
	log := mockLogger.NewMockInterface(ctrl)
	ignoreInfo(log)

	started := make(chan struct{})
	unblock := make(chan struct{})
	stored := make(chan struct{})

	fetcher.EXPECT().FetchTickers(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]*wazirx.Ticker, error) {
		close(started)
		<-unblock
		assert.NoError(t, ctx.Err())
		return upstreamTickers(1), nil
	})
	repo.EXPECT().ResetAndStoreAll(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, records []*tickerInfra.Ticker) (int, error) {
		defer close(stored)
		return len(records), nil
	})

	uc := NewUsecase(fetcher, repo, log)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := uc.Sync(ctx)
		errCh <- err
	}()

	<-started
	cancel()

	err := <-errCh
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.PipelineError)))

	close(unblock)
	select {
	case <-stored:
	case <-time.After(time.Second):
		t.Fatal("sync did not complete after the caller went away")
	}
}

func TestTicker_List(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(repo *tickerRepoMock.MockTickerRepository, log *mockLogger.MockInterface)
		assertFn func(t *testing.T, res []*v1.ListedTicker, err error)
	}{
		{
			name: "numbers rows from one",
			mockFn: func(repo *tickerRepoMock.MockTickerRepository, log *mockLogger.MockInterface) {
				ignoreInfo(log)
				repo.EXPECT().ListAll(gomock.Any()).Return([]*tickerInfra.Ticker{
					{ID: 4, Name: "BTC/INR"},
					{ID: 5, Name: "ETH/INR"},
					{ID: 6, Name: "XRP/INR"},
				}, nil)
			},
			assertFn: func(t *testing.T, res []*v1.ListedTicker, err error) {
				require.NoError(t, err)
				require.Len(t, res, 3)
				for i, r := range res {
					assert.Equal(t, i+1, r.SrNo)
				}
				assert.Equal(t, int64(4), res[0].ID)
				assert.Equal(t, "XRP/INR", res[2].Name)
			},
		},
		{
			name: "empty store",
			mockFn: func(repo *tickerRepoMock.MockTickerRepository, log *mockLogger.MockInterface) {
				ignoreInfo(log)
				repo.EXPECT().ListAll(gomock.Any()).Return([]*tickerInfra.Ticker{}, nil)
			},
			assertFn: func(t *testing.T, res []*v1.ListedTicker, err error) {
				require.NoError(t, err)
				assert.NotNil(t, res)
				assert.Empty(t, res)
			},
		},
		{
			name: "store failure",
			mockFn: func(repo *tickerRepoMock.MockTickerRepository, log *mockLogger.MockInterface) {
				ignoreInfo(log)
				repo.EXPECT().ListAll(gomock.Any()).Return(nil, errors.NewErrorDetails(
					"failed to list tickers: connection refused",
					string(errors.StoreError),
					"tickers",
				))
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any())
			},
			assertFn: func(t *testing.T, res []*v1.ListedTicker, err error) {
				assert.Nil(t, res)
				assert.EqualError(t, err, "failed to list tickers: connection refused")
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.StoreError)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			fetcher := tickerMock.NewMockFetcher(ctrl)
			repo := tickerRepoMock.NewMockTickerRepository(ctrl)
			log := mockLogger.NewMockInterface(ctrl)

			tc.mockFn(repo, log)

			res, err := NewUsecase(fetcher, repo, log).List(context.Background())
			tc.assertFn(t, res, err)
		})
	}
}
