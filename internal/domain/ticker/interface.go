package ticker

import (
	"context"

	v1 "github.com/muhammadchandra19/hodlinfo/internal/domain/ticker/v1"
	"github.com/muhammadchandra19/hodlinfo/internal/infrastructure/wazirx"
)

// Usecase is the interface for the ticker usecase.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=mock
type Usecase interface {
	// Sync fetches the upstream tickers and replaces the stored snapshot with the first SyncLimit of them.
	Sync(ctx context.Context) (*v1.SyncResult, error)
	// List returns every stored ticker annotated with its 1-based position.
	List(ctx context.Context) ([]*v1.ListedTicker, error)
}

// Fetcher reads the full upstream ticker document in document order.
type Fetcher interface {
	FetchTickers(ctx context.Context) ([]*wazirx.Ticker, error)
}

// ReleaseFunc releases a lock taken by Locker.
type ReleaseFunc func(ctx context.Context) error

// Locker serializes syncs across processes.
type Locker interface {
	Acquire(ctx context.Context) (ReleaseFunc, error)
}

// Publisher announces completed syncs.
type Publisher interface {
	PublishSynced(ctx context.Context, event *v1.SyncEvent) error
	Close() error
}
