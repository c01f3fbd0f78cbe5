// Package synclock serializes ticker syncs across processes with a Redis lock.
package synclock

import (
	"context"
	"time"

	"github.com/google/uuid"
	tickerDomain "github.com/muhammadchandra19/hodlinfo/internal/domain/ticker"
	"github.com/muhammadchandra19/hodlinfo/pkg/errors"
	"github.com/muhammadchandra19/hodlinfo/pkg/logger"
	"github.com/muhammadchandra19/hodlinfo/pkg/redis"
)

// Locker takes a SET NX PX lock holding a random token and releases it only
// while the token still matches.
type Locker struct {
	client redis.Client
	key    string
	ttl    time.Duration
	logger logger.Interface
	token  func() string
}

// New creates a Locker on key. The key is used as is, callers apply any prefix.
func New(client redis.Client, key string, ttl time.Duration, logger logger.Interface) *Locker {
	return &Locker{
		client: client,
		key:    key,
		ttl:    ttl,
		logger: logger,
		token:  uuid.NewString,
	}
}

// Acquire takes the lock or fails with SyncInProgressError when another holder has it.
func (l *Locker) Acquire(ctx context.Context) (tickerDomain.ReleaseFunc, error) {
	token := l.token()

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	if !ok {
		holder, err := l.client.Get(ctx, l.key)
		if err != nil {
			holder = ""
		}
		return nil, errors.NewErrorDetailsWithObject(
			"sync already in progress",
			string(errors.SyncInProgressError),
			l.key,
			holder,
		)
	}

	l.logger.DebugContext(ctx, "Acquired sync lock", logger.Field{
		Key:   "key",
		Value: l.key,
	})

	return func(ctx context.Context) error {
		deleted, err := l.client.CompareAndDelete(ctx, l.key, token)
		if err != nil {
			return errors.TracerFromError(err)
		}

		if !deleted {
			l.logger.WarnContext(ctx, "Sync lock expired before release", logger.Field{
				Key:   "key",
				Value: l.key,
			})
		}

		return nil
	}, nil
}
