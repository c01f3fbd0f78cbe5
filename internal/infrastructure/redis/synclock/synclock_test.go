package synclock

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/muhammadchandra19/hodlinfo/pkg/errors"
	mockLogger "github.com/muhammadchandra19/hodlinfo/pkg/logger/mock"
	redisMock "github.com/muhammadchandra19/hodlinfo/pkg/redis/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testKey   = "hodlinfo:sync:lock"
	testToken = "6f1c2d1e-5b1a-4d8e-9c55-0a7c1b2e3f40"
)

func TestLocker_Acquire(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(client *redisMock.MockClient, log *mockLogger.MockInterface)
		assertFn func(t *testing.T, l *Locker, err error, release func(ctx context.Context) error)
	}{
		{
			name: "acquire and release",
			mockFn: func(client *redisMock.MockClient, log *mockLogger.MockInterface) {
				gomock.InOrder(
					client.EXPECT().SetNX(gomock.Any(), testKey, testToken, 30*time.Second).Return(true, nil),
					log.EXPECT().DebugContext(gomock.Any(), "Acquired sync lock", gomock.Any()),
					client.EXPECT().CompareAndDelete(gomock.Any(), testKey, testToken).Return(true, nil),
				)
			},
			assertFn: func(t *testing.T, l *Locker, err error, release func(ctx context.Context) error) {
				require.NoError(t, err)
				require.NotNil(t, release)
				assert.NoError(t, release(context.Background()))
			},
		},
		{
			name: "held by another instance",
			mockFn: func(client *redisMock.MockClient, log *mockLogger.MockInterface) {
				client.EXPECT().SetNX(gomock.Any(), testKey, testToken, 30*time.Second).Return(false, nil)
				client.EXPECT().Get(gomock.Any(), testKey).Return("other-token", nil)
			},
			assertFn: func(t *testing.T, l *Locker, err error, release func(ctx context.Context) error) {
				assert.Nil(t, release)
				assert.EqualError(t, err, "sync already in progress")
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.SyncInProgressError)))

				var details *errors.ErrorDetails
				require.True(t, stderrors.As(err, &details))
				assert.Equal(t, "other-token", details.Object)
				assert.Equal(t, testKey, details.Field)
			},
		},
		{
			name: "redis unavailable",
			mockFn: func(client *redisMock.MockClient, log *mockLogger.MockInterface) {
				client.EXPECT().SetNX(gomock.Any(), testKey, testToken, 30*time.Second).Return(false, errors.NewErrorDetails(
					"Failed to set value with NX in Redis",
					string(errors.RedisSetNXError),
					"setnx",
				))
			},
			assertFn: func(t *testing.T, l *Locker, err error, release func(ctx context.Context) error) {
				assert.Nil(t, release)
				assert.EqualError(t, err, "Failed to set value with NX in Redis")
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.RedisSetNXError)))
			},
		},
		{
			name: "expired lock is not deleted",
			mockFn: func(client *redisMock.MockClient, log *mockLogger.MockInterface) {
				client.EXPECT().SetNX(gomock.Any(), testKey, testToken, 30*time.Second).Return(true, nil)
				log.EXPECT().DebugContext(gomock.Any(), gomock.Any(), gomock.Any())
				client.EXPECT().CompareAndDelete(gomock.Any(), testKey, testToken).Return(false, nil)
				log.EXPECT().WarnContext(gomock.Any(), "Sync lock expired before release", gomock.Any())
			},
			assertFn: func(t *testing.T, l *Locker, err error, release func(ctx context.Context) error) {
				require.NoError(t, err)
				assert.NoError(t, release(context.Background()))
			},
		},
		{
			name: "release failure",
			mockFn: func(client *redisMock.MockClient, log *mockLogger.MockInterface) {
				client.EXPECT().SetNX(gomock.Any(), testKey, testToken, 30*time.Second).Return(true, nil)
				log.EXPECT().DebugContext(gomock.Any(), gomock.Any(), gomock.Any())
				client.EXPECT().CompareAndDelete(gomock.Any(), testKey, testToken).Return(false, stderrors.New("i/o timeout"))
			},
			assertFn: func(t *testing.T, l *Locker, err error, release func(ctx context.Context) error) {
				require.NoError(t, err)
				assert.EqualError(t, release(context.Background()), "i/o timeout")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redisMock.NewMockClient(ctrl)
			log := mockLogger.NewMockInterface(ctrl)

			tc.mockFn(client, log)

			l := New(client, testKey, 30*time.Second, log)
			l.token = func() string { return testToken }

			release, err := l.Acquire(context.Background())
			tc.assertFn(t, l, err, release)
		})
	}
}
