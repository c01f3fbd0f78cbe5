package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/muhammadchandra19/hodlinfo/pkg/postgresql"
	mockPg "github.com/muhammadchandra19/hodlinfo/pkg/postgresql/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestWithTx(t *testing.T) {
	errFn := errors.New("insert failed")

	testCases := []struct {
		name     string
		mockFn   func(db *mockPg.MockPostgreSQLClient, tx *mockPg.MockTx)
		fn       func(ctx context.Context) error
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "commit on success",
			mockFn: func(db *mockPg.MockPostgreSQLClient, tx *mockPg.MockTx) {
				db.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().Commit(gomock.Any()).Return(nil)
			},
			fn: func(ctx context.Context) error {
				_, ok := postgresql.GetTx(ctx)
				if !ok {
					return errors.New("transaction missing from context")
				}
				return nil
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "rollback on error",
			mockFn: func(db *mockPg.MockPostgreSQLClient, tx *mockPg.MockTx) {
				db.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().Rollback(gomock.Any()).Return(nil)
			},
			fn: func(ctx context.Context) error {
				return errFn
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errFn)
			},
		},
		{
			name: "rollback failure keeps cause",
			mockFn: func(db *mockPg.MockPostgreSQLClient, tx *mockPg.MockTx) {
				db.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().Rollback(gomock.Any()).Return(errors.New("conn closed"))
			},
			fn: func(ctx context.Context) error {
				return errFn
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errFn)
				assert.ErrorContains(t, err, "rollback failed: conn closed")
			},
		},
		{
			name: "begin failure",
			mockFn: func(db *mockPg.MockPostgreSQLClient, tx *mockPg.MockTx) {
				db.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("pool exhausted"))
			},
			fn: func(ctx context.Context) error {
				t.Fatal("fn must not run without a transaction")
				return nil
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "failed to begin transaction: pool exhausted")
			},
		},
		{
			name: "commit failure",
			mockFn: func(db *mockPg.MockPostgreSQLClient, tx *mockPg.MockTx) {
				db.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().Commit(gomock.Any()).Return(errors.New("serialization failure"))
			},
			fn: func(ctx context.Context) error {
				return nil
			},
			assertFn: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "failed to commit transaction: serialization failure")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			db := mockPg.NewMockPostgreSQLClient(ctrl)
			tx := mockPg.NewMockTx(ctrl)

			tc.mockFn(db, tx)

			err := postgresql.WithTx(context.Background(), db, tc.fn)
			tc.assertFn(t, err)
		})
	}
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := mockPg.NewMockPostgreSQLClient(ctrl)
	tx := mockPg.NewMockTx(ctrl)

	db.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	assert.PanicsWithValue(t, "boom", func() {
		_ = postgresql.WithTx(context.Background(), db, func(ctx context.Context) error {
			panic("boom")
		})
	})
}

func TestGetTx_WithoutTransaction(t *testing.T) {
	_, ok := postgresql.GetTx(context.Background())
	assert.False(t, ok)
}
