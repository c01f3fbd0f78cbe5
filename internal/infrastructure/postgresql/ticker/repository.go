package ticker

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/hodlinfo/pkg/errors"
	"github.com/muhammadchandra19/hodlinfo/pkg/logger"
	"github.com/muhammadchandra19/hodlinfo/pkg/postgresql"
)

// Repository is the repository for the ticker.
type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
	now    func() time.Time
}

// NewRepository creates a new repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) *repository {
	return &repository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// EnsureSchema creates the tickers table if missing.
func (r *repository) EnsureSchema(ctx context.Context) error {
	cmd, err := r.db.Exec(ctx, createTableIfNotExistsQuery)
	if err != nil {
		return storeError("failed to create tickers table", err)
	}

	r.logger.Info("Ensured tickers table", logger.Field{
		Key:   "commandTag",
		Value: cmd.String(),
	})

	return nil
}

// ResetAndStoreAll replaces the table contents with tickers.
func (r *repository) ResetAndStoreAll(ctx context.Context, tickers []*Ticker) (int, error) {
	now := r.now().UTC()

	err := postgresql.WithTx(ctx, r.db, func(ctx context.Context) error {
		if _, err := r.db.Exec(ctx, dropTableQuery); err != nil {
			return storeError("failed to drop tickers table", err)
		}

		if _, err := r.db.Exec(ctx, createTableQuery); err != nil {
			return storeError("failed to create tickers table", err)
		}

		if len(tickers) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, t := range tickers {
			t.CreatedAt = now
			t.UpdatedAt = now
			batch.Queue(insertQuery,
				t.BaseUnit,
				t.QuoteUnit,
				t.Low,
				t.High,
				t.Last,
				t.Open,
				t.Volume,
				t.Sell,
				t.Buy,
				t.At,
				t.Name,
				t.CreatedAt,
				t.UpdatedAt,
			)
		}

		results := r.db.SendBatch(ctx, batch)
		for i, t := range tickers {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return storeError(fmt.Sprintf("failed to insert ticker %d (%s)", i+1, t.Name), err)
			}
		}

		if err := results.Close(); err != nil {
			return storeError("failed to insert tickers", err)
		}

		return nil
	})
	if err != nil {
		if !errors.ErrorCodeEquals(err, string(errors.StoreError)) {
			err = storeError("failed to reset tickers", err)
		}
		r.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "count",
			Value: len(tickers),
		})
		return 0, err
	}

	r.logger.Info("Reset tickers table", logger.Field{
		Key:   "insertCount",
		Value: len(tickers),
	})

	return len(tickers), nil
}

// ListAll lists every ticker ordered by id.
func (r *repository) ListAll(ctx context.Context) ([]*Ticker, error) {
	rows, err := r.db.Query(ctx, listQuery)
	if err != nil {
		return nil, storeError("failed to list tickers", err)
	}
	defer rows.Close()

	tickers := make([]*Ticker, 0)
	for rows.Next() {
		t := &Ticker{}
		if err := rows.Scan(
			&t.ID,
			&t.BaseUnit,
			&t.QuoteUnit,
			&t.Low,
			&t.High,
			&t.Last,
			&t.Open,
			&t.Volume,
			&t.Sell,
			&t.Buy,
			&t.At,
			&t.Name,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, storeError("failed to scan ticker", err)
		}
		tickers = append(tickers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("failed to iterate tickers", err)
	}

	return tickers, nil
}

func storeError(message string, err error) error {
	return errors.NewErrorDetails(
		message+": "+err.Error(),
		string(errors.StoreError),
		TableName,
	).Wrap(err)
}
