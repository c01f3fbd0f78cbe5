package ticker

import "context"

// TickerRepository is the interface for the ticker store.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type TickerRepository interface {
	// EnsureSchema creates the tickers table when it does not exist.
	EnsureSchema(ctx context.Context) error
	// ResetAndStoreAll drops and recreates the tickers table, then inserts
	// tickers in order, all in one transaction. It returns the rows inserted.
	ResetAndStoreAll(ctx context.Context, tickers []*Ticker) (int, error)
	// ListAll returns every stored ticker in insertion order.
	ListAll(ctx context.Context) ([]*Ticker, error)
}
