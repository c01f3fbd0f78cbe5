package bootstrap

import (
	tickerInfra "github.com/muhammadchandra19/hodlinfo/internal/infrastructure/postgresql/ticker"
)

// Repository is the repository for the ticker service.
type Repository struct {
	TickerRepository tickerInfra.TickerRepository
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() {
	b.Repository.TickerRepository = tickerInfra.NewRepository(b.PostgreSQL, b.Logger)
}
