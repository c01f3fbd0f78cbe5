package v1

import (
	"time"

	"github.com/muhammadchandra19/hodlinfo/internal/infrastructure/postgresql/ticker"
)

// SyncedEventName is the event name carried by every SyncEvent.
const SyncedEventName = "tickers.synced"

// SyncResult describes a completed sync.
type SyncResult struct {
	Stored   int
	SyncedAt time.Time
	Symbols  []string
}

// ListedTicker is a stored ticker with its 1-based position in the listing.
type ListedTicker struct {
	SrNo int `json:"sr_no"`
	*ticker.Ticker
}

// SyncEvent is published after a successful sync.
type SyncEvent struct {
	Event    string    `json:"event"`
	Stored   int       `json:"stored"`
	Symbols  []string  `json:"symbols"`
	SyncedAt time.Time `json:"synced_at"`
}

// NewSyncEvent builds the event for result.
func NewSyncEvent(result *SyncResult) *SyncEvent {
	symbols := result.Symbols
	if symbols == nil {
		symbols = []string{}
	}

	return &SyncEvent{
		Event:    SyncedEventName,
		Stored:   result.Stored,
		Symbols:  symbols,
		SyncedAt: result.SyncedAt.UTC(),
	}
}
