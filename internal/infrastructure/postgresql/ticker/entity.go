package ticker

import "time"

// Ticker is one stored ticker snapshot. ID, CreatedAt and UpdatedAt are
// assigned by the store.
type Ticker struct {
	ID        int64     `json:"id"`
	BaseUnit  string    `json:"base_unit"`
	QuoteUnit string    `json:"quote_unit"`
	Low       float64   `json:"low"`
	High      float64   `json:"high"`
	Last      float64   `json:"last"`
	Open      float64   `json:"open"`
	Volume    float64   `json:"volume"`
	Sell      float64   `json:"sell"`
	Buy       float64   `json:"buy"`
	At        int64     `json:"at"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
