package wazirx

import "github.com/shopspring/decimal"

// Ticker is one value of the upstream tickers object. Prices arrive either as
// JSON numbers or as quoted decimal strings; decimal.Decimal accepts both.
type Ticker struct {
	// Symbol is the key the ticker was listed under, e.g. "btcinr".
	Symbol string `json:"-"`

	BaseUnit  string          `json:"base_unit"`
	QuoteUnit string          `json:"quote_unit"`
	Low       decimal.Decimal `json:"low"`
	High      decimal.Decimal `json:"high"`
	Last      decimal.Decimal `json:"last"`
	Open      decimal.Decimal `json:"open"`
	Volume    decimal.Decimal `json:"volume"`
	Sell      decimal.Decimal `json:"sell"`
	Buy       decimal.Decimal `json:"buy"`
	At        decimal.Decimal `json:"at"`
	Name      string          `json:"name"`
}
