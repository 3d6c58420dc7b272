package types

import (
	"strconv"
	"time"
)

// Trade represents a trade execution from the CLOB /trades endpoint.
// Numeric fields arrive as strings on the wire.
type Trade struct {
	ID        string `json:"id"`
	Market    string `json:"market"`
	AssetID   string `json:"asset_id"`
	Side      string `json:"side"`
	Outcome   string `json:"outcome"`
	Price     string `json:"price"`
	Size      string `json:"size"`
	Status    string `json:"status"`
	MatchTime string `json:"match_time"`
}

// MatchedAt returns the trade's match time. The CLOB reports unix seconds as
// a string; unparseable values yield the zero time so callers can sort
// deterministically without failing the whole batch.
func (t *Trade) MatchedAt() time.Time {
	secs, err := strconv.ParseInt(t.MatchTime, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0).UTC()
}

// PriceFloat returns the trade price as a float, or 0 if unparseable.
func (t *Trade) PriceFloat() float64 {
	p, err := strconv.ParseFloat(t.Price, 64)
	if err != nil {
		return 0
	}
	return p
}

// SizeFloat returns the trade size as a float, or 0 if unparseable.
func (t *Trade) SizeFloat() float64 {
	s, err := strconv.ParseFloat(t.Size, 64)
	if err != nil {
		return 0
	}
	return s
}
