package types

import "strconv"

// PriceLevel is a single price point in the order book. The CLOB reports
// price and size as decimal strings.
type PriceLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// PriceFloat returns the level price as a float, or 0 if unparseable.
func (l *PriceLevel) PriceFloat() float64 {
	p, err := strconv.ParseFloat(l.Price, 64)
	if err != nil {
		return 0
	}
	return p
}

// OrderBook is the CLOB /book response for a single token.
type OrderBook struct {
	Market    string       `json:"market"`
	AssetID   string       `json:"asset_id"`
	Timestamp string       `json:"timestamp"`
	Hash      string       `json:"hash"`
	Bids      []PriceLevel `json:"bids"`
	Asks      []PriceLevel `json:"asks"`
}

// BestBid returns the highest bid price, or 0 if the book is empty.
// The CLOB returns bids sorted best-first.
func (b *OrderBook) BestBid() float64 {
	if len(b.Bids) == 0 {
		return 0
	}
	return b.Bids[0].PriceFloat()
}

// BestAsk returns the lowest ask price, or 0 if the book is empty.
func (b *OrderBook) BestAsk() float64 {
	if len(b.Asks) == 0 {
		return 0
	}
	return b.Asks[0].PriceFloat()
}
