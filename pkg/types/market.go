package types

import (
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// Market represents a Polymarket market from the Gamma API.
//
// The Gamma API is loosely typed: volume and outcome prices arrive as strings
// (sometimes numbers), and outcomes/clobTokenIds are JSON-encoded arrays
// inside JSON strings. All of that is normalized on ingress here so the rest
// of the codebase works with real numbers and slices.
type Market struct {
	ID          string    `json:"id"`
	Question    string    `json:"question"`
	Slug        string    `json:"slug"`
	Active      bool      `json:"active"`
	Closed      bool      `json:"closed"`
	Resolved    bool      `json:"resolved"`
	Archived    bool      `json:"archived"`
	Outcome     string    `json:"outcome,omitempty"`
	Volume      float64   `json:"-"`
	Price       float64   `json:"-"`
	Tokens      []Token   `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	EndDate     time.Time `json:"endDate"`
	Description string    `json:"description,omitempty"`

	// Raw Gamma fields, kept for re-serialization.
	Outcomes      string `json:"outcomes,omitempty"`      // JSON string: "[\"Yes\", \"No\"]"
	OutcomePrices string `json:"outcomePrices,omitempty"` // JSON string: "[\"0.65\", \"0.35\"]"
	ClobTokens    string `json:"clobTokenIds,omitempty"`  // JSON string: "[\"token1\", \"token2\"]"
}

// UnmarshalJSON normalizes the loosely typed Gamma payload: numeric strings
// become floats and the outcomes/clobTokenIds string arrays are zipped into
// Tokens.
func (m *Market) UnmarshalJSON(data []byte) error {
	type Alias Market
	aux := &struct {
		Volume json.RawMessage `json:"volume"`
		Price  json.RawMessage `json:"price"`
		*Alias
	}{
		Alias: (*Alias)(m),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	m.Volume = lenientFloat(aux.Volume)
	m.Price = lenientFloat(aux.Price)

	if m.Outcomes != "" && m.ClobTokens != "" {
		var outcomes, tokenIDs []string
		if err := json.Unmarshal([]byte(m.Outcomes), &outcomes); err == nil {
			if err := json.Unmarshal([]byte(m.ClobTokens), &tokenIDs); err == nil {
				m.Tokens = make([]Token, 0, len(outcomes))
				for i, outcome := range outcomes {
					if i < len(tokenIDs) {
						m.Tokens = append(m.Tokens, Token{
							TokenID: tokenIDs[i],
							Outcome: outcome,
						})
					}
				}
			}
		}
	}

	if len(m.Tokens) > 0 && m.OutcomePrices != "" {
		var prices []string
		if err := json.Unmarshal([]byte(m.OutcomePrices), &prices); err == nil {
			for i := range m.Tokens {
				if i < len(prices) {
					if p, err := strconv.ParseFloat(prices[i], 64); err == nil {
						m.Tokens[i].Price = p
					}
				}
			}
		}
	}

	return nil
}

// lenientFloat parses a JSON value that may be a number, a quoted number or
// absent. Anything unparseable yields 0.
func lenientFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return 0
}

// CurrentPrice returns the market's monitored price: the explicit price field
// when present, otherwise the first outcome price.
func (m *Market) CurrentPrice() float64 {
	if m.Price > 0 {
		return m.Price
	}
	if len(m.Tokens) > 0 {
		return m.Tokens[0].Price
	}
	return 0
}

// IsResolved reports whether the market has reached a terminal state.
// Gamma flags either resolved or closed depending on the market type.
func (m *Market) IsResolved() bool {
	return m.Resolved || m.Closed
}

// Token represents a market outcome token (YES or NO).
type Token struct {
	TokenID string  `json:"token_id"`
	Outcome string  `json:"outcome"`
	Price   float64 `json:"price,omitempty"`
}

// GetTokenByOutcome returns the token for a specific outcome.
// Case-insensitive matching (accepts YES/Yes, NO/No).
func (m *Market) GetTokenByOutcome(outcome string) *Token {
	for i := range m.Tokens {
		tokenOutcome := m.Tokens[i].Outcome
		if tokenOutcome == outcome ||
			(outcome == "YES" && tokenOutcome == "Yes") ||
			(outcome == "NO" && tokenOutcome == "No") {
			return &m.Tokens[i]
		}
	}
	return nil
}

// Event represents a Gamma API event: a titled group of related markets.
type Event struct {
	ID      string   `json:"id"`
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Active  bool     `json:"active"`
	Closed  bool     `json:"closed"`
	Markets []Market `json:"markets"`
}

// Tag represents a Gamma API category tag.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
}
