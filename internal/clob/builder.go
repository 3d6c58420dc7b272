package clob

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
	"github.com/polymarket/go-order-utils/pkg/model"
)

// Side is the order direction. BUY spends USDC for outcome tokens, SELL the
// inverse. The zero value is Buy, matching the exchange's side encoding.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "SELL"
	}
	return "BUY"
}

func (s Side) orderSide() model.Side {
	if s == Sell {
		return model.SELL
	}
	return model.BUY
}

// OrderKind is the time-in-force policy submitted with the order.
type OrderKind string

const (
	// GTC rests on the book until cancelled.
	GTC OrderKind = "GTC"
	// GTD rests until the order's expiration timestamp.
	GTD OrderKind = "GTD"
	// FOK fills completely and immediately or not at all.
	FOK OrderKind = "FOK"
)

const (
	// Prices on a binary market live strictly inside (0, 1); the exchange
	// rejects anything outside one tick from the bounds.
	minPrice = 0.01
	maxPrice = 0.99

	zeroAddress = "0x0000000000000000000000000000000000000000"

	// USDC-style 6-decimal fixed point.
	amountScale = 1_000_000
)

// Intent is a user-level order: token, direction, human-unit price and size.
// Size is denominated in outcome tokens.
type Intent struct {
	TokenID           string
	Side              Side
	Price             float64
	Size              float64
	Kind              OrderKind
	ExpirationSeconds int64 // required for GTD, ignored otherwise
	FeeRateBps        int64
	TickSize          float64 // 0 means the default 0.01
}

// Builder converts Intents into the exact on-wire order structure: integer
// amounts scaled by 10^6, with tick-size-aware rounding applied to the human
// units before conversion, never after.
type Builder struct {
	signerAddress string
	funderAddress string
	sigType       model.SignatureType
	now           func() time.Time
}

// NewBuilder creates a Builder. funderAddress is the proxy/Safe wallet
// holding the funds; when empty the signer address is the maker.
func NewBuilder(signerAddress, funderAddress string, sigType model.SignatureType) *Builder {
	if funderAddress == "" {
		funderAddress = signerAddress
	}

	return &Builder{
		signerAddress: signerAddress,
		funderAddress: funderAddress,
		sigType:       sigType,
		now:           time.Now,
	}
}

// Build validates the intent and produces the pre-signature order data.
// Validation happens here, before any signing or network call.
func (b *Builder) Build(intent Intent) (*model.OrderData, error) {
	if err := validateIntent(intent); err != nil {
		return nil, err
	}

	sizePrecision, amountPrecision := roundingConfig(intent.TickSize)

	// Round human units first; the integer conversion must not truncate.
	tokens := roundAmount(intent.Size, sizePrecision)
	usd := roundAmount(tokens*intent.Price, amountPrecision)

	var makerAmount, takerAmount string
	if intent.Side == Buy {
		makerAmount = toRawAmount(usd)
		takerAmount = toRawAmount(tokens)
	} else {
		makerAmount = toRawAmount(tokens)
		takerAmount = toRawAmount(usd)
	}

	expiration := int64(0)
	if intent.Kind == GTD {
		expiration = b.now().Unix() + intent.ExpirationSeconds
	}

	return &model.OrderData{
		Maker:         b.funderAddress,
		Taker:         zeroAddress,
		TokenId:       intent.TokenID,
		MakerAmount:   makerAmount,
		TakerAmount:   takerAmount,
		Side:          intent.Side.orderSide(),
		FeeRateBps:    strconv.FormatInt(intent.FeeRateBps, 10),
		Nonce:         strconv.FormatInt(nextNonce(), 10),
		Signer:        b.signerAddress,
		Expiration:    strconv.FormatInt(expiration, 10),
		SignatureType: b.sigType,
	}, nil
}

func validateIntent(intent Intent) error {
	if intent.TokenID == "" {
		return &types.ValidationError{Field: "tokenId", Message: "cannot be empty"}
	}

	if intent.Price < minPrice || intent.Price > maxPrice {
		return &types.ValidationError{
			Field:   "price",
			Message: fmt.Sprintf("must be in [%.2f, %.2f], got %f", minPrice, maxPrice, intent.Price),
		}
	}

	if intent.Size <= 0 {
		return &types.ValidationError{
			Field:   "size",
			Message: fmt.Sprintf("must be positive, got %f", intent.Size),
		}
	}

	switch intent.Kind {
	case GTC, FOK:
	case GTD:
		if intent.ExpirationSeconds <= 0 {
			return &types.ValidationError{Field: "expirationSeconds", Message: "required for GTD orders"}
		}
	default:
		return &types.ValidationError{
			Field:   "orderKind",
			Message: fmt.Sprintf("must be GTC, GTD or FOK, got %q", intent.Kind),
		}
	}

	if intent.FeeRateBps < 0 {
		return &types.ValidationError{Field: "feeRateBps", Message: "cannot be negative"}
	}

	return nil
}

// roundingConfig returns the decimal precision for token sizes and USDC
// amounts given a market's tick size. Matches the official client's
// ROUNDING_CONFIG table.
func roundingConfig(tickSize float64) (sizePrecision, amountPrecision int) {
	switch tickSize {
	case 0.1:
		return 2, 3
	case 0.001:
		return 2, 5
	case 0.0001:
		return 2, 6
	default: // 0.01 and unset
		return 2, 4
	}
}

// roundAmount rounds a human-unit value to the given number of decimals.
func roundAmount(value float64, decimals int) float64 {
	multiplier := math.Pow10(decimals)
	return math.Round(value*multiplier) / multiplier
}

// toRawAmount converts a rounded human-unit value to the 10^6 fixed-point
// integer string the exchange signs over.
func toRawAmount(value float64) string {
	return strconv.FormatInt(int64(math.Round(value*amountScale)), 10)
}

// The nonce must not collide across concurrently built orders from the same
// maker. A timestamp alone collides under rapid successive calls, so nonces
// come from an atomic counter seeded once with the current unix nanos:
// unique within the process and strictly above anything issued by an
// earlier run.
//
//nolint:gochecknoglobals // process-wide nonce source
var (
	nonceOnce    sync.Once
	nonceCounter atomic.Int64
)

func nextNonce() int64 {
	nonceOnce.Do(func() {
		nonceCounter.Store(time.Now().UnixNano())
	})

	return nonceCounter.Add(1)
}
