package clob

import (
	"errors"
	"math/big"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
	"github.com/polymarket/go-order-utils/pkg/model"
)

const (
	testMaker = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"
	testToken = "71321045679252212594626385532706912750332728571942532289631379312455583992563"
)

func newTestBuilder() *Builder {
	b := NewBuilder(testMaker, "", model.EOA)
	b.now = func() time.Time { return time.Unix(1700000000, 0) }
	return b
}

func TestBuildAmountScaling(t *testing.T) {
	tests := []struct {
		name      string
		side      Side
		price     float64
		size      float64
		wantMaker string
		wantTaker string
	}{
		{
			name:  "buy-half",
			side:  Buy,
			price: 0.50,
			size:  10,
			// BUY: maker = USDC spent (size*price), taker = tokens received
			wantMaker: "5000000",
			wantTaker: "10000000",
		},
		{
			name:      "sell-half",
			side:      Sell,
			price:     0.50,
			size:      10,
			wantMaker: "10000000",
			wantTaker: "5000000",
		},
		{
			name:      "buy-odd-price",
			side:      Buy,
			price:     0.33,
			size:      7,
			wantMaker: "2310000",
			wantTaker: "7000000",
		},
		{
			name:  "buy-fractional-size-rounds-before-scaling",
			side:  Buy,
			price: 0.65,
			// size rounds to 2 decimals first: 3.33 tokens
			size:      3.333,
			wantMaker: "2164500", // round(3.33*0.65, 4) = 2.1645
			wantTaker: "3330000",
		},
		{
			name:      "buy-min-price",
			side:      Buy,
			price:     0.01,
			size:      100,
			wantMaker: "1000000",
			wantTaker: "100000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder()

			data, err := b.Build(Intent{
				TokenID: testToken,
				Side:    tt.side,
				Price:   tt.price,
				Size:    tt.size,
				Kind:    GTC,
			})
			if err != nil {
				t.Fatalf("Build: %v", err)
			}

			if data.MakerAmount != tt.wantMaker {
				t.Errorf("makerAmount = %s, want %s", data.MakerAmount, tt.wantMaker)
			}
			if data.TakerAmount != tt.wantTaker {
				t.Errorf("takerAmount = %s, want %s", data.TakerAmount, tt.wantTaker)
			}
		})
	}
}

func TestBuildAmountRoundTrip(t *testing.T) {
	// Recovering price and size from the integer amounts must land within
	// one unit of the 10^6 scale.
	prices := []float64{0.01, 0.13, 0.50, 0.87, 0.99}
	sizes := []float64{1, 5.5, 42.42, 1000}

	for _, price := range prices {
		for _, size := range sizes {
			b := newTestBuilder()

			data, err := b.Build(Intent{
				TokenID: testToken,
				Side:    Buy,
				Price:   price,
				Size:    size,
				Kind:    GTC,
			})
			if err != nil {
				t.Fatalf("Build(price=%f, size=%f): %v", price, size, err)
			}

			maker, _ := strconv.ParseInt(data.MakerAmount, 10, 64)
			taker, _ := strconv.ParseInt(data.TakerAmount, 10, 64)

			gotSize := float64(taker) / amountScale
			gotPrice := float64(maker) / float64(taker)

			if diff := gotSize - size; diff > 1.0/amountScale || diff < -1.0/amountScale {
				t.Errorf("size round-trip: got %f, want %f", gotSize, size)
			}
			// Price recovery tolerance follows the amount precision (4 decimals
			// at the default tick size) spread over the size.
			if diff := gotPrice - price; diff > 0.0001 || diff < -0.0001 {
				t.Errorf("price round-trip: got %f, want %f", gotPrice, price)
			}
		}
	}
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
	}{
		{
			name:   "price-too-low",
			intent: Intent{TokenID: testToken, Side: Buy, Price: 0.009, Size: 10, Kind: GTC},
		},
		{
			name:   "price-too-high",
			intent: Intent{TokenID: testToken, Side: Buy, Price: 0.991, Size: 10, Kind: GTC},
		},
		{
			name:   "zero-price",
			intent: Intent{TokenID: testToken, Side: Buy, Price: 0, Size: 10, Kind: GTC},
		},
		{
			name:   "zero-size",
			intent: Intent{TokenID: testToken, Side: Buy, Price: 0.5, Size: 0, Kind: GTC},
		},
		{
			name:   "negative-size",
			intent: Intent{TokenID: testToken, Side: Sell, Price: 0.5, Size: -1, Kind: GTC},
		},
		{
			name:   "empty-token",
			intent: Intent{TokenID: "", Side: Buy, Price: 0.5, Size: 10, Kind: GTC},
		},
		{
			name:   "bad-kind",
			intent: Intent{TokenID: testToken, Side: Buy, Price: 0.5, Size: 10, Kind: "IOC"},
		},
		{
			name:   "gtd-without-expiration",
			intent: Intent{TokenID: testToken, Side: Buy, Price: 0.5, Size: 10, Kind: GTD},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder()

			_, err := b.Build(tt.intent)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var vErr *types.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestBuildExpiration(t *testing.T) {
	b := newTestBuilder()

	gtc, err := b.Build(Intent{TokenID: testToken, Side: Buy, Price: 0.5, Size: 10, Kind: GTC})
	if err != nil {
		t.Fatalf("Build GTC: %v", err)
	}
	if gtc.Expiration != "0" {
		t.Errorf("GTC expiration = %s, want 0", gtc.Expiration)
	}

	gtd, err := b.Build(Intent{
		TokenID:           testToken,
		Side:              Buy,
		Price:             0.5,
		Size:              10,
		Kind:              GTD,
		ExpirationSeconds: 3600,
	})
	if err != nil {
		t.Fatalf("Build GTD: %v", err)
	}
	if gtd.Expiration != "1700003600" {
		t.Errorf("GTD expiration = %s, want 1700003600", gtd.Expiration)
	}
}

func TestBuildDefaults(t *testing.T) {
	b := newTestBuilder()

	data, err := b.Build(Intent{TokenID: testToken, Side: Buy, Price: 0.5, Size: 10, Kind: GTC})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if data.Taker != zeroAddress {
		t.Errorf("taker = %s, want zero address (open order)", data.Taker)
	}
	if data.Maker != testMaker || data.Signer != testMaker {
		t.Errorf("maker/signer = %s/%s, want both %s", data.Maker, data.Signer, testMaker)
	}
	if data.FeeRateBps != "0" {
		t.Errorf("feeRateBps = %s, want 0", data.FeeRateBps)
	}
	if data.SignatureType != model.EOA {
		t.Errorf("signatureType = %d, want EOA", data.SignatureType)
	}
}

func TestBuildProxyFunder(t *testing.T) {
	proxy := "0x2e234DAe75C793f67A35089C9d99245E1C58470b"
	b := NewBuilder(testMaker, proxy, model.POLY_GNOSIS_SAFE)

	data, err := b.Build(Intent{TokenID: testToken, Side: Buy, Price: 0.5, Size: 10, Kind: GTC})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if data.Maker != proxy {
		t.Errorf("maker = %s, want proxy %s", data.Maker, proxy)
	}
	if data.Signer != testMaker {
		t.Errorf("signer = %s, want EOA %s", data.Signer, testMaker)
	}
}

func TestNonceUniqueUnderConcurrency(t *testing.T) {
	const builds = 500

	var (
		mu     sync.Mutex
		nonces = make(map[string]struct{}, builds)
		wg     sync.WaitGroup
	)

	for i := 0; i < builds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			b := newTestBuilder()
			data, err := b.Build(Intent{TokenID: testToken, Side: Buy, Price: 0.5, Size: 10, Kind: GTC})
			if err != nil {
				t.Errorf("Build: %v", err)
				return
			}

			mu.Lock()
			nonces[data.Nonce] = struct{}{}
			mu.Unlock()
		}()
	}

	wg.Wait()

	if len(nonces) != builds {
		t.Errorf("got %d distinct nonces from %d concurrent builds", len(nonces), builds)
	}

	// Nonces must fit the exchange's uint256 field as positive integers.
	for nonce := range nonces {
		n, ok := new(big.Int).SetString(nonce, 10)
		if !ok || n.Sign() <= 0 {
			t.Errorf("nonce %q is not a positive integer", nonce)
		}
	}
}
