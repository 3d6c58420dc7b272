package signer

import (
	"errors"
	"testing"

	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
	"github.com/polymarket/go-order-utils/pkg/model"
)

// Private key 0x...01 has a well-known derived address.
const (
	testPrivateKey  = "0000000000000000000000000000000000000000000000000000000000000001"
	testAddress     = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"
	testChainID     = int64(137)
	zeroAddress     = "0x0000000000000000000000000000000000000000"
	testSecret      = "cG9seW1hcmtldC10ZXN0LXNlY3JldCEh" // base64url("polymarket-test-secret!!")
	testTimestamp   = "1700000000"
	goldenSigOrder  = "Gic9NTJ73tqhvU51kBiLECJDwanYfW0agZ2ybcWAMnw="
	goldenSigOrders = "QnWz9uJPQpB8JxHnUEAP_q-h1Jje_-kICHWoDn0APMs="
)

func newTestSigner(t *testing.T) *Signer {
	t.Helper()

	s, err := NewWithSalt(testPrivateKey, testChainID, func() int64 { return 42 })
	if err != nil {
		t.Fatalf("NewWithSalt: %v", err)
	}

	return s
}

func TestAddressDerivation(t *testing.T) {
	s := newTestSigner(t)

	if got := s.Address().Hex(); got != testAddress {
		t.Errorf("derived address = %s, want %s", got, testAddress)
	}
}

func TestNewRejectsMalformedKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "empty", key: ""},
		{name: "not-hex", key: "zzzz"},
		{name: "too-short", key: "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.key, testChainID)
			if err == nil {
				t.Fatal("expected error for malformed key")
			}

			var authErr *types.AuthError
			if !errors.As(err, &authErr) {
				t.Errorf("expected AuthError, got %T", err)
			}
		})
	}
}

func TestSignRequestGolden(t *testing.T) {
	s := newTestSigner(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   string
	}{
		{
			name:   "post-with-body",
			method: "POST",
			path:   "/order",
			body:   `{"hello":"world"}`,
			want:   goldenSigOrder,
		},
		{
			name:   "get-without-body",
			method: "GET",
			path:   "/orders",
			body:   "",
			want:   goldenSigOrders,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SignRequest(testSecret, testTimestamp, tt.method, tt.path, tt.body)
			if err != nil {
				t.Fatalf("SignRequest: %v", err)
			}
			if got != tt.want {
				t.Errorf("signature = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSignRequestBadSecret(t *testing.T) {
	s := newTestSigner(t)

	_, err := s.SignRequest("not base64!!!", testTimestamp, "GET", "/orders", "")
	if err == nil {
		t.Fatal("expected error for undecodable secret")
	}

	var authErr *types.AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("expected AuthError, got %T", err)
	}
}

func testOrderData(addr string) *model.OrderData {
	return &model.OrderData{
		Maker:         addr,
		Taker:         zeroAddress,
		TokenId:       "123456789",
		MakerAmount:   "500000",
		TakerAmount:   "1000000",
		Side:          model.BUY,
		FeeRateBps:    "0",
		Nonce:         "7",
		Signer:        addr,
		Expiration:    "0",
		SignatureType: model.EOA,
	}
}

func TestSignOrderDeterministic(t *testing.T) {
	s := newTestSigner(t)

	first, err := s.SignOrder(testOrderData(testAddress))
	if err != nil {
		t.Fatalf("SignOrder: %v", err)
	}

	second, err := s.SignOrder(testOrderData(testAddress))
	if err != nil {
		t.Fatalf("SignOrder: %v", err)
	}

	if SignatureHex(first) != SignatureHex(second) {
		t.Error("signing the same order twice produced different signatures")
	}

	if len(first.Signature) == 0 {
		t.Error("empty signature")
	}
}

func TestSignOrderFieldChangeChangesSignature(t *testing.T) {
	s := newTestSigner(t)

	base, err := s.SignOrder(testOrderData(testAddress))
	if err != nil {
		t.Fatalf("SignOrder: %v", err)
	}

	mutations := []struct {
		name   string
		mutate func(d *model.OrderData)
	}{
		{name: "token-id", mutate: func(d *model.OrderData) { d.TokenId = "987654321" }},
		{name: "maker-amount", mutate: func(d *model.OrderData) { d.MakerAmount = "600000" }},
		{name: "taker-amount", mutate: func(d *model.OrderData) { d.TakerAmount = "2000000" }},
		{name: "side", mutate: func(d *model.OrderData) { d.Side = model.SELL }},
		{name: "expiration", mutate: func(d *model.OrderData) { d.Expiration = "1800000000" }},
		{name: "nonce", mutate: func(d *model.OrderData) { d.Nonce = "8" }},
		{name: "fee-rate", mutate: func(d *model.OrderData) { d.FeeRateBps = "100" }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			data := testOrderData(testAddress)
			tt.mutate(data)

			signed, err := s.SignOrder(data)
			if err != nil {
				t.Fatalf("SignOrder: %v", err)
			}

			if SignatureHex(signed) == SignatureHex(base) {
				t.Errorf("changing %s did not change the signature", tt.name)
			}
		})
	}
}

func TestSignOrderChainIDChangesSignature(t *testing.T) {
	mainnet := newTestSigner(t)

	amoy, err := NewWithSalt(testPrivateKey, 80002, func() int64 { return 42 })
	if err != nil {
		t.Fatalf("NewWithSalt: %v", err)
	}

	a, err := mainnet.SignOrder(testOrderData(testAddress))
	if err != nil {
		t.Fatalf("SignOrder mainnet: %v", err)
	}

	b, err := amoy.SignOrder(testOrderData(testAddress))
	if err != nil {
		t.Fatalf("SignOrder amoy: %v", err)
	}

	if SignatureHex(a) == SignatureHex(b) {
		t.Error("different chain IDs produced identical signatures; domain separator not applied")
	}
}
