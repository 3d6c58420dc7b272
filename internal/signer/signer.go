// Package signer owns the process's key material and produces both layers of
// CLOB authentication: the L1 HMAC request envelope and the L2 EIP-712 order
// signature. The private key never leaves this package and is never logged.
package signer

import (
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"

	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/polymarket/go-order-utils/pkg/builder"
	"github.com/polymarket/go-order-utils/pkg/model"
)

// Signer derives the wallet address from a private key and signs both HTTP
// requests (HMAC-SHA256) and orders (EIP-712 under the "Polymarket CTF
// Exchange" domain for the configured chain).
type Signer struct {
	privateKey   *ecdsa.PrivateKey
	address      common.Address
	chainID      *big.Int
	orderBuilder builder.ExchangeOrderBuilder
}

// New creates a Signer from a hex private key (with or without 0x prefix)
// for the given chain. Order signatures use a random salt.
func New(privateKeyHex string, chainID int64) (*Signer, error) {
	return newSigner(privateKeyHex, chainID, nil)
}

// NewWithSalt creates a Signer with an explicit salt source for order
// signing. With a fixed salt, signing the same order twice is deterministic.
func NewWithSalt(privateKeyHex string, chainID int64, salt func() int64) (*Signer, error) {
	return newSigner(privateKeyHex, chainID, salt)
}

func newSigner(privateKeyHex string, chainID int64, salt func() int64) (*Signer, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, &types.AuthError{Op: "parse private key", Err: err}
	}

	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, &types.AuthError{Op: "derive public key", Err: fmt.Errorf("unexpected key type")}
	}

	id := big.NewInt(chainID)

	return &Signer{
		privateKey:   privateKey,
		address:      crypto.PubkeyToAddress(*publicKey),
		chainID:      id,
		orderBuilder: builder.NewExchangeOrderBuilderImpl(id, salt),
	}, nil
}

// Address returns the EOA address derived from the private key.
func (s *Signer) Address() common.Address {
	return s.address
}

// ChainID returns the configured chain ID.
func (s *Signer) ChainID() int64 {
	return s.chainID.Int64()
}

// SignRequest computes the L1 request signature:
// base64url(HMAC-SHA256(base64url-decode(secret), timestamp+method+path+body)).
// The secret is a base64-encoded key, not UTF-8 text; body is the exact JSON
// payload that will be sent, or empty for bodiless requests.
func (s *Signer) SignRequest(secret, timestamp, method, path, body string) (string, error) {
	secretBytes, err := base64.URLEncoding.DecodeString(secret)
	if err != nil {
		return "", &types.AuthError{Op: "decode api secret", Err: err}
	}

	payload := timestamp + method + path + body

	h := hmac.New(sha256.New, secretBytes)
	h.Write([]byte(payload))

	return base64.URLEncoding.EncodeToString(h.Sum(nil)), nil
}

// SignOrder produces an EIP-712 signed order for the CTF Exchange verifying
// contract on the signer's chain. The returned order is immutable: changing
// any field invalidates the signature.
func (s *Signer) SignOrder(data *model.OrderData) (*model.SignedOrder, error) {
	signed, err := s.orderBuilder.BuildSignedOrder(s.privateKey, data, model.CTFExchange)
	if err != nil {
		return nil, &types.AuthError{Op: "sign order", Err: err}
	}

	return signed, nil
}

// SignatureHex renders an order signature as a 0x-prefixed hex string.
func SignatureHex(signed *model.SignedOrder) string {
	return "0x" + common.Bytes2Hex(signed.Signature)
}
