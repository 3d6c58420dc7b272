package clob

import (
	"net/http"
	"strconv"
	"time"

	"github.com/deepakdhaka-1/polymarket-connector/internal/signer"
)

// L1 authentication headers expected by the order service.
const (
	headerAddress    = "POLY_ADDRESS"
	headerSignature  = "POLY_SIGNATURE"
	headerTimestamp  = "POLY_TIMESTAMP"
	headerAPIKey     = "POLY_API_KEY"
	headerPassphrase = "POLY_PASSPHRASE"
)

// requestAuthorizer composes the L1 header set for authenticated order-service
// calls. Public market-data endpoints never receive these headers.
type requestAuthorizer struct {
	signer     *signer.Signer
	apiKey     string
	secret     string
	passphrase string
	now        func() time.Time
}

func newRequestAuthorizer(s *signer.Signer, apiKey, secret, passphrase string) *requestAuthorizer {
	return &requestAuthorizer{
		signer:     s,
		apiKey:     apiKey,
		secret:     secret,
		passphrase: passphrase,
		now:        time.Now,
	}
}

// headers signs the (timestamp, method, path, body) tuple and returns the
// full header set. body must be the exact bytes that go on the wire; the
// signature breaks otherwise.
func (a *requestAuthorizer) headers(method, path string, body []byte) (http.Header, error) {
	timestamp := strconv.FormatInt(a.now().Unix(), 10)

	signature, err := a.signer.SignRequest(a.secret, timestamp, method, path, string(body))
	if err != nil {
		return nil, err
	}

	h := http.Header{}
	h.Set(headerAddress, a.signer.Address().Hex())
	h.Set(headerSignature, signature)
	h.Set(headerTimestamp, timestamp)
	h.Set(headerAPIKey, a.apiKey)
	h.Set(headerPassphrase, a.passphrase)

	if len(body) > 0 {
		h.Set("Content-Type", "application/json")
	}

	return h, nil
}
