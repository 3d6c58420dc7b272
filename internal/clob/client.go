// Package clob implements the authenticated trading protocol against the
// Polymarket CLOB: order construction, the two-layer signing scheme and the
// order-service endpoints.
package clob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/deepakdhaka-1/polymarket-connector/internal/signer"
	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
	json "github.com/goccy/go-json"
	"github.com/polymarket/go-order-utils/pkg/model"
	"go.uber.org/zap"
)

var errNoCredentials = errors.New("client has no signing credentials")

// Client talks to the CLOB order service. Credentials are immutable for the
// client's lifetime; rotating them means constructing a new client.
//
// Every operation is a single synchronous round-trip with no internal retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	signer     *signer.Signer
	builder    *Builder
	auth       *requestAuthorizer
	apiKey     string
	logger     *zap.Logger
}

// ClientConfig holds configuration for the trading client.
type ClientConfig struct {
	BaseURL       string
	APIKey        string
	Secret        string
	Passphrase    string
	PrivateKey    string
	ProxyAddress  string
	SignatureType int
	ChainID       int64
	Timeout       time.Duration
	Logger        *zap.Logger
}

// NewClient creates a trading client, deriving the signing address from the
// private key. With no private key the client is read-only: the public
// endpoints work, everything authenticated fails with an AuthError.
func NewClient(cfg *ClientConfig) (*Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		logger:     cfg.Logger,
	}

	if cfg.PrivateKey != "" {
		s, err := signer.New(cfg.PrivateKey, cfg.ChainID)
		if err != nil {
			return nil, fmt.Errorf("create signer: %w", err)
		}

		c.signer = s
		c.builder = NewBuilder(s.Address().Hex(), cfg.ProxyAddress, model.SignatureType(cfg.SignatureType))
		c.auth = newRequestAuthorizer(s, cfg.APIKey, cfg.Secret, cfg.Passphrase)
	}

	return c, nil
}

// Address returns the EOA address orders are signed with, or "" for a
// read-only client.
func (c *Client) Address() string {
	if c.signer == nil {
		return ""
	}
	return c.signer.Address().Hex()
}

// CreateOrder builds, signs and submits an order.
//
// This places a live order on a real exchange and is NOT idempotent: every
// call places a new order. Callers must not blindly retry on ambiguous
// failures; an order may have been placed even when the response was lost.
func (c *Client) CreateOrder(ctx context.Context, intent Intent) (*types.OrderSubmissionResponse, error) {
	if c.builder == nil {
		return nil, &types.AuthError{Op: "create order", Err: errNoCredentials}
	}

	data, err := c.builder.Build(intent)
	if err != nil {
		return nil, err
	}

	signed, err := c.signer.SignOrder(data)
	if err != nil {
		return nil, err
	}

	request := types.OrderSubmissionRequest{
		Order:     toSignedOrderJSON(signed, intent.Side),
		Owner:     c.apiKey, // owner is the API key, not the maker address
		OrderType: string(intent.Kind),
	}

	var resp types.OrderSubmissionResponse
	err = c.do(ctx, http.MethodPost, "/order", nil, request, true, &resp)
	if err != nil {
		OrderErrorsTotal.Inc()
		return nil, err
	}

	OrdersPlacedTotal.Inc()
	c.logger.Info("order-submitted",
		zap.String("order-id", resp.OrderID),
		zap.String("status", resp.Status),
		zap.String("token-id", intent.TokenID),
		zap.String("side", intent.Side.String()),
		zap.String("order-type", string(intent.Kind)))

	return &resp, nil
}

// CancelOrder cancels a single resting order. A 404 is benign: the order was
// already filled or cancelled.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*types.CancelResult, error) {
	if orderID == "" {
		return nil, &types.ValidationError{Field: "orderID", Message: "cannot be empty"}
	}

	body := map[string]string{"orderID": orderID}

	var result types.CancelResult
	err := c.do(ctx, http.MethodDelete, "/order", nil, body, true, &result)
	if err != nil {
		if types.IsUpstreamNotFound(err) {
			c.logger.Info("order-already-gone", zap.String("order-id", orderID))
			return &types.CancelResult{}, nil
		}
		return nil, err
	}

	OrdersCancelledTotal.Add(float64(len(result.Canceled)))

	return &result, nil
}

// CancelAll cancels every resting order, optionally scoped to one market.
func (c *Client) CancelAll(ctx context.Context, marketID string) (*types.CancelResult, error) {
	var body any
	if marketID != "" {
		body = map[string]string{"market": marketID}
	}

	var result types.CancelResult
	err := c.do(ctx, http.MethodDelete, "/orders", nil, body, true, &result)
	if err != nil {
		return nil, err
	}

	OrdersCancelledTotal.Add(float64(len(result.Canceled)))
	c.logger.Info("orders-cancelled",
		zap.Int("canceled", len(result.Canceled)),
		zap.Int("not-canceled", len(result.NotCanceled)),
		zap.String("market", marketID))

	return &result, nil
}

// GetOpenOrders returns all resting orders for the authenticated account.
func (c *Client) GetOpenOrders(ctx context.Context) ([]types.OpenOrder, error) {
	var orders []types.OpenOrder
	err := c.do(ctx, http.MethodGet, "/orders", nil, nil, true, &orders)
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// GetOrder returns a single order by ID.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*types.OpenOrder, error) {
	if orderID == "" {
		return nil, &types.ValidationError{Field: "orderID", Message: "cannot be empty"}
	}

	var order types.OpenOrder
	err := c.do(ctx, http.MethodGet, "/order/"+orderID, nil, nil, true, &order)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// GetOrderBook returns the current book for a token. No authentication.
func (c *Client) GetOrderBook(ctx context.Context, tokenID string) (*types.OrderBook, error) {
	query := url.Values{}
	query.Set("token_id", tokenID)

	var book types.OrderBook
	err := c.do(ctx, http.MethodGet, "/book", query, nil, false, &book)
	if err != nil {
		return nil, err
	}

	return &book, nil
}

// GetPrice returns the current price for a token and side. No authentication.
func (c *Client) GetPrice(ctx context.Context, tokenID string, side Side) (float64, error) {
	query := url.Values{}
	query.Set("token_id", tokenID)
	query.Set("side", side.String())

	var resp types.PriceResponse
	err := c.do(ctx, http.MethodGet, "/price", query, nil, false, &resp)
	if err != nil {
		return 0, err
	}

	price, err := strconv.ParseFloat(resp.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", resp.Price, err)
	}

	return price, nil
}

// GetTrades returns recent trade executions, optionally scoped to one
// market. No authentication.
func (c *Client) GetTrades(ctx context.Context, marketID string) ([]types.Trade, error) {
	var query url.Values
	if marketID != "" {
		query = url.Values{}
		query.Set("market", marketID)
	}

	var trades []types.Trade
	err := c.do(ctx, http.MethodGet, "/trades", query, nil, false, &trades)
	if err != nil {
		return nil, err
	}

	return trades, nil
}

// do executes one round-trip. The L1 signature covers the path (without
// query) and the exact request body; authed requests get the POLY_* header
// set, public ones none.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, authed bool, out any) error {
	start := time.Now()
	defer func() {
		RequestDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	RequestsTotal.WithLabelValues(method, path).Inc()

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "polymarket-connector/1.0")

	if authed {
		if c.auth == nil {
			return &types.AuthError{Op: method + " " + path, Err: errNoCredentials}
		}

		headers, err := c.auth.headers(method, path, bodyBytes)
		if err != nil {
			RequestErrorsTotal.WithLabelValues(method, path).Inc()
			return err
		}
		for key, values := range headers {
			req.Header[key] = values
		}
	} else if len(bodyBytes) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		RequestErrorsTotal.WithLabelValues(method, path).Inc()
		return &types.TransientNetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		RequestErrorsTotal.WithLabelValues(method, path).Inc()
		return &types.TransientNetworkError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		RequestErrorsTotal.WithLabelValues(method, path).Inc()
		return &types.UpstreamError{
			Status: resp.StatusCode,
			Method: method,
			Path:   path,
			Body:   string(respBody),
		}
	}

	if out != nil {
		err = json.Unmarshal(respBody, out)
		if err != nil {
			return fmt.Errorf("unmarshal response from %s %s: %w", method, path, err)
		}
	}

	return nil
}

func toSignedOrderJSON(signed *model.SignedOrder, side Side) types.SignedOrderJSON {
	return types.SignedOrderJSON{
		Salt:          signed.Salt.Int64(),
		Maker:         signed.Maker.Hex(),
		Signer:        signed.Signer.Hex(),
		Taker:         signed.Taker.Hex(),
		TokenID:       signed.TokenId.String(),
		MakerAmount:   signed.MakerAmount.String(),
		TakerAmount:   signed.TakerAmount.String(),
		Side:          side.String(),
		Expiration:    signed.Expiration.String(),
		Nonce:         signed.Nonce.String(),
		FeeRateBps:    signed.FeeRateBps.String(),
		SignatureType: int(signed.SignatureType.Int64()),
		Signature:     signer.SignatureHex(signed),
	}
}
