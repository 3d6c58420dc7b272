// Package gamma is a read-only client for the Polymarket Gamma API: market
// and event discovery, search and tags. No endpoint here requires
// credentials.
package gamma

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	// MaxBatchSize is the maximum number of records the Gamma API returns
	// per request; larger limits are paginated client-side.
	MaxBatchSize = 100
)

// Client is an HTTP client for the Polymarket Gamma API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Gamma API client.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// ListOptions filter and page market/event listings.
type ListOptions struct {
	Active      bool
	Closed      bool
	Archived    bool
	Limit       int // 0 means one full batch
	Offset      int
	Order       string // "id", "created_at", "volume", "liquidity"
	Ascending   bool
	TagID       string
	RelatedTags bool
}

func (o ListOptions) query(limit, offset int) url.Values {
	params := url.Values{}
	params.Set("active", strconv.FormatBool(o.Active))
	params.Set("closed", strconv.FormatBool(o.Closed))
	params.Set("archived", strconv.FormatBool(o.Archived))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	if o.Order != "" {
		params.Set("order", o.Order)
		params.Set("ascending", strconv.FormatBool(o.Ascending))
	}
	if o.TagID != "" {
		params.Set("tag_id", o.TagID)
		if o.RelatedTags {
			params.Set("related_tags", "true")
		}
	}

	return params
}

// FetchMarkets fetches markets matching the options, paginating when the
// requested limit exceeds a single batch.
func (c *Client) FetchMarkets(ctx context.Context, opts ListOptions) ([]types.Market, error) {
	if opts.Limit > MaxBatchSize {
		return fetchPaginated(ctx, c, "/markets", opts, c.fetchMarketsPage)
	}

	return c.fetchMarketsPage(ctx, opts, batchLimit(opts.Limit), opts.Offset)
}

func (c *Client) fetchMarketsPage(ctx context.Context, opts ListOptions, limit, offset int) ([]types.Market, error) {
	var markets []types.Market
	err := c.get(ctx, "/markets", opts.query(limit, offset), &markets)
	if err != nil {
		return nil, err
	}

	MarketsFetchedTotal.Add(float64(len(markets)))

	return markets, nil
}

// FetchMarketByID fetches a single market.
func (c *Client) FetchMarketByID(ctx context.Context, marketID string) (*types.Market, error) {
	if marketID == "" {
		return nil, &types.ValidationError{Field: "marketId", Message: "cannot be empty"}
	}

	var market types.Market
	err := c.get(ctx, "/markets/"+marketID, nil, &market)
	if err != nil {
		return nil, err
	}

	return &market, nil
}

// FetchMarketBySlug fetches a single market by its URL slug.
func (c *Client) FetchMarketBySlug(ctx context.Context, slug string) (*types.Market, error) {
	params := url.Values{}
	params.Set("slug", slug)

	var markets []types.Market
	err := c.get(ctx, "/markets", params, &markets)
	if err != nil {
		return nil, err
	}

	if len(markets) == 0 {
		return nil, fmt.Errorf("market not found: %s", slug)
	}

	return &markets[0], nil
}

// FetchEvents fetches events (titled groups of markets) matching the options.
func (c *Client) FetchEvents(ctx context.Context, opts ListOptions) ([]types.Event, error) {
	var events []types.Event
	err := c.get(ctx, "/events", opts.query(batchLimit(opts.Limit), opts.Offset), &events)
	if err != nil {
		return nil, err
	}

	return events, nil
}

// FetchEventBySlug fetches a single event by its URL slug.
func (c *Client) FetchEventBySlug(ctx context.Context, slug string) (*types.Event, error) {
	var event types.Event
	err := c.get(ctx, "/events/slug/"+slug, nil, &event)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// Search searches markets and events by keyword.
func (c *Client) Search(ctx context.Context, query string, limit, offset int) (json.RawMessage, error) {
	if query == "" {
		return nil, &types.ValidationError{Field: "query", Message: "cannot be empty"}
	}

	params := url.Values{}
	params.Set("query", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	// The search endpoint mixes record shapes; the raw payload is passed
	// through to the caller.
	var result json.RawMessage
	err := c.get(ctx, "/search", params, &result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// FetchTags fetches the available category tags.
func (c *Client) FetchTags(ctx context.Context, limit, offset int) ([]types.Tag, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	var tags []types.Tag
	err := c.get(ctx, "/tags", params, &tags)
	if err != nil {
		return nil, err
	}

	return tags, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	start := time.Now()
	defer func() {
		FetchDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "polymarket-connector/1.0")

	c.logger.Debug("gamma-fetch", zap.String("url", requestURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		FetchErrorsTotal.Inc()
		return &types.TransientNetworkError{Method: http.MethodGet, Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		FetchErrorsTotal.Inc()
		return &types.TransientNetworkError{Method: http.MethodGet, Path: path, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		FetchErrorsTotal.Inc()
		return &types.UpstreamError{
			Status: resp.StatusCode,
			Method: http.MethodGet,
			Path:   path,
			Body:   string(body),
		}
	}

	err = json.Unmarshal(body, out)
	if err != nil {
		return fmt.Errorf("unmarshal response from %s: %w", path, err)
	}

	return nil
}

func batchLimit(limit int) int {
	if limit <= 0 || limit > MaxBatchSize {
		return MaxBatchSize
	}
	return limit
}

// fetchPaginated aggregates pages until the requested limit is reached or
// the API runs out of records.
func fetchPaginated(
	ctx context.Context,
	c *Client,
	path string,
	opts ListOptions,
	fetchPage func(ctx context.Context, opts ListOptions, limit, offset int) ([]types.Market, error),
) ([]types.Market, error) {
	var (
		all     []types.Market
		page    = 0
		fetched = 0
	)

	for {
		remaining := opts.Limit - fetched
		if remaining <= 0 {
			break
		}

		pageSize := min(remaining, MaxBatchSize)
		pageOffset := opts.Offset + page*MaxBatchSize

		records, err := fetchPage(ctx, opts, pageSize, pageOffset)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d of %s: %w", page, path, err)
		}

		all = append(all, records...)
		fetched += len(records)

		// Fewer records than requested means no more data.
		if len(records) < pageSize {
			break
		}

		page++
	}

	return all, nil
}
