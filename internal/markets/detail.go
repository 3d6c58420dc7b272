package markets

import (
	"context"
	"fmt"
	"time"

	"github.com/deepakdhaka-1/polymarket-connector/internal/gamma"
	"github.com/deepakdhaka-1/polymarket-connector/pkg/cache"
	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
)

// DetailClient fetches full market details for event enrichment.
type DetailClient interface {
	GetMarketDetails(ctx context.Context, marketID string) (*types.Market, error)
}

// GammaDetailClient fetches market details from the Gamma API.
type GammaDetailClient struct {
	gamma *gamma.Client
}

// NewGammaDetailClient creates a detail client backed by the Gamma API.
func NewGammaDetailClient(client *gamma.Client) *GammaDetailClient {
	return &GammaDetailClient{gamma: client}
}

// GetMarketDetails fetches the full market record by ID.
func (c *GammaDetailClient) GetMarketDetails(ctx context.Context, marketID string) (*types.Market, error) {
	return c.gamma.FetchMarketByID(ctx, marketID)
}

// CachedDetailClient wraps a DetailClient with caching.
//
// Detail lookups happen once per emitted item inside a poll cycle, so a
// short TTL keeps repeat lookups for the same market cheap without
// serving stale resolution state for long.
type CachedDetailClient struct {
	client DetailClient
	cache  cache.Cache
	ttl    time.Duration
}

// NewCachedDetailClient creates a cached detail client.
func NewCachedDetailClient(client DetailClient, cache cache.Cache) *CachedDetailClient {
	return &CachedDetailClient{
		client: client,
		cache:  cache,
		ttl:    time.Minute,
	}
}

// GetMarketDetails fetches market details with caching.
func (c *CachedDetailClient) GetMarketDetails(ctx context.Context, marketID string) (*types.Market, error) {
	cacheKey := fmt.Sprintf("market:%s", marketID)

	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			if market, ok := cached.(*types.Market); ok {
				DetailCacheHitsTotal.Inc()
				return market, nil
			}
		}
		DetailCacheMissesTotal.Inc()
	}

	market, err := c.client.GetMarketDetails(ctx, marketID)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, market, c.ttl)
	}

	return market, nil
}
