package gamma

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/deepakdhaka-1/polymarket-connector/pkg/types"
	"go.uber.org/zap"
)

func TestFetchMarketsQueryParams(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","question":"Will it rain?","slug":"rain","active":true,"volume":"1234.5"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	markets, err := client.FetchMarkets(context.Background(), ListOptions{
		Active:      true,
		Limit:       50,
		Order:       "volume",
		TagID:       "21",
		RelatedTags: true,
	})
	if err != nil {
		t.Fatalf("FetchMarkets: %v", err)
	}

	if len(markets) != 1 {
		t.Fatalf("got %d markets, want 1", len(markets))
	}
	if markets[0].Volume != 1234.5 {
		t.Errorf("volume = %f, want 1234.5 (string volume not normalized)", markets[0].Volume)
	}

	want := map[string]string{
		"active":       "true",
		"closed":       "false",
		"archived":     "false",
		"limit":        "50",
		"offset":       "0",
		"order":        "volume",
		"ascending":    "false",
		"tag_id":       "21",
		"related_tags": "true",
	}
	for key, value := range want {
		if gotQuery[key] != value {
			t.Errorf("query %s = %q, want %q", key, gotQuery[key], value)
		}
	}
}

func TestFetchMarketsPagination(t *testing.T) {
	var requests []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		requests = append(requests, fmt.Sprintf("limit=%d offset=%d", limit, offset))

		w.Header().Set("Content-Type", "application/json")

		// 250 markets total; each page returns at most the requested limit.
		_, _ = w.Write([]byte("["))
		count := min(limit, 250-offset)
		for i := 0; i < count; i++ {
			if i > 0 {
				_, _ = w.Write([]byte(","))
			}
			_, _ = fmt.Fprintf(w, `{"id":"%d"}`, offset+i)
		}
		_, _ = w.Write([]byte("]"))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	markets, err := client.FetchMarkets(context.Background(), ListOptions{Active: true, Limit: 250})
	if err != nil {
		t.Fatalf("FetchMarkets: %v", err)
	}

	if len(markets) != 250 {
		t.Errorf("got %d markets, want 250", len(markets))
	}

	wantRequests := []string{"limit=100 offset=0", "limit=100 offset=100", "limit=50 offset=200"}
	if len(requests) != len(wantRequests) {
		t.Fatalf("got %d requests %v, want %v", len(requests), requests, wantRequests)
	}
	for i, want := range wantRequests {
		if requests[i] != want {
			t.Errorf("request %d = %q, want %q", i, requests[i], want)
		}
	}

	// No duplicate records across page boundaries.
	seen := make(map[string]struct{}, len(markets))
	for _, m := range markets {
		if _, dup := seen[m.ID]; dup {
			t.Errorf("duplicate market %s across pages", m.ID)
		}
		seen[m.ID] = struct{}{}
	}
}

func TestFetchMarketByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	_, err := client.FetchMarketByID(context.Background(), "missing")
	if !types.IsUpstreamNotFound(err) {
		t.Errorf("expected upstream 404, got %v", err)
	}
}

func TestFetchMarketBySlug(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("slug"); got != "fed-decision" {
			t.Errorf("slug = %q, want fed-decision", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"7","slug":"fed-decision","outcomes":"[\"Yes\",\"No\"]","clobTokenIds":"[\"111\",\"222\"]","outcomePrices":"[\"0.65\",\"0.35\"]"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	market, err := client.FetchMarketBySlug(context.Background(), "fed-decision")
	if err != nil {
		t.Fatalf("FetchMarketBySlug: %v", err)
	}

	if len(market.Tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(market.Tokens))
	}

	yes := market.GetTokenByOutcome("YES")
	if yes == nil || yes.TokenID != "111" || yes.Price != 0.65 {
		t.Errorf("YES token = %+v, want id=111 price=0.65", yes)
	}
}

func TestFetchTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tags" {
			t.Errorf("path = %s, want /tags", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"21","label":"Politics","slug":"politics"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	tags, err := client.FetchTags(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("FetchTags: %v", err)
	}
	if len(tags) != 1 || tags[0].Label != "Politics" {
		t.Errorf("tags = %+v", tags)
	}
}
