package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/tmarchal/minisearch/internal/cache"
	"github.com/tmarchal/minisearch/internal/counter"
	"github.com/tmarchal/minisearch/internal/monitoring"
)

const defaultBaseURL = "https://customsearch.googleapis.com/customsearch/v1"

const (
	// Provider pagination ceiling for num=10.
	maxStartIndex  = 91
	maxResultCount = 10

	// Truncation length for error body excerpts.
	maxErrorBody = 200
)

// Client wraps the paginated web/image search call, enforcing the provider
// limits and applying the response cache. Exactly one counter increment
// happens per true network call; cache hits touch neither the network nor
// the counter.
type Client struct {
	apiKey     string
	cseID      string
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	counter    *counter.Daily
	metrics    *monitoring.Metrics
	logger     *logrus.Logger
	group      singleflight.Group
}

func NewClient(apiKey, cseID string, store *cache.Cache, calls *counter.Daily, metrics *monitoring.Metrics, logger *logrus.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		cseID:   cseID,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cache:   store,
		counter: calls,
		metrics: metrics,
		logger:  logger,
	}
}

// Search runs one provider call for query at the given page. start is clamped
// to [1, 91] and num to [1, 10]. Concurrent misses for the same parameters
// are collapsed into a single upstream call.
func (c *Client) Search(ctx context.Context, query string, start, num int, kind Kind) (*Response, error) {
	if c.apiKey == "" || c.cseID == "" {
		return nil, ErrMissingCredentials
	}
	if kind == "" {
		kind = KindWeb
	}

	start = clamp(start, 1, maxStartIndex)
	num = clamp(num, 1, maxResultCount)

	key := cache.Key{Query: query, Num: num, Start: start, Kind: string(kind)}
	if payload, ok := c.cache.Get(key); ok {
		c.metrics.RecordCacheHit(string(kind))
		return payload.(*Response), nil
	}
	c.metrics.RecordCacheMiss(string(kind))

	flightKey := fmt.Sprintf("%q|%d|%d|%s", query, num, start, kind)
	v, err, _ := c.group.Do(flightKey, func() (interface{}, error) {
		resp, err := c.fetch(ctx, query, start, num, kind)
		if err != nil {
			return nil, err
		}
		c.counter.Record()
		c.cache.Set(key, resp)
		c.metrics.RecordSearch(string(kind))
		return resp, nil
	})
	if err != nil {
		c.metrics.RecordUpstreamError("search")
		return nil, err
	}
	return v.(*Response), nil
}

func (c *Client) fetch(ctx context.Context, query string, start, num int, kind Kind) (*Response, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.cseID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))
	params.Set("start", strconv.Itoa(start))
	if kind == KindImage {
		params.Set("searchType", "image")
	}

	fullURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"kind":   kind,
		}).Warn("search provider returned an error status")
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &payload, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
