package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"leadgen-engine/internal/domain"
)

const defaultEndpoint = "https://www.googleapis.com/customsearch/v1"

// GoogleClient talks to the Google Custom Search JSON API.
type GoogleClient struct {
	apiKey   string
	engineID string
	endpoint string
	hc       *http.Client
}

// NewGoogle returns a configured client. Missing credentials are a
// configuration error and must be surfaced before any query executes.
func NewGoogle(apiKey, engineID string) (*GoogleClient, error) {
	if apiKey == "" {
		return nil, errors.New("search API key is not configured")
	}
	if engineID == "" {
		return nil, errors.New("search engine id is not configured")
	}
	return &GoogleClient{
		apiKey:   apiKey,
		engineID: engineID,
		endpoint: defaultEndpoint,
		hc:       &http.Client{Timeout: 20 * time.Second},
	}, nil
}

// WithEndpoint overrides the API base URL. Used by tests.
func (c *GoogleClient) WithEndpoint(endpoint string) *GoogleClient {
	c.endpoint = endpoint
	return c
}

type googleResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"items"`
}

func (c *GoogleClient) Search(ctx context.Context, req Request) ([]domain.SearchResultRecord, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	q.Set("q", req.Query)
	q.Set("num", fmt.Sprint(PageSize))
	if req.Start > 1 {
		q.Set("start", fmt.Sprint(req.Start))
	}
	if req.Recency != "" {
		q.Set("tbs", req.Recency)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "leadgen-engine/1.0 (+local)")

	res, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("search status %d", res.StatusCode)
	}

	var body googleResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("search decode: %w", err)
	}

	out := make([]domain.SearchResultRecord, 0, len(body.Items))
	for _, it := range body.Items {
		out = append(out, domain.SearchResultRecord{
			Title:   StripMarkup(it.Title),
			Snippet: StripMarkup(it.Snippet),
			URL:     it.Link,
		})
	}
	return out, nil
}
