package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/mrlokans/bookclub/internal/config"
)

// maxBodySize bounds how much of a catalog response is read.
const maxBodySize = 10 << 20

// GoogleBooksClient looks up volumes through the Google Books API.
// API docs: https://developers.google.com/books/docs/v1/using
type GoogleBooksClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	limiter    *rate.Limiter
}

// NewGoogleBooksClient creates a client from the catalog configuration.
// A non-positive rate limit disables throttling.
func NewGoogleBooksClient(cfg config.Catalog) *GoogleBooksClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultCatalogBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	limit := rate.Inf
	burst := cfg.RateBurst
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	if burst < 1 {
		burst = 1
	}

	return &GoogleBooksClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// Lookup fetches one page of volumes matching query.
//
// A body without an items list yields an empty result and no error; this is
// how the API answers when nothing matches.
func (c *GoogleBooksClient) Lookup(ctx context.Context, query string) ([]RawItem, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.volumesURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if ctx.Err() != nil {
		// Too late: whatever arrived belongs to a cycle nobody waits for.
		return nil, ErrCancelled
	}
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{StatusCode: resp.StatusCode}
	}

	return decodeVolumes(body)
}

func (c *GoogleBooksClient) volumesURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	params.Set("maxResults", strconv.Itoa(config.PageSize))
	return fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())
}

// volumesResponse keeps items raw so that a missing or non-list field can
// be told apart from a malformed document.
type volumesResponse struct {
	TotalItems int             `json:"totalItems"`
	Items      json.RawMessage `json:"items"`
}

func decodeVolumes(body []byte) ([]RawItem, error) {
	var doc volumesResponse
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	var rawItems []json.RawMessage
	if len(doc.Items) == 0 || json.Unmarshal(doc.Items, &rawItems) != nil {
		return []RawItem{}, nil
	}

	items := make([]RawItem, 0, len(rawItems))
	for i, raw := range rawItems {
		var item RawItem
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Printf("catalog: skipping malformed item %d: %v", i, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
