package getsongbpm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"discogs-cli/internal/shared"
)

const (
	defaultBaseURL = "https://api.getsongbpm.com"
	defaultTimeout = 30 * time.Second
	serviceName    = "getsongbpm"

	// GetSongBPM's free tier tolerates roughly one request per second.
	minRequestInterval = 1100 * time.Millisecond
)

// Client represents a GetSongBPM API client. Requests are self-throttled:
// each one waits until minRequestInterval has elapsed since the previous
// request completed. The gate is a stored timestamp, not a lock; this
// process never has more than one GetSongBPM request in flight.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	mu       sync.Mutex
	lastCall time.Time
}

// NewClient creates a GetSongBPM client. The API key may be empty, in
// which case every lookup returns a no_api_key marker without touching
// the network.
func NewClient(apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// HasKey reports whether an API key is configured.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// throttle blocks until the minimum interval since the last completed
// request has elapsed, or the context is done.
func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	wait := minRequestInterval - time.Since(c.lastCall)
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) markCall() {
	c.mu.Lock()
	c.lastCall = time.Now()
	c.mu.Unlock()
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindNoAPIKey}
	}
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}
	defer c.markCall()

	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", shared.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindInvalidAPIKey}
	case http.StatusNotFound:
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindNotFound}
	case http.StatusTooManyRequests:
		retryAfter := 0
		if v, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			retryAfter = v
		}
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindRateLimited, RetryAfter: retryAfter}
	default:
		return nil, fmt.Errorf("request failed with status %s", resp.Status)
	}
}

// Song is one GetSongBPM search hit.
type Song struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist struct {
		Name string `json:"name"`
	} `json:"artist"`
	Tempo string `json:"tempo"`
}

// SearchSong looks up a song by artist and title and returns the best
// match with its tempo.
func (c *Client) SearchSong(ctx context.Context, artist, title string) (*Song, error) {
	if artist == "" || title == "" {
		return nil, fmt.Errorf("artist and title cannot be empty")
	}

	params := url.Values{}
	params.Set("type", "both")
	params.Set("lookup", fmt.Sprintf("song:%s artist:%s", title, artist))

	body, err := c.get(ctx, "/search/", params)
	if err != nil {
		return nil, err
	}

	var result struct {
		Search []Song `json:"search"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		// The API reports bad keys inside a 200 body on some plans.
		var apiFailure struct {
			Search struct {
				Error string `json:"error"`
			} `json:"search"`
		}
		if jsonErr := json.Unmarshal(body, &apiFailure); jsonErr == nil && apiFailure.Search.Error != "" {
			return nil, &shared.APIError{Service: serviceName, Kind: shared.KindInvalidAPIKey, Message: apiFailure.Search.Error}
		}
		return nil, fmt.Errorf("failed to unmarshal search response: %w", err)
	}
	if len(result.Search) == 0 {
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindNotFound}
	}
	return &result.Search[0], nil
}

// RoundBPM parses a tempo string like "120.4" and rounds it to the
// nearest whole BPM. Returns 0 for unparseable input.
func RoundBPM(tempo string) int {
	f, err := strconv.ParseFloat(tempo, 64)
	if err != nil || f <= 0 {
		return 0
	}
	return int(math.Round(f))
}
