package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"golang.org/x/time/rate"

	"discogs-cli/internal/shared"
)

const (
	defaultBaseURL    = "https://musicbrainz.org/ws/2/"
	defaultTimeout    = 30 * time.Second
	defaultRateLimit  = time.Second // MusicBrainz asks for at most 1 request per second
	defaultBurstLimit = 1
	serviceName       = "musicbrainz"
)

// Config holds configuration for the MusicBrainz API client
type Config struct {
	BaseURL   string        `json:"base_url"`
	UserAgent string        `json:"user_agent"`
	Timeout   time.Duration `json:"timeout"`
	RateLimit time.Duration `json:"rate_limit"`
	Debug     bool          `json:"debug"`
}

// Client represents a MusicBrainz API client
type Client struct {
	httpClient  *http.Client
	config      Config
	rateLimiter *rate.Limiter
}

// DefaultConfig returns sensible defaults for the MusicBrainz API client
func DefaultConfig() Config {
	return Config{
		BaseURL:   defaultBaseURL,
		UserAgent: shared.UserAgent + " ( metadata lookup )",
		Timeout:   defaultTimeout,
		RateLimit: defaultRateLimit,
		Debug:     false,
	}
}

// NewClient creates a new MusicBrainz API client with default configuration
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new MusicBrainz API client with custom configuration
func NewClientWithConfig(config Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config:      config,
		rateLimiter: rate.NewLimiter(rate.Every(config.RateLimit), defaultBurstLimit),
	}
}

// GetConfig returns the current client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// get makes a single GET request to the MusicBrainz API
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL, err := url.Parse(c.config.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	shared.DebugPrint(c.config.Debug, "musicbrainz GET %s", reqURL)

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
	case http.StatusNotFound:
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindNotFound}
	case http.StatusServiceUnavailable, http.StatusTooManyRequests:
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindRateLimited}
	default:
		message := string(body)
		if len(message) > 200 {
			message = message[:200] + "..."
		}
		return nil, fmt.Errorf("request failed with status %s: %s", resp.Status, message)
	}
}

// SearchRecording searches for a recording by artist and title and
// returns the best match, including any ISRCs attached to it.
func (c *Client) SearchRecording(ctx context.Context, artist, title string) (*Recording, error) {
	if artist == "" || title == "" {
		return nil, fmt.Errorf("artist and title cannot be empty")
	}

	query := fmt.Sprintf("artist:\"%s\" AND recording:\"%s\"", artist, title)
	path := fmt.Sprintf("recording?query=%s&inc=isrcs&limit=1", url.QueryEscape(query))

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var searchResult struct {
		Recordings []Recording `json:"recordings"`
	}
	if err := json.Unmarshal(body, &searchResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recording search result: %w", err)
	}
	if len(searchResult.Recordings) == 0 {
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindNotFound}
	}
	return &searchResult.Recordings[0], nil
}

// GetRecording fetches a recording with its ISRCs by MBID.
func (c *Client) GetRecording(ctx context.Context, mbid string) (*Recording, error) {
	if !IsValidMBID(mbid) {
		return nil, fmt.Errorf("invalid MBID: %s", mbid)
	}

	body, err := c.get(ctx, "recording/"+mbid+"?inc=isrcs")
	if err != nil {
		return nil, err
	}

	var recording Recording
	if err := json.Unmarshal(body, &recording); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recording: %w", err)
	}
	return &recording, nil
}

// Recording represents a MusicBrainz recording
type Recording struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Length int      `json:"length"` // milliseconds
	ISRCs  []string `json:"isrcs"`
}

// FirstISRC returns the recording's first ISRC, or "" if none is attached.
func (r *Recording) FirstISRC() string {
	if len(r.ISRCs) == 0 {
		return ""
	}
	return r.ISRCs[0]
}

var mbidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsValidMBID reports whether s looks like a MusicBrainz identifier.
func IsValidMBID(s string) bool {
	return mbidPattern.MatchString(s)
}
