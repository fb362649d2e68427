package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"discogs-cli/internal/shared"
)

const (
	defaultBaseURL = "https://api.discogs.com"
	defaultTimeout = 30 * time.Second
	serviceName    = "discogs"
)

// QueryParam is a single name/value pair appended to a request URL.
type QueryParam struct {
	Name  string
	Value string
}

// Client represents a Discogs database API client. Authentication is a
// static personal access token passed on every request.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Discogs client. An empty token is allowed; the
// search endpoint then serves heavily rate-limited anonymous requests.
func NewClient(token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: httpClient,
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// HasToken reports whether a personal access token is configured.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// buildURL constructs the full URL for API requests
func (c *Client) buildURL(path string, params []QueryParam) (*url.URL, error) {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("error parsing URL: %w", err)
	}
	if len(params) > 0 {
		q := u.Query()
		for _, param := range params {
			q.Add(param.Name, param.Value)
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}

// get performs a single GET request and maps expected failure statuses
// onto APIError discriminators. There is no retry loop; a 429 is
// reported once with its Retry-After value and the operation stops.
func (c *Client) get(ctx context.Context, path string, params []QueryParam) ([]byte, error) {
	u, err := c.buildURL(path, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", shared.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.token)
	}

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
	case http.StatusUnauthorized:
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindAuthRequired}
	case http.StatusNotFound:
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindNotFound}
	case http.StatusTooManyRequests:
		retryAfter := 60
		if v, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && v > 0 {
			retryAfter = v
		}
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindRateLimited, RetryAfter: retryAfter}
	case http.StatusServiceUnavailable:
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindUnavailable}
	default:
		message := string(body)
		if len(message) > 200 {
			message = message[:200] + "..."
		}
		return nil, fmt.Errorf("request failed with status %s: %s", resp.Status, message)
	}
}

// Search queries the Discogs database. searchType may be empty for an
// unfiltered search, or one of artist/release/master/label.
func (c *Client) Search(ctx context.Context, query, searchType string, perPage int) (*SearchResponse, error) {
	params := []QueryParam{
		{Name: "q", Value: query},
		{Name: "per_page", Value: strconv.Itoa(perPage)},
		{Name: "page", Value: "1"},
	}
	if searchType != "" {
		params = append(params, QueryParam{Name: "type", Value: searchType})
	}

	body, err := c.get(ctx, "database/search", params)
	if err != nil {
		return nil, err
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search response: %w", err)
	}
	return &result, nil
}

// GetRelease fetches a release and its tracklist by numeric ID.
func (c *Client) GetRelease(ctx context.Context, id string) (*Release, error) {
	if !IsNumericID(id) {
		return nil, fmt.Errorf("invalid release ID: %s", id)
	}
	body, err := c.get(ctx, "releases/"+id, nil)
	if err != nil {
		return nil, err
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("failed to unmarshal release: %w", err)
	}
	return &release, nil
}

// GetMaster fetches a master release and its tracklist by numeric ID.
func (c *Client) GetMaster(ctx context.Context, id string) (*Release, error) {
	if !IsNumericID(id) {
		return nil, fmt.Errorf("invalid master ID: %s", id)
	}
	body, err := c.get(ctx, "masters/"+id, nil)
	if err != nil {
		return nil, err
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("failed to unmarshal master: %w", err)
	}
	return &release, nil
}
