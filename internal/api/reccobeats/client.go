package reccobeats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"discogs-cli/internal/shared"
)

const (
	defaultBaseURL = "https://api.reccobeats.com"
	defaultTimeout = 30 * time.Second
	serviceName    = "reccobeats"
)

// Client represents a ReccoBeats audio-analysis API client. The public
// API requires no authentication.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a ReccoBeats client.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", shared.UserAgent)
	req.Header.Set("Accept", "application/json")

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
	case http.StatusTooManyRequests:
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindRateLimited}
	case http.StatusServiceUnavailable:
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindUnavailable}
	default:
		return nil, fmt.Errorf("request failed with status %s", resp.Status)
	}
}

// TrackRef identifies a track in the ReccoBeats catalogue.
type TrackRef struct {
	ID     string `json:"id"`
	Title  string `json:"trackTitle"`
	Artist string `json:"artists"`
	ISRC   string `json:"isrc"`
}

// AudioFeatures are the analysis values ReccoBeats exposes per track.
type AudioFeatures struct {
	Acousticness     float64 `json:"acousticness"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Instrumentalness float64 `json:"instrumentalness"`
	Valence          float64 `json:"valence"`
	Tempo            float64 `json:"tempo"`
}

// SearchTrackByISRC resolves an ISRC to a ReccoBeats track reference.
func (c *Client) SearchTrackByISRC(ctx context.Context, isrc string) (*TrackRef, error) {
	if !IsValidISRC(isrc) {
		return nil, fmt.Errorf("invalid ISRC: %s", isrc)
	}

	body, err := c.get(ctx, "/v1/track/search?isrc="+url.QueryEscape(isrc))
	if err != nil {
		return nil, err
	}

	var result struct {
		Content []TrackRef `json:"content"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal track search: %w", err)
	}
	if len(result.Content) == 0 {
		return nil, &shared.APIError{Service: serviceName, Kind: shared.KindNotFound}
	}
	return &result.Content[0], nil
}

// GetAudioFeatures fetches the audio analysis for a ReccoBeats track ID.
func (c *Client) GetAudioFeatures(ctx context.Context, trackID string) (*AudioFeatures, error) {
	if trackID == "" {
		return nil, fmt.Errorf("track ID cannot be empty")
	}

	body, err := c.get(ctx, "/v1/track/"+url.PathEscape(trackID)+"/audio-features")
	if err != nil {
		return nil, err
	}

	var features AudioFeatures
	if err := json.Unmarshal(body, &features); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audio features: %w", err)
	}
	return &features, nil
}

var isrcPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{3}\d{7}$`)

// IsValidISRC reports whether s is a well-formed ISRC.
func IsValidISRC(s string) bool {
	return isrcPattern.MatchString(s)
}
