package musicbrainz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"discogs-cli/internal/shared"
)

// createMockClient points a client at a local server with a permissive
// rate limit so tests do not sleep.
func createMockClient(serverURL string) *Client {
	config := DefaultConfig()
	config.BaseURL = serverURL + "/ws/2/"
	config.RateLimit = time.Millisecond
	config.Timeout = 5 * time.Second
	return NewClientWithConfig(config)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient()
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	config := client.GetConfig()
	if config.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", config.BaseURL, defaultBaseURL)
	}
	if config.RateLimit != defaultRateLimit {
		t.Errorf("RateLimit = %v, want %v", config.RateLimit, defaultRateLimit)
	}
}

func TestSearchRecordingDecodesISRCs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/2/recording" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"recordings": [
			{"id": "1f718dc1-41a8-4b18-9bb1-5c4e8e6c33f1", "title": "One More Time", "length": 320000, "isrcs": ["GBDUW0000059"]}
		]}`))
	}))
	defer server.Close()

	client := createMockClient(server.URL)
	recording, err := client.SearchRecording(context.Background(), "Daft Punk", "One More Time")
	if err != nil {
		t.Fatalf("SearchRecording() error: %v", err)
	}
	if recording.FirstISRC() != "GBDUW0000059" {
		t.Errorf("FirstISRC() = %q, want GBDUW0000059", recording.FirstISRC())
	}
	if recording.Length != 320000 {
		t.Errorf("Length = %d, want 320000", recording.Length)
	}
}

func TestSearchRecordingNoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"recordings": []}`))
	}))
	defer server.Close()

	client := createMockClient(server.URL)
	_, err := client.SearchRecording(context.Background(), "Nobody", "Nothing")
	if !shared.IsKind(err, shared.KindNotFound) {
		t.Fatalf("err = %v, want not_found marker", err)
	}
}

func TestSearchRecordingEmptyArguments(t *testing.T) {
	client := NewClient()
	if _, err := client.SearchRecording(context.Background(), "", "Title"); err == nil {
		t.Error("expected error for empty artist")
	}
	if _, err := client.SearchRecording(context.Background(), "Artist", ""); err == nil {
		t.Error("expected error for empty title")
	}
}

func TestRateLimitedStatusBecomesMarker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := createMockClient(server.URL)
	_, err := client.SearchRecording(context.Background(), "Artist", "Title")
	if !shared.IsKind(err, shared.KindRateLimited) {
		t.Fatalf("err = %v, want rate_limited marker", err)
	}
}

func TestFirstISRCEmpty(t *testing.T) {
	r := &Recording{}
	if got := r.FirstISRC(); got != "" {
		t.Errorf("FirstISRC() = %q, want empty", got)
	}
}

func TestIsValidMBID(t *testing.T) {
	if !IsValidMBID("1f718dc1-41a8-4b18-9bb1-5c4e8e6c33f1") {
		t.Error("well-formed MBID rejected")
	}
	for _, bad := range []string{"", "12345", "1F718DC1-41A8-4B18-9BB1-5C4E8E6C33F1", "zz718dc1-41a8-4b18-9bb1-5c4e8e6c33f1"} {
		if IsValidMBID(bad) {
			t.Errorf("IsValidMBID(%q) = true, want false", bad)
		}
	}
}

func TestGetRecordingRejectsInvalidMBID(t *testing.T) {
	client := NewClient()
	if _, err := client.GetRecording(context.Background(), "not-an-mbid"); err == nil {
		t.Error("expected error for malformed MBID")
	}
}
