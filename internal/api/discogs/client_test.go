package discogs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"discogs-cli/internal/shared"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient("test-token", server.Client())
	client.SetBaseURL(server.URL)
	return client, server
}

func TestSearchDecodesResults(t *testing.T) {
	var gotPath, gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Query().Get("type") != "master" {
			t.Errorf("type param = %q, want master", r.URL.Query().Get("type"))
		}
		if r.URL.Query().Get("per_page") != "5" {
			t.Errorf("per_page param = %q, want 5", r.URL.Query().Get("per_page"))
		}
		w.Write([]byte(`{
			"pagination": {"page": 1, "pages": 2, "per_page": 5, "items": 8},
			"results": [
				{"id": 4570366, "type": "master", "title": "Daft Punk - Random Access Memories", "year": "2013", "country": "US"}
			]
		}`))
	})

	response, err := client.Search(context.Background(), "random access memories", "master", 5)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if gotPath != "/database/search" {
		t.Errorf("path = %q, want /database/search", gotPath)
	}
	if gotAuth != "Discogs token=test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(response.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(response.Results))
	}
	if response.Results[0].ID != 4570366 || response.Results[0].Type != "master" {
		t.Errorf("unexpected result: %+v", response.Results[0])
	}
	if response.Pagination.Items != 8 {
		t.Errorf("pagination items = %d, want 8", response.Pagination.Items)
	}
}

func TestSearchOmitsEmptyTypeFilter(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if _, present := r.URL.Query()["type"]; present {
			t.Error("type param should be absent for an unfiltered search")
		}
		w.Write([]byte(`{"pagination": {}, "results": []}`))
	})
	if _, err := client.Search(context.Background(), "anything", "", 5); err != nil {
		t.Fatalf("Search() error: %v", err)
	}
}

func TestStatusCodeDiscrimination(t *testing.T) {
	tests := []struct {
		status     int
		headers    map[string]string
		wantKind   string
		retryAfter int
	}{
		{status: http.StatusUnauthorized, wantKind: shared.KindAuthRequired},
		{status: http.StatusNotFound, wantKind: shared.KindNotFound},
		{status: http.StatusTooManyRequests, headers: map[string]string{"Retry-After": "7"}, wantKind: shared.KindRateLimited, retryAfter: 7},
		{status: http.StatusTooManyRequests, wantKind: shared.KindRateLimited, retryAfter: 60},
		{status: http.StatusServiceUnavailable, wantKind: shared.KindUnavailable},
	}

	for _, tt := range tests {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			for k, v := range tt.headers {
				w.Header().Set(k, v)
			}
			w.WriteHeader(tt.status)
		})

		_, err := client.GetRelease(context.Background(), "249504")
		apiErr := shared.AsAPIError(err)
		if apiErr == nil {
			t.Errorf("status %d: err = %v, want APIError", tt.status, err)
			continue
		}
		if apiErr.Kind != tt.wantKind {
			t.Errorf("status %d: kind = %q, want %q", tt.status, apiErr.Kind, tt.wantKind)
		}
		if tt.retryAfter > 0 && apiErr.RetryAfter != tt.retryAfter {
			t.Errorf("status %d: retryAfter = %d, want %d", tt.status, apiErr.RetryAfter, tt.retryAfter)
		}
	}
}

func TestGenericHTTPErrorIsNotAMarker(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.GetMaster(context.Background(), "123")
	if err == nil {
		t.Fatal("expected error for 502")
	}
	if shared.AsAPIError(err) != nil {
		t.Errorf("502 should be a generic error, got marker %v", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error should mention the status: %v", err)
	}
}

func TestGetReleaseRejectsNonNumericID(t *testing.T) {
	client := NewClient("", nil)
	if _, err := client.GetRelease(context.Background(), "abc"); err == nil {
		t.Error("expected error for non-numeric release ID")
	}
	if _, err := client.GetMaster(context.Background(), ""); err == nil {
		t.Error("expected error for empty master ID")
	}
}

func TestIsNumericID(t *testing.T) {
	valid := []string{"1", "249504", "999999999"}
	for _, id := range valid {
		if !IsNumericID(id) {
			t.Errorf("IsNumericID(%q) = false, want true", id)
		}
	}
	invalid := []string{"", "0", "-5", "12a", "abc", "1.5"}
	for _, id := range invalid {
		if IsNumericID(id) {
			t.Errorf("IsNumericID(%q) = true, want false", id)
		}
	}
}

func TestFormatResult(t *testing.T) {
	line := FormatResult(3, SearchResult{
		ID:      12345,
		Type:    "release",
		Title:   "Daft Punk - Discovery",
		Year:    "2001",
		Label:   []string{"Virgin"},
		Country: "FR",
	})
	for _, want := range []string{"3.", "[RELEASE]", "Daft Punk - Discovery", "(2001)", "Virgin", "[FR]", "(id: 12345)"} {
		if !strings.Contains(line, want) {
			t.Errorf("FormatResult missing %q: %s", want, line)
		}
	}
}

func TestFormatTrack(t *testing.T) {
	got := FormatTrack(TrackInfo{Position: "A1", Title: "Da Funk", Duration: "5:28"})
	if !strings.Contains(got, "A1") || !strings.Contains(got, "Da Funk (5:28)") {
		t.Errorf("FormatTrack = %q", got)
	}
	noDuration := FormatTrack(TrackInfo{Position: "A2", Title: "Phoenix"})
	if strings.Contains(noDuration, "()") {
		t.Errorf("FormatTrack without duration = %q", noDuration)
	}
}
