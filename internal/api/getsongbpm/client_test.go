package getsongbpm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"discogs-cli/internal/shared"
)

func TestRoundBPM(t *testing.T) {
	tests := map[string]int{
		"120":   120,
		"120.4": 120,
		"120.5": 121,
		"97.99": 98,
		"":      0,
		"fast":  0,
		"-10":   0,
		"0":     0,
	}
	for tempo, want := range tests {
		if got := RoundBPM(tempo); got != want {
			t.Errorf("RoundBPM(%q) = %d, want %d", tempo, got, want)
		}
	}
}

func TestMissingKeyShortCircuits(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient("", server.Client())
	client.SetBaseURL(server.URL)

	_, err := client.SearchSong(context.Background(), "Daft Punk", "One More Time")
	if !shared.IsKind(err, shared.KindNoAPIKey) {
		t.Fatalf("err = %v, want no_api_key marker", err)
	}
	if requests != 0 {
		t.Errorf("client made %d requests without an API key, want 0", requests)
	}
}

func TestInvalidKeyDiscrimination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("bad-key", server.Client())
	client.SetBaseURL(server.URL)

	_, err := client.SearchSong(context.Background(), "Daft Punk", "One More Time")
	if !shared.IsKind(err, shared.KindInvalidAPIKey) {
		t.Fatalf("err = %v, want invalid_api_key marker", err)
	}
}

func TestSearchSongDecodesBestMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "k" {
			t.Errorf("api_key = %q, want k", r.URL.Query().Get("api_key"))
		}
		w.Write([]byte(`{"search": [
			{"id": "x1", "title": "One More Time", "artist": {"name": "Daft Punk"}, "tempo": "122.3"},
			{"id": "x2", "title": "One More Time (edit)", "artist": {"name": "Daft Punk"}, "tempo": "122"}
		]}`))
	}))
	defer server.Close()

	client := NewClient("k", server.Client())
	client.SetBaseURL(server.URL)

	song, err := client.SearchSong(context.Background(), "Daft Punk", "One More Time")
	if err != nil {
		t.Fatalf("SearchSong() error: %v", err)
	}
	if song.ID != "x1" {
		t.Errorf("song.ID = %q, want first match x1", song.ID)
	}
	if RoundBPM(song.Tempo) != 122 {
		t.Errorf("tempo %q rounds to %d, want 122", song.Tempo, RoundBPM(song.Tempo))
	}
}

func TestSearchSongEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"search": []}`))
	}))
	defer server.Close()

	client := NewClient("k", server.Client())
	client.SetBaseURL(server.URL)

	_, err := client.SearchSong(context.Background(), "Nobody", "Nothing")
	if !shared.IsKind(err, shared.KindNotFound) {
		t.Fatalf("err = %v, want not_found marker", err)
	}
}

func TestThrottleEnforcesMinimumInterval(t *testing.T) {
	client := NewClient("k", nil)
	client.lastCall = time.Now()

	start := time.Now()
	if err := client.throttle(context.Background()); err != nil {
		t.Fatalf("throttle() error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < minRequestInterval-50*time.Millisecond {
		t.Errorf("throttle waited %v, want at least ~%v", elapsed, minRequestInterval)
	}
}

func TestThrottleRespectsContextCancellation(t *testing.T) {
	client := NewClient("k", nil)
	client.lastCall = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := client.throttle(ctx); err == nil {
		t.Error("throttle should return the context error when cancelled")
	}
}
