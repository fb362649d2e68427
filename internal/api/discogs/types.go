package discogs

import (
	"fmt"
	"strconv"
	"strings"
)

// SearchResponse is the decoded body of a database search.
type SearchResponse struct {
	Pagination Pagination     `json:"pagination"`
	Results    []SearchResult `json:"results"`
}

// Pagination describes the page window Discogs returned.
type Pagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"`
}

// SearchResult is one row of a database search. Title is the combined
// "Artist - Title" string Discogs returns for releases and masters.
type SearchResult struct {
	ID      int      `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Year    string   `json:"year,omitempty"`
	Country string   `json:"country,omitempty"`
	Label   []string `json:"label,omitempty"`
	Format  []string `json:"format,omitempty"`
	CatNo   string   `json:"catno,omitempty"`
}

// ReleaseArtist is one credited artist on a release.
type ReleaseArtist struct {
	Name string `json:"name"`
}

// TrackInfo is one tracklist entry.
type TrackInfo struct {
	Position string `json:"position"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// Release covers both /releases/{id} and /masters/{id} bodies; the two
// share every field this tool reads.
type Release struct {
	ID        int             `json:"id"`
	Title     string          `json:"title"`
	Artists   []ReleaseArtist `json:"artists"`
	Year      int             `json:"year"`
	Genres    []string        `json:"genres,omitempty"`
	Tracklist []TrackInfo     `json:"tracklist"`
}

// ArtistNames joins the credited artists for display.
func (r *Release) ArtistNames() string {
	names := make([]string, 0, len(r.Artists))
	for _, a := range r.Artists {
		names = append(names, a.Name)
	}
	if len(names) == 0 {
		return "Unknown Artist"
	}
	return strings.Join(names, ", ")
}

// IsNumericID reports whether id is a bare positive integer, the only
// identifier form Discogs releases and masters use.
func IsNumericID(id string) bool {
	if id == "" {
		return false
	}
	n, err := strconv.Atoi(id)
	return err == nil && n > 0
}

// FormatResult renders one search result as a single display line.
func FormatResult(index int, r SearchResult) string {
	parts := []string{fmt.Sprintf("%d. [%s] %s", index, strings.ToUpper(r.Type), r.Title)}
	if r.Year != "" {
		parts = append(parts, "("+r.Year+")")
	}
	if len(r.Label) > 0 {
		parts = append(parts, "— "+r.Label[0])
	}
	if r.Country != "" {
		parts = append(parts, "["+r.Country+"]")
	}
	parts = append(parts, fmt.Sprintf("(id: %d)", r.ID))
	return strings.Join(parts, " ")
}

// FormatTrack renders one tracklist entry for the human output format.
func FormatTrack(t TrackInfo) string {
	position := t.Position
	if position == "" {
		position = "-"
	}
	if t.Duration == "" {
		return fmt.Sprintf("%-4s %s", position, t.Title)
	}
	return fmt.Sprintf("%-4s %s (%s)", position, t.Title, t.Duration)
}
