package interfaces

import (
	"context"

	"discogs-cli/internal/api/discogs"
	"discogs-cli/internal/api/getsongbpm"
	"discogs-cli/internal/api/musicbrainz"
	"discogs-cli/internal/api/reccobeats"
)

// DiscogsService queries the Discogs database.
type DiscogsService interface {
	Search(ctx context.Context, query, searchType string, perPage int) (*discogs.SearchResponse, error)
	GetRelease(ctx context.Context, id string) (*discogs.Release, error)
	GetMaster(ctx context.Context, id string) (*discogs.Release, error)
	HasToken() bool
}

// MusicBrainzService resolves recordings and their ISRCs.
type MusicBrainzService interface {
	SearchRecording(ctx context.Context, artist, title string) (*musicbrainz.Recording, error)
}

// BPMService looks up song tempos.
type BPMService interface {
	SearchSong(ctx context.Context, artist, title string) (*getsongbpm.Song, error)
	HasKey() bool
}

// AudioFeaturesService fetches per-track audio analysis.
type AudioFeaturesService interface {
	SearchTrackByISRC(ctx context.Context, isrc string) (*reccobeats.TrackRef, error)
	GetAudioFeatures(ctx context.Context, trackID string) (*reccobeats.AudioFeatures, error)
}

// OutputService persists generated files.
type OutputService interface {
	EnsureDirs() error
	WriteResultJSON(requestType string, params map[string]string, payload interface{}) (string, error)
	WriteTracklist(artist, title, id, format, rendered string) (string, error)
	Clean() (int, error)
	Root() string
}

// SessionLogService is the per-session persistent text log.
type SessionLogService interface {
	Append(line string) error
	Path() string
}

// LoggerService writes styled console output.
type LoggerService interface {
	Info(message string, args ...interface{})
	Warning(message string, args ...interface{})
	Error(message string, args ...interface{})
	Debug(message string, args ...interface{})
	Success(message string, args ...interface{})
	SetDebugMode(enabled bool)
}
