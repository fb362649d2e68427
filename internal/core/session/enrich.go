package session

import (
	"context"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"

	"discogs-cli/internal/api/discogs"
	"discogs-cli/internal/api/getsongbpm"
	"discogs-cli/internal/api/reccobeats"
	"discogs-cli/internal/interfaces"
	"discogs-cli/internal/shared"
)

// EnrichedTrack is one tracklist entry plus whatever auxiliary metadata
// could be fetched for it. BPM and Features stay nil when their lookups
// fail; a partial result is never an error.
type EnrichedTrack struct {
	Position string                    `json:"position"`
	Title    string                    `json:"title"`
	Duration string                    `json:"duration,omitempty"`
	BPM      *int                      `json:"bpm,omitempty"`
	Features *reccobeats.AudioFeatures `json:"audio_features,omitempty"`
}

// fetchTrackExtras runs the BPM lookup and the ISRC→audio-features chain
// for one track in parallel and joins the results. Each leg records its
// outcome and returns nil, so a failed leg only leaves its field empty.
func fetchTrackExtras(ctx context.Context, bpmSvc interfaces.BPMService, mbSvc interfaces.MusicBrainzService, featSvc interfaces.AudioFeaturesService, artist, title string) (*int, *reccobeats.AudioFeatures) {
	var bpm *int
	var features *reccobeats.AudioFeatures

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		song, err := bpmSvc.SearchSong(gctx, artist, title)
		if err != nil {
			return nil
		}
		if v := getsongbpm.RoundBPM(song.Tempo); v > 0 {
			bpm = &v
		}
		return nil
	})

	g.Go(func() error {
		recording, err := mbSvc.SearchRecording(gctx, artist, title)
		if err != nil {
			return nil
		}
		isrc := recording.FirstISRC()
		if isrc == "" {
			return nil
		}
		ref, err := featSvc.SearchTrackByISRC(gctx, isrc)
		if err != nil {
			return nil
		}
		f, err := featSvc.GetAudioFeatures(gctx, ref.ID)
		if err != nil {
			return nil
		}
		features = f
		return nil
	})

	_ = g.Wait() // legs never return errors
	return bpm, features
}

// EnrichTracklist fetches BPM and audio features for every track of a
// release, one track at a time, showing a progress bar on a terminal.
func EnrichTracklist(ctx context.Context, svc *Context, artist string, tracks []discogs.TrackInfo) []EnrichedTrack {
	enriched := make([]EnrichedTrack, 0, len(tracks))

	var bar *pb.ProgressBar
	if shared.IsTTY() {
		bar = pb.StartNew(len(tracks))
	}

	for _, track := range tracks {
		bpm, features := fetchTrackExtras(ctx, svc.Services.BPM, svc.Services.MusicBrainz, svc.Services.Features, artist, track.Title)
		enriched = append(enriched, EnrichedTrack{
			Position: track.Position,
			Title:    track.Title,
			Duration: track.Duration,
			BPM:      bpm,
			Features: features,
		})
		if bar != nil {
			bar.Increment()
		}
	}

	if bar != nil {
		bar.Finish()
	}
	return enriched
}
