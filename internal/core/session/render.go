package session

import (
	"encoding/csv"
	"fmt"
	"strings"

	"discogs-cli/internal/api/discogs"
)

// RenderTracklist renders an enriched tracklist in the requested output
// format. Unknown formats fall back to human.
func RenderTracklist(release *discogs.Release, tracks []EnrichedTrack, format string) string {
	switch format {
	case OutputCSV:
		return renderCSV(tracks)
	case OutputPipe:
		return renderDelimited(tracks, "|")
	case OutputMarkdown:
		return renderMarkdown(release, tracks)
	default:
		return renderHuman(release, tracks)
	}
}

func bpmString(t EnrichedTrack) string {
	if t.BPM == nil {
		return ""
	}
	return fmt.Sprintf("%d", *t.BPM)
}

func energyString(t EnrichedTrack) string {
	if t.Features == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", t.Features.Energy)
}

func renderHuman(release *discogs.Release, tracks []EnrichedTrack) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — %s", release.ArtistNames(), release.Title)
	if release.Year > 0 {
		fmt.Fprintf(&b, " (%d)", release.Year)
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")

	for _, t := range tracks {
		position := t.Position
		if position == "" {
			position = "-"
		}
		fmt.Fprintf(&b, "%-4s %s", position, t.Title)
		if t.Duration != "" {
			fmt.Fprintf(&b, " (%s)", t.Duration)
		}
		var extras []string
		if t.BPM != nil {
			extras = append(extras, fmt.Sprintf("%d BPM", *t.BPM))
		}
		if t.Features != nil {
			extras = append(extras, fmt.Sprintf("energy %.2f", t.Features.Energy))
		}
		if len(extras) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(extras, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderCSV(tracks []EnrichedTrack) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"position", "title", "duration", "bpm", "energy"})
	for _, t := range tracks {
		_ = w.Write([]string{t.Position, t.Title, t.Duration, bpmString(t), energyString(t)})
	}
	w.Flush()
	return b.String()
}

func renderDelimited(tracks []EnrichedTrack, sep string) string {
	var b strings.Builder
	b.WriteString(strings.Join([]string{"position", "title", "duration", "bpm", "energy"}, sep) + "\n")
	for _, t := range tracks {
		b.WriteString(strings.Join([]string{t.Position, t.Title, t.Duration, bpmString(t), energyString(t)}, sep) + "\n")
	}
	return b.String()
}

func renderMarkdown(release *discogs.Release, tracks []EnrichedTrack) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s — %s\n\n", release.ArtistNames(), release.Title)
	b.WriteString("| # | Title | Duration | BPM | Energy |\n")
	b.WriteString("|---|-------|----------|-----|--------|\n")
	for _, t := range tracks {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			t.Position, strings.ReplaceAll(t.Title, "|", "\\|"), t.Duration, bpmString(t), energyString(t))
	}
	return b.String()
}
