package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"discogs-cli/internal/api/discogs"
	"discogs-cli/internal/interfaces"
	"discogs-cli/internal/shared"
)

// NewCommandRegistry assembles the full command set. Called once at
// startup; a name/alias collision here is a programming error and fails
// fast.
func NewCommandRegistry() (*Registry, error) {
	var registry *Registry

	commands := []*Command{
		{
			Name:        "search",
			Aliases:     []string{"s", "find"},
			MinArgs:     1,
			Usage:       `search <query> [--type artist|release|master|label] [--per-page N]`,
			Description: "Search the Discogs database",
			Handler:     handleSearch,
		},
		{
			Name:        "tracks",
			Aliases:     []string{"t", "tracklist"},
			MinArgs:     1,
			Usage:       "tracks [master|release] <id>",
			Description: "Fetch a tracklist with BPM and audio features",
			Handler:     handleTracks,
		},
		{
			Name:        "settings",
			Aliases:     []string{"options"},
			MinArgs:     0,
			Usage:       "settings",
			Description: "Interactive settings menu",
			Handler:     handleSettings,
		},
		{
			Name:        "set",
			MinArgs:     1,
			Usage:       "set <option> [value]",
			Description: "Change a session setting (type, per_page, tracks_type, tracks_output, verbose)",
			Handler:     handleSet,
		},
		{
			Name:        "clean",
			MinArgs:     0,
			Usage:       "clean",
			Description: "Remove generated files from the output directories",
			Handler:     handleClean,
		},
		{
			Name:        "help",
			Aliases:     []string{"h", "?"},
			MinArgs:     0,
			Usage:       "help",
			Description: "Show this command list",
			Handler: func(ctx context.Context, args []string, sctx *Context) (bool, error) {
				printHelp(registry)
				return true, nil
			},
		},
		{
			Name:        "exit",
			Aliases:     []string{"quit", "q"},
			MinArgs:     0,
			Usage:       "exit",
			Description: "End the session",
			Handler:     handleExit,
		},
	}

	r, err := NewRegistry(commands)
	if err != nil {
		return nil, err
	}
	registry = r
	return r, nil
}

// reportAPIError prints a category-appropriate message for a failed
// service call. Returns false for generic (non-marker) errors so the
// caller can add its own wording.
func reportAPIError(logger interfaces.LoggerService, err error) bool {
	apiErr := shared.AsAPIError(err)
	if apiErr == nil {
		return false
	}
	switch apiErr.Kind {
	case shared.KindRateLimited:
		if apiErr.RetryAfter > 0 {
			logger.Error("Rate limited by %s — try again in %d seconds", apiErr.Service, apiErr.RetryAfter)
		} else {
			logger.Error("Rate limited by %s — try again later", apiErr.Service)
		}
	case shared.KindAuthRequired:
		logger.Error("Authentication required by %s — configure DISCOGS_TOKEN", apiErr.Service)
	case shared.KindNoAPIKey:
		logger.Error("No API key configured for %s", apiErr.Service)
	case shared.KindInvalidAPIKey:
		logger.Error("Invalid API key for %s", apiErr.Service)
	case shared.KindUnavailable:
		logger.Error("%s is temporarily unavailable", apiErr.Service)
	case shared.KindNotFound:
		logger.Error("Could not fetch — not found")
	default:
		logger.Error("Could not fetch: %v", err)
	}
	return true
}

// handleSearch runs a database search. Inline --type and --per-page
// override the session flags for this invocation only.
func handleSearch(ctx context.Context, args []string, sctx *Context) (bool, error) {
	logger := sctx.Services.Logger

	searchType := sctx.Flags.SearchType
	perPage := sctx.Flags.PerPage
	var queryParts []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--type":
			if i+1 >= len(args) {
				logger.Error("--type needs a value")
				return true, nil
			}
			i++
			setting := Schema["type"]
			if !setting.Validate(args[i]) {
				logger.Error("Invalid type %q: %s", args[i], setting.ErrMsg)
				return true, nil
			}
			searchType = setting.Transform(args[i]).(string)
		case "--per-page":
			if i+1 >= len(args) {
				logger.Error("--per-page needs a value")
				return true, nil
			}
			i++
			setting := Schema["per_page"]
			if !setting.Validate(args[i]) {
				logger.Error("Invalid per-page %q: %s", args[i], setting.ErrMsg)
				return true, nil
			}
			perPage = setting.Transform(args[i]).(int)
		default:
			queryParts = append(queryParts, args[i])
		}
	}

	query := strings.Join(queryParts, " ")
	if query == "" {
		logger.Error("Missing search query")
		return true, nil
	}

	if searchType == TypeUnset {
		logger.Info("🔎 Searching for '%s'...", query)
	} else {
		logger.Info("🔎 Searching for '%s' (type: %s)...", query, searchType)
	}

	response, err := sctx.Services.Discogs.Search(ctx, query, searchType, perPage)
	if err != nil {
		if !reportAPIError(logger, err) {
			logger.Error("Search failed: %v", err)
		}
		return true, nil
	}

	if len(response.Results) == 0 {
		logger.Warning("No results found.")
		return true, nil
	}

	logger.Info("Found %d results (showing %d):", response.Pagination.Items, len(response.Results))
	for i, result := range response.Results {
		fmt.Println(discogs.FormatResult(i+1, result))
	}

	params := map[string]string{"query": query, "per_page": strconv.Itoa(perPage)}
	if searchType != TypeUnset {
		params["type"] = searchType
	}
	path, err := sctx.Services.Output.WriteResultJSON("search", params, response.Results)
	if err != nil {
		logger.Warning("Could not save results: %v", err)
	} else {
		logger.Success("Results saved to %s", path)
	}
	return true, nil
}

// handleTracks fetches a tracklist. A bare numeric ID uses the session's
// default source; an explicit master/release token overrides it.
func handleTracks(ctx context.Context, args []string, sctx *Context) (bool, error) {
	logger := sctx.Services.Logger

	source := sctx.Flags.TracksSource
	id := args[0]
	if len(args) >= 2 {
		token := strings.ToLower(args[0])
		if token != TypeMaster && token != TypeRelease {
			logger.Error("Unknown source %q — use master or release", args[0])
			return true, nil
		}
		source = token
		id = args[1]
	}

	if !discogs.IsNumericID(id) {
		logger.Error("Invalid ID %q — a numeric Discogs ID is required", id)
		logger.Info("Usage: tracks [master|release] <id>")
		return true, nil
	}

	logger.Info("🎵 Fetching %s %s...", source, id)

	var release *discogs.Release
	var err error
	if source == TypeMaster {
		release, err = sctx.Services.Discogs.GetMaster(ctx, id)
	} else {
		release, err = sctx.Services.Discogs.GetRelease(ctx, id)
	}
	if err != nil {
		if !reportAPIError(logger, err) {
			logger.Error("Could not fetch %s %s: %v", source, id, err)
		}
		return true, nil
	}

	if len(release.Tracklist) == 0 {
		logger.Warning("No tracklist available for %s %s.", source, id)
		return true, nil
	}

	logger.Info("Enriching %d tracks...", len(release.Tracklist))
	enriched := EnrichTracklist(ctx, sctx, release.ArtistNames(), release.Tracklist)

	rendered := RenderTracklist(release, enriched, sctx.Flags.TracksOutput)
	fmt.Print(rendered)

	params := map[string]string{"source": source, "id": id, "format": sctx.Flags.TracksOutput}
	if path, err := sctx.Services.Output.WriteResultJSON("tracks", params, enriched); err != nil {
		logger.Warning("Could not save results: %v", err)
	} else {
		logger.Success("Results saved to %s", path)
	}
	if path, err := sctx.Services.Output.WriteTracklist(release.ArtistNames(), release.Title, id, sctx.Flags.TracksOutput, rendered); err != nil {
		logger.Warning("Could not save track listing: %v", err)
	} else {
		logger.Success("Track listing saved to %s", path)
	}
	return true, nil
}

// handleSet is the quick-set path: `set <option> <value>`. With only an
// option it displays the current value and the accepted ones.
func handleSet(ctx context.Context, args []string, sctx *Context) (bool, error) {
	logger := sctx.Services.Logger

	setting, ok := LookupSetting(args[0])
	if !ok {
		logger.Error("Unknown setting: %s", args[0])
		logger.Info("Available settings: %s", strings.Join(SettingKeys, ", "))
		return true, nil
	}

	if len(args) == 1 {
		logger.Info("%s (%s) = %s", setting.Key, setting.Label, setting.Format(setting.Current(sctx.Flags)))
		if len(setting.Choices) > 0 {
			values := make([]string, 0, len(setting.Choices))
			for _, choice := range setting.Choices {
				values = append(values, choice.Value)
			}
			logger.Info("Accepted values: %s", strings.Join(values, ", "))
		}
		return true, nil
	}

	formatted, err := ApplySetting(sctx.Flags, args[0], args[1])
	if err != nil {
		// Rejection leaves the flags and the session log untouched.
		logger.Error("%v", err)
		return true, nil
	}

	logger.Success("%s set to %s", setting.Key, formatted)
	if sctx.Log != nil {
		if logErr := sctx.Log.Append(fmt.Sprintf("setting changed: %s=%s", setting.Key, formatted)); logErr != nil {
			logger.Warning("Could not write session log: %v", logErr)
		}
	}
	sctx.refreshPrompt()
	return true, nil
}

// handleSettings is the interactive menu over the same schema.
func handleSettings(ctx context.Context, args []string, sctx *Context) (bool, error) {
	logger := sctx.Services.Logger

	for {
		shared.ColorHeader.Println("Session settings")
		for i, key := range SettingKeys {
			setting := Schema[key]
			fmt.Printf("%d. %-14s %-26s = %s\n", i+1, setting.Key, "("+setting.Label+")", setting.Format(setting.Current(sctx.Flags)))
		}

		choice := shared.GetUserInput(fmt.Sprintf("Select a setting to change (1-%d, or q to go back)", len(SettingKeys)), "q")
		if choice == "q" || choice == "" {
			return true, nil
		}
		index, err := strconv.Atoi(choice)
		if err != nil || index < 1 || index > len(SettingKeys) {
			logger.Error("Invalid selection: %s", choice)
			continue
		}

		setting := Schema[SettingKeys[index-1]]
		var raw string
		if len(setting.Choices) > 0 {
			for i, c := range setting.Choices {
				fmt.Printf("  %d. %s\n", i+1, c.Display)
			}
			pick := shared.GetUserInput(fmt.Sprintf("Choose (1-%d)", len(setting.Choices)), "")
			pickIndex, err := strconv.Atoi(pick)
			if err != nil || pickIndex < 1 || pickIndex > len(setting.Choices) {
				logger.Error("Invalid selection: %s", pick)
				continue
			}
			raw = setting.Choices[pickIndex-1].Value
		} else {
			raw = shared.GetUserInput(fmt.Sprintf("New value for %s", setting.Key), "")
		}

		formatted, err := ApplySetting(sctx.Flags, setting.Key, raw)
		if err != nil {
			logger.Error("%v", err)
			continue
		}
		logger.Success("%s set to %s", setting.Key, formatted)
		if sctx.Log != nil {
			_ = sctx.Log.Append(fmt.Sprintf("setting changed: %s=%s", setting.Key, formatted))
		}
		sctx.refreshPrompt()
	}
}

// handleClean removes generated files after confirmation.
func handleClean(ctx context.Context, args []string, sctx *Context) (bool, error) {
	logger := sctx.Services.Logger

	if shared.IsTTY() {
		if !shared.GetYesNoInput(fmt.Sprintf("Remove all generated files under %s? (y/n)", sctx.Services.Output.Root()), "n") {
			logger.Info("Nothing removed.")
			return true, nil
		}
	}

	removed, err := sctx.Services.Output.Clean()
	if err != nil {
		logger.Error("Clean failed: %v", err)
		return true, nil
	}
	logger.Success("Removed %d files", removed)
	if sctx.Log != nil {
		_ = sctx.Log.Append(fmt.Sprintf("cleaned output directories (%d files)", removed))
	}
	return true, nil
}

func handleExit(ctx context.Context, args []string, sctx *Context) (bool, error) {
	if sctx.Log != nil {
		_ = sctx.Log.Append("session ended")
	}
	sctx.Services.Logger.Info("👋 Goodbye!")
	return false, nil
}

func printHelp(registry *Registry) {
	shared.ColorHeader.Println("Available commands")
	for _, cmd := range registry.Commands() {
		aliases := ""
		if len(cmd.Aliases) > 0 {
			aliases = " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		fmt.Printf("  %-28s %s%s\n", cmd.Usage, cmd.Description, aliases)
	}
}
