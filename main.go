package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"discogs-cli/internal/config"
	"discogs-cli/internal/core/session"
	"discogs-cli/internal/shared"
)

const toolVersion = "1.0.0"

var (
	configFile string
	debug      bool

	searchType string
	perPage    int
	source     string
	outFormat  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:     "discogs-cli",
	Version: toolVersion,
	Short:   "Query the Discogs database for releases, tracklists, and audio metadata.",
	Long: fmt.Sprintf(`discogs-cli (v%s)

Search Discogs, fetch tracklists, and enrich them with BPM (GetSongBPM)
and audio features (MusicBrainz + ReccoBeats). Results are printed and
persisted as JSON and formatted track listings.

Run without a subcommand for an interactive session.`, toolVersion),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start an interactive session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the Discogs database.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		return s.RunOnce(context.Background(), "search", args, func(flags *session.SessionFlags) {
			if cmd.Flags().Changed("type") {
				flags.SearchType = searchType
			}
			if cmd.Flags().Changed("per-page") {
				flags.PerPage = perPage
			}
			if verbose {
				flags.Verbose = true
			}
		})
	},
}

var tracksCmd = &cobra.Command{
	Use:   "tracks [release_or_master_id]",
	Short: "Fetch a tracklist with BPM and audio features.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		return s.RunOnce(context.Background(), "tracks", args, func(flags *session.SessionFlags) {
			if cmd.Flags().Changed("source") {
				flags.TracksSource = source
			}
			if cmd.Flags().Changed("output-format") {
				flags.TracksOutput = outFormat
			}
			if verbose {
				flags.Verbose = true
			}
		})
	},
}

func newSession() (*session.Session, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	s, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	s.SetDebug(debug || shared.IsDebugMode())
	return s, nil
}

func runInteractive() error {
	s, err := newSession()
	if err != nil {
		return err
	}
	return s.Run(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultConfigFile, "Path to the key=value config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	searchCmd.Flags().StringVar(&searchType, "type", "", "Filter by type (artist, release, master, label)")
	searchCmd.Flags().IntVar(&perPage, "per-page", 5, "Number of results per page")
	searchCmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose output")

	tracksCmd.Flags().StringVar(&source, "source", "master", "Tracklist source (master or release)")
	tracksCmd.Flags().StringVar(&outFormat, "output-format", "human", "Output format (human, csv, pipe, markdown)")
	tracksCmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose output")

	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(tracksCmd)
}

func main() {
	shared.InitializeColors()
	if err := rootCmd.Execute(); err != nil {
		shared.ColorError.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}
