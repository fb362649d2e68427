package session

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"discogs-cli/internal/config"
	"discogs-cli/internal/core/output"
	"discogs-cli/internal/services"
	"discogs-cli/internal/shared"
)

const banner = `
─────────────────────────────────────────────
  discogs-cli — Discogs database explorer
  Type 'help' for commands, 'exit' to leave.
─────────────────────────────────────────────`

// Session owns the interactive loop and the session-wide state.
type Session struct {
	container  *services.Container
	flags      *SessionFlags
	dispatcher *Dispatcher
	log        *output.SessionLog
	prompt     string
}

// NewSession wires a session from loaded configuration.
func NewSession(cfg *config.Config) (*Session, error) {
	registry, err := NewCommandRegistry()
	if err != nil {
		return nil, err
	}
	return &Session{
		container:  services.NewContainer(cfg, nil),
		flags:      NewFlagsFromConfig(cfg),
		dispatcher: NewDispatcher(registry),
	}, nil
}

// SetDebug toggles debug logging on the container's console logger.
func (s *Session) SetDebug(enabled bool) {
	s.container.Logger.SetDebugMode(enabled)
}

func (s *Session) buildPrompt() {
	searchType := s.flags.SearchType
	if searchType == TypeUnset {
		searchType = "all"
	}
	verbose := ""
	if s.flags.Verbose {
		verbose = " +v"
	}
	s.prompt = fmt.Sprintf("discogs [%s/%d/%s/%s%s]> ", searchType, s.flags.PerPage, s.flags.TracksSource, s.flags.TracksOutput, verbose)
}

// prepare ensures output directories exist, starts the session log, and
// reports credential status. Shared by Run and RunOnce.
func (s *Session) prepare() (*Context, error) {
	logger := s.container.Logger

	if err := s.container.Output.EnsureDirs(); err != nil {
		return nil, err
	}

	log, err := output.NewSessionLog(s.container.Output.Root())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session log: %w", err)
	}
	s.log = log

	if s.container.Discogs.HasToken() {
		logger.Info("Discogs token configured (%s)", shared.MaskSecret(s.container.Config.DiscogsToken()))
	} else {
		logger.Warning("No Discogs token configured — searches will be heavily rate limited")
	}
	if s.container.BPM.HasKey() {
		logger.Info("GetSongBPM key configured")
	} else {
		logger.Info("GetSongBPM key not configured — BPM lookups disabled")
	}

	sctx := &Context{
		Services:      s.container,
		Flags:         s.flags,
		Log:           s.log,
		RefreshPrompt: s.buildPrompt,
	}
	return sctx, nil
}

// Run starts the interactive session loop. It returns nil on every
// normal termination path (exit command, EOF); SIGINT exits the process
// directly with code 0.
func (s *Session) Run(ctx context.Context) error {
	logger := s.container.Logger
	fmt.Println(banner)

	if s.container.Config.AlwaysClean() {
		if removed, err := s.container.Output.Clean(); err == nil && removed > 0 {
			logger.Info("Cleaned %d files from previous sessions", removed)
		}
	}

	sctx, err := s.prepare()
	if err != nil {
		return err
	}

	// Ctrl-C at the prompt is a normal way to leave, not an error.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupts
		_ = s.log.Append("session ended by user")
		fmt.Println()
		logger.Info("👋 Goodbye!")
		os.Exit(0)
	}()

	s.buildPrompt()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		shared.ColorPrompt.Print(s.prompt)
		if !scanner.Scan() {
			_ = s.log.Append("session ended (input closed)")
			fmt.Println()
			logger.Info("👋 Goodbye!")
			return nil
		}

		keepGoing, err := s.dispatcher.Execute(ctx, scanner.Text(), sctx)
		if err != nil {
			// A handler defect must not kill the session.
			logger.Error("Command failed: %v", err)
			_ = s.log.Append(fmt.Sprintf("error: %v", err))
			continue
		}
		if !keepGoing {
			return nil
		}
	}
}

// RunOnce executes exactly one command outside the loop: same context
// construction, same handler, no prompt. overrides, when non-nil, is
// applied to the seeded flags before the handler runs (pre-parsed CLI
// flags land here). Unexpected handler errors propagate to the caller.
func (s *Session) RunOnce(ctx context.Context, name string, args []string, overrides func(*SessionFlags)) error {
	if overrides != nil {
		overrides(s.flags)
	}

	sctx, err := s.prepare()
	if err != nil {
		return err
	}

	cmd := s.dispatcher.registry.Find(name)
	if cmd == nil {
		return fmt.Errorf("unknown command: %s", name)
	}
	if len(args) < cmd.MinArgs {
		return fmt.Errorf("missing arguments: usage: %s", cmd.Usage)
	}

	_ = s.log.Append("command: " + name + " " + strings.Join(args, " "))
	_, err = cmd.Handler(ctx, args, sctx)
	return err
}
