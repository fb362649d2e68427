package session

import (
	"discogs-cli/internal/config"
	"discogs-cli/internal/core/output"
	"discogs-cli/internal/services"
)

// Search type values. An empty SearchType means no filter.
const (
	TypeArtist  = "artist"
	TypeRelease = "release"
	TypeMaster  = "master"
	TypeLabel   = "label"
	TypeUnset   = ""
)

// Track output format values.
const (
	OutputHuman    = "human"
	OutputCSV      = "csv"
	OutputPipe     = "pipe"
	OutputMarkdown = "markdown"
)

// SessionFlags is the mutable per-session settings record. One instance
// exists per process; the loop owns it and every handler receives the
// same pointer through the Context. Fields only ever hold values that
// passed the corresponding schema validator.
type SessionFlags struct {
	SearchType   string
	PerPage      int
	Verbose      bool
	TracksSource string
	TracksOutput string
}

// NewFlagsFromConfig seeds a flags record from the config getters.
func NewFlagsFromConfig(cfg *config.Config) *SessionFlags {
	return &SessionFlags{
		SearchType:   cfg.SearchType(),
		PerPage:      cfg.PerPage(),
		Verbose:      cfg.Verbose(),
		TracksSource: cfg.TracksSource(),
		TracksOutput: cfg.TracksOutput(),
	}
}

// Context is passed to every command handler. Handlers may mutate the
// flags record but must not replace the pointer.
type Context struct {
	Services      *services.Container
	Flags         *SessionFlags
	Log           *output.SessionLog
	RefreshPrompt func()
}

// refreshPrompt is safe to call when no prompt is displayed (one-shot mode).
func (c *Context) refreshPrompt() {
	if c.RefreshPrompt != nil {
		c.RefreshPrompt()
	}
}
