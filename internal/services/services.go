package services

import (
	"fmt"
	"net/http"

	"discogs-cli/internal/api/discogs"
	"discogs-cli/internal/api/getsongbpm"
	"discogs-cli/internal/api/musicbrainz"
	"discogs-cli/internal/api/reccobeats"
	"discogs-cli/internal/config"
	"discogs-cli/internal/core/output"
	"discogs-cli/internal/interfaces"
	"discogs-cli/internal/shared"
)

// Container holds all application services
type Container struct {
	Config      *config.Config
	Discogs     interfaces.DiscogsService
	MusicBrainz interfaces.MusicBrainzService
	BPM         interfaces.BPMService
	Features    interfaces.AudioFeaturesService
	Output      interfaces.OutputService
	Logger      interfaces.LoggerService
}

// NewContainer creates a service container with all services initialized
func NewContainer(cfg *config.Config, httpClient *http.Client) *Container {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.RequestTimeout}
	}

	logger := NewConsoleLogger()

	return &Container{
		Config:      cfg,
		Discogs:     discogs.NewClient(cfg.DiscogsToken(), httpClient),
		MusicBrainz: musicbrainz.NewClient(),
		BPM:         getsongbpm.NewClient(cfg.GetSongBPMKey(), httpClient),
		Features:    reccobeats.NewClient(httpClient),
		Output:      output.NewWriter(cfg.OutputDir()),
		Logger:      logger,
	}
}

// ConsoleLogger writes styled messages to stdout
type ConsoleLogger struct {
	debugMode bool
}

func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{debugMode: false}
}

func (cl *ConsoleLogger) Info(message string, args ...interface{}) {
	shared.ColorInfo.Printf(message+"\n", args...)
}

func (cl *ConsoleLogger) Warning(message string, args ...interface{}) {
	shared.ColorWarning.Printf("⚠️ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Error(message string, args ...interface{}) {
	shared.ColorError.Printf("❌ "+message+"\n", args...)
}

func (cl *ConsoleLogger) Debug(message string, args ...interface{}) {
	if cl.debugMode {
		fmt.Printf("🐛 DEBUG: "+message+"\n", args...)
	}
}

func (cl *ConsoleLogger) Success(message string, args ...interface{}) {
	shared.ColorSuccess.Printf("✅ "+message+"\n", args...)
}

func (cl *ConsoleLogger) SetDebugMode(enabled bool) {
	cl.debugMode = enabled
}
