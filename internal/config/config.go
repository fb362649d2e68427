package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	RequestTimeout    = 30 * time.Second
	DefaultConfigFile = "discogs-cli.env"
)

// Config holds the raw key=value pairs from the config file plus any
// environment overrides. Typed access goes through the getter methods.
type Config struct {
	values map[string]string
}

// Load reads a key=value config file. A missing file is not an error;
// the getters then fall back to environment variables and defaults.
func Load(filePath string) (*Config, error) {
	cfg := &Config{values: map[string]string{}}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	values, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.values = values
	return cfg, nil
}

// get returns the value for key, with the environment taking precedence
// over the config file.
func (c *Config) get(key string) string {
	if env := os.Getenv(key); env != "" {
		return env
	}
	return c.values[key]
}

func (c *Config) getString(key, fallback string) string {
	if v := strings.TrimSpace(c.get(key)); v != "" {
		return v
	}
	return fallback
}

func (c *Config) getInt(key string, fallback int) int {
	v := strings.TrimSpace(c.get(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func (c *Config) getBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(c.get(key))) {
	case "true", "on", "1", "yes":
		return true
	case "false", "off", "0", "no":
		return false
	}
	return fallback
}

// DiscogsToken returns the personal access token for the Discogs API.
func (c *Config) DiscogsToken() string {
	return c.getString("DISCOGS_TOKEN", "")
}

// GetSongBPMKey returns the GetSongBPM API key.
func (c *Config) GetSongBPMKey() string {
	return c.getString("GETSONGBPM_API_KEY", "")
}

// SearchType returns the default search type filter ("" means no filter).
func (c *Config) SearchType() string {
	v := strings.ToLower(c.getString("SEARCH_TYPE", ""))
	switch v {
	case "artist", "release", "master", "label":
		return v
	}
	return ""
}

// PerPage returns the default number of search results per page.
func (c *Config) PerPage() int {
	return c.getInt("PER_PAGE", 5)
}

// TracksSource returns the default source for tracklist lookups.
func (c *Config) TracksSource() string {
	v := strings.ToLower(c.getString("TRACKS_SOURCE", "master"))
	if v != "release" {
		v = "master"
	}
	return v
}

// TracksOutput returns the default track-listing output format.
func (c *Config) TracksOutput() string {
	v := strings.ToLower(c.getString("TRACKS_OUTPUT", "human"))
	switch v {
	case "human", "csv", "pipe", "markdown":
		return v
	}
	return "human"
}

// Verbose returns the default verbose-logging flag.
func (c *Config) Verbose() bool {
	return c.getBool("VERBOSE", false)
}

// OutputDir returns the root directory for generated files.
func (c *Config) OutputDir() string {
	return c.getString("OUTPUT_DIR", "output")
}

// AlwaysClean reports whether the output directories should be cleaned
// on session start.
func (c *Config) AlwaysClean() bool {
	return c.getBool("ALWAYS_CLEAN", false)
}

// CreateDirIfNotExists creates a directory if it does not exist
func CreateDirIfNotExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// Set stores a raw value, used when persisting settings back to disk.
func (c *Config) Set(key, value string) {
	c.values[key] = value
}

// Save writes the current values back to a key=value file.
func (c *Config) Save(filePath string) error {
	data, err := godotenv.Marshal(c.values)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := CreateDirIfNotExists(filepath.Dir(filePath)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(filePath, []byte(data+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
