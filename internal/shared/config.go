package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	EnvSpotifyClientID     = "SPOTIFY_CLIENT_ID"
	EnvSpotifyClientSecret = "SPOTIFY_CLIENT_SECRET"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Sleeve      SleeveConfig      `toml:"sleeve"`
	Fonts       FontsConfig       `toml:"fonts"`
	Artwork     ArtworkConfig     `toml:"artwork"`
	Cache       CacheConfig       `toml:"cache"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials for the client credentials flow.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// Map returns the credentials in the form expected by services.NewSpotifyService.
func (s SpotifyConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     s.ClientID,
		"client_secret": s.ClientSecret,
	}
}

// SleeveConfig contains canvas dimensions, layout policy and output location.
type SleeveConfig struct {
	Width          int    `toml:"width"`
	Height         int    `toml:"height"`
	OutputDir      string `toml:"output_dir"`
	GridSize       int    `toml:"grid_size"`
	Columns        int    `toml:"columns"`
	CollageColumns int    `toml:"collage_columns"`
}

// FontsConfig contains font sizes and optional font file overrides.
type FontsConfig struct {
	TitleSize  float64 `toml:"title_size"`
	TrackSize  float64 `toml:"track_size"`
	TitlePath  string  `toml:"title_path"`
	TrackPath  string  `toml:"track_path"`
	ArtistPath string  `toml:"artist_path"`
}

// ArtworkConfig contains album-art download settings.
type ArtworkConfig struct {
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	UserAgent         string  `toml:"user_agent"`
}

// CacheConfig contains settings for the optional SQLite artwork cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes the config as TOML and writes it to path.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides Spotify credentials with SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvSpotifyClientID); v != "" {
		c.Credentials.Spotify.ClientID = v
	}
	if v := os.Getenv(EnvSpotifyClientSecret); v != "" {
		c.Credentials.Spotify.ClientSecret = v
	}
}

// Validate reports layout values that cannot produce an image.
func (c *Config) Validate() error {
	switch {
	case c.Sleeve.Width <= 0 || c.Sleeve.Height <= 0:
		return fmt.Errorf("%w: sleeve width and height must be positive", ErrInvalidConfig)
	case c.Sleeve.GridSize < 2:
		return fmt.Errorf("%w: grid_size must be at least 2", ErrInvalidConfig)
	case c.Sleeve.Columns < 1 || c.Sleeve.CollageColumns < 1:
		return fmt.Errorf("%w: columns must be at least 1", ErrInvalidConfig)
	case c.Fonts.TitleSize <= 0 || c.Fonts.TrackSize <= 0:
		return fmt.Errorf("%w: font sizes must be positive", ErrInvalidConfig)
	}
	return nil
}
