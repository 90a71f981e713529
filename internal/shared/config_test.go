package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Sleeve.Width != 1000 || config.Sleeve.Height != 1000 {
			t.Errorf("expected 1000x1000 canvas, got %dx%d", config.Sleeve.Width, config.Sleeve.Height)
		}

		if config.Sleeve.GridSize != 5 {
			t.Errorf("expected grid size 5, got %d", config.Sleeve.GridSize)
		}

		if config.Sleeve.Columns != 2 {
			t.Errorf("expected 2 tracklist columns, got %d", config.Sleeve.Columns)
		}

		if config.Sleeve.CollageColumns != 5 {
			t.Errorf("expected 5 collage columns, got %d", config.Sleeve.CollageColumns)
		}

		if config.Fonts.TitleSize != 36 || config.Fonts.TrackSize != 20 {
			t.Errorf("expected font sizes 36/20, got %v/%v", config.Fonts.TitleSize, config.Fonts.TrackSize)
		}

		if config.Cache.Enabled {
			t.Error("expected cache to be disabled by default")
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Sleeve.OutputDir != DefaultConfig().Sleeve.OutputDir {
			t.Errorf("created config output dir doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[sleeve]
width = 1200
output_dir = "out"

[cache]
enabled = true
path = "/tmp/art.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Sleeve.Width != 1200 {
			t.Errorf("expected width 1200, got %d", config.Sleeve.Width)
		}

		if config.Sleeve.Height != 1000 {
			t.Errorf("expected height to keep default 1000, got %d", config.Sleeve.Height)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}

		if !config.Cache.Enabled || config.Cache.Path != "/tmp/art.db" {
			t.Errorf("expected cache settings to load, got %+v", config.Cache)
		}
	})

	t.Run("LoadConfig rejects invalid layout", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[sleeve]\ngrid_size = 1\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("SaveConfig round trips", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "saved_id"
		config.Sleeve.OutputDir = "sleeves"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}

		if loaded.Credentials.Spotify.ClientID != "saved_id" || loaded.Sleeve.OutputDir != "sleeves" {
			t.Errorf("saved values not preserved: %+v", loaded)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv(EnvSpotifyClientID, "env_id")
		t.Setenv(EnvSpotifyClientSecret, "env_secret")

		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "file_id"
		config.ApplyEnv()

		if config.Credentials.Spotify.ClientID != "env_id" {
			t.Errorf("expected env client id, got %s", config.Credentials.Spotify.ClientID)
		}

		m := config.Credentials.Spotify.Map()
		if m["client_secret"] != "env_secret" {
			t.Errorf("expected env client secret in map, got %v", m)
		}
	})
}
