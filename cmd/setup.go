package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/sleeve/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file from the embedded template and initializes the cache database when enabled.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	_, statErr := os.Stat(configPath)
	switch {
	case statErr == nil && !cmd.Bool("force"):
		r.logger.Info("config file exists, leaving it untouched", "path", configPath)
	default:
		if statErr == nil {
			if err := os.Remove(configPath); err != nil {
				return fmt.Errorf("failed to replace config file: %w", err)
			}
		}
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.logger.Info("config file created", "path", configPath)
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return err
	}
	config.ApplyEnv()
	r.config, r.configPath = config, configPath

	r.writePlain("✓ Configuration: %s\n", configPath)

	if config.Cache.Enabled {
		r.logger.Info("initializing artwork cache", "path", config.Cache.Path)
		_, _, closeFn, err := r.openCache(config)
		if err != nil {
			return err
		}
		closeFn()
		r.writePlain("✓ Artwork cache: %s\n", config.Cache.Path)
	}

	if config.Credentials.Spotify.ClientID == "" || config.Credentials.Spotify.ClientSecret == "" {
		r.writePlainln("Next steps:")
		r.writePlain("1. Create an app at https://developer.spotify.com/dashboard\n")
		r.writePlain("2. Add its client_id and client_secret to %s (or set %s / %s in .env)\n",
			configPath, shared.EnvSpotifyClientID, shared.EnvSpotifyClientSecret)
		r.writePlain("3. Run 'sleeve' and paste a playlist link\n")
	}

	return nil
}
