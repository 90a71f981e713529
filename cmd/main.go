package main

import (
	"context"
	"os"

	"github.com/desertthunder/sleeve/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env", "error", err)
	}

	config := shared.DefaultConfig()
	configPath := ""
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(defaultConfigPath); err == nil {
			config = loadedConfig
			configPath = defaultConfigPath
		} else {
			logger.Warn("failed to load config, using defaults", "path", defaultConfigPath, "error", err)
		}
	}
	config.ApplyEnv()

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Logger:     logger,
		Input:      os.Stdin,
		Output:     os.Stdout,
	})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the root command. Without a subcommand it runs [Runner.Make].
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "sleeve",
		Usage:    "Generate printable CD sleeve art from a Spotify playlist",
		Version:  "0.1.0",
		Flags:    makeFlags(true),
		Action:   r.Make,
		Commands: r.register(),
	}
}
