package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/impiccato-bot/config"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// CLI builds the command line of bot. Both binaries share it.
func CLI(bot Bot, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:  ServiceName(bot),
		Usage: "run the " + string(bot) + " Discord bot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file loaded before the configuration",
			},
		},
		Action: func(c *cli.Context) error {
			return Start(c.Context, c.String("config"), c.String("env-file"), bot, stderr)
		},
	}
}

// Start loads the configuration and runs bot until SIGINT or SIGTERM. A
// missing token prints the startup error to stderr and exits with status 1.
func Start(ctx context.Context, configPath, envFile string, bot Bot, stderr io.Writer) error {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load(envFile)

	cfg, err := config.LoadConfig(configPath)
	if errors.Is(err, config.ErrMissingToken) {
		fmt.Fprintln(stderr, "❌ Error: DISCORD_TOKEN not found in environment variables")
		fmt.Fprintln(stderr, "Please set the environment variable before running the bot")
		return cli.Exit("", 1)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := NewApp(ctx, cfg, bot)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	runErr := application.Run(ctx)
	closeErr := application.Close()
	return errors.Join(runErr, closeErr)
}
