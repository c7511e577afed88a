package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"gotone/host/config"
	"gotone/protocol"
)

// logger is replaced by initLogger before any command runs
var logger = slog.Default()

func initLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func main() {
	app := &cli.App{
		Name:    "gotone",
		Usage:   "Plan, preview and play piezo buzzer melodies",
		Version: protocol.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML board configuration",
				EnvVars: []string{"GOTONE_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			initLogger(c.Bool("verbose"))
			return nil
		},
		Commands: []*cli.Command{
			Play(),
			Plan(),
			Notes(),
			Check(),
			Commands(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error("gotone failed", "err", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the --config file, or the defaults
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("board", "clock_hz", cfg.Board.ClockHz, "max_divider", cfg.Board.MaxDivider)
	return cfg, nil
}
