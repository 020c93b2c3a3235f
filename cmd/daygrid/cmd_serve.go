package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/daygrid/internal/logging"
	"github.com/sandeepkv93/daygrid/internal/server"
	"github.com/sandeepkv93/daygrid/internal/session"
	"github.com/sandeepkv93/daygrid/internal/storage"
)

type ServeCmd struct {
	flags *Flags

	// flags
	addr string
	db   string
}

func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve the task API backed by SQLite",
		UsageText: "daygrid serve [--addr host:port] [--db path]",
		Description: `Runs the HTTP API that remote mode talks to. Requests authenticate with
"Authorization: Bearer <token>" against the tokens table in the config file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (defaults to listen_addr from config)",
				Sources:     cli.EnvVars("DAYGRID_LISTEN_ADDR"),
				Destination: &cmd.addr,
			},
			&cli.StringFlag{
				Name:        "db",
				Usage:       "SQLite database path (defaults to db_path from config)",
				Destination: &cmd.db,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	// Without an explicit log file the server logs to stdout.
	if cmd.flags.LogFile == "" {
		logger, _, err := logging.New(cmd.flags.LogLevel, "")
		if err != nil {
			return fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger
	}

	addr := cmd.addr
	if addr == "" {
		addr = cfg.ListenAddr
	}
	dbPath := cmd.db
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if len(cfg.Tokens) == 0 {
		log.Warn().Msg("no tokens configured, every API request will be rejected")
	}

	repo, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = repo.Close() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(repo, session.Tokens(cfg.Tokens), logging.Component("server"))
	return srv.Run(ctx, addr)
}
