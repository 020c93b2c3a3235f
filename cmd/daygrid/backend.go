package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/daygrid/internal/config"
	"github.com/sandeepkv93/daygrid/internal/logging"
	"github.com/sandeepkv93/daygrid/internal/remote"
	"github.com/sandeepkv93/daygrid/internal/session"
	"github.com/sandeepkv93/daygrid/internal/storage"
	"github.com/sandeepkv93/daygrid/internal/tasks"
)

// openStore builds the task store for cfg.Mode. The returned func releases
// the backend.
func openStore(cfg *config.Config) (*tasks.Store, func(), error) {
	backend, closer, err := openBackend(cfg, logging.Component("backend"))
	if err != nil {
		return nil, func() {}, err
	}
	store := tasks.NewStore(backend, session.Static{User: cfg.User}, logging.Component("store"))
	return store, closer, nil
}

func openBackend(cfg *config.Config, logger zerolog.Logger) (tasks.Backend, func(), error) {
	switch cfg.Mode {
	case config.ModeSQLite:
		repo, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.DBPath, err)
		}
		return tasks.NewRowBackend(repo, logger), func() { _ = repo.Close() }, nil
	case config.ModeRemote:
		client, err := remote.New(cfg.ServerURL, cfg.Token, remote.WithLogger(logging.Component("remote")))
		if err != nil {
			return nil, nil, fmt.Errorf("remote client: %w", err)
		}
		return tasks.NewRowBackend(client, logger), func() {}, nil
	default:
		return tasks.NewMemoryBackend(), func() {}, nil
	}
}
