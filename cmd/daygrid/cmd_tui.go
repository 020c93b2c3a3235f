package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/daygrid/internal/logging"
	"github.com/sandeepkv93/daygrid/internal/prefs"
	"github.com/sandeepkv93/daygrid/internal/scheduler"
	"github.com/sandeepkv93/daygrid/internal/update"
)

type TuiCmd struct {
	flags *Flags
}

func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	engine := scheduler.NewEngine(cfg.SchedulerBuffer, logging.Component("scheduler"))
	engine.Start()
	defer engine.Stop()

	opts := update.OptionsFromConfig(cfg, update.DefaultOptions())
	opts.Store = store
	opts.Prefs = prefs.NewStore(cfg.PrefsPath)
	opts.Scheduler = engine
	opts.Logger = logging.Component("tui")

	program := tea.NewProgram(update.NewModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
