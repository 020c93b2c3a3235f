package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/daygrid/internal/config"
)

type InitCmd struct {
	flags *Flags

	// flags
	yes   bool
	force bool
}

func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

// Register adds the init command to the application
func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Write a config file interactively",
		UsageText: "daygrid init [--yes] [--force]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip prompts and write the current settings",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "overwrite an existing config file",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return app
}

// initAnswers holds the wizard fields as strings so huh can bind to them.
type initAnswers struct {
	Mode      string
	WeekStart string
	Theme     string
	NudgeAt   string
	ServerURL string
	Token     string
	User      string
}

func answersFromConfig(cfg config.Config) initAnswers {
	return initAnswers{
		Mode:      string(cfg.Mode),
		WeekStart: cfg.WeekStart,
		Theme:     cfg.Theme,
		NudgeAt:   cfg.NudgeAt,
		ServerURL: cfg.ServerURL,
		Token:     cfg.Token,
		User:      cfg.User,
	}
}

// apply copies the answers onto base and validates the result. Derived
// paths are left empty so they keep following --data-dir.
func (a initAnswers) apply(base config.Config) (config.Config, error) {
	cfg := base
	cfg.Mode = config.Mode(strings.TrimSpace(a.Mode))
	cfg.WeekStart = strings.TrimSpace(a.WeekStart)
	cfg.Theme = strings.TrimSpace(a.Theme)
	cfg.NudgeAt = strings.TrimSpace(a.NudgeAt)
	cfg.ServerURL = strings.TrimSpace(a.ServerURL)
	cfg.Token = strings.TrimSpace(a.Token)
	if user := strings.TrimSpace(a.User); user != "" {
		cfg.User = user
	}
	if cfg.Mode != config.ModeRemote {
		cfg.ServerURL = ""
		cfg.Token = ""
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (cmd *InitCmd) run(ctx context.Context, _ *cli.Command) error {
	path := cmd.flags.ConfigPath
	if _, err := os.Stat(path); err == nil && !cmd.force {
		if cmd.yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", path)
		}
		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(path + "\nOverwrite?").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("init cancelled")
			return nil
		}
	}

	answers := answersFromConfig(*cmd.flags.Config)
	if !cmd.yes {
		if err := promptAnswers(ctx, &answers); err != nil {
			return err
		}
	}

	cfg, err := answers.apply(*cmd.flags.Config)
	if err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}
	// Paths derived from the data dir are not pinned in the file.
	if cfg.DBPath == cmd.flags.Config.DBPath {
		cfg.DBPath = ""
	}
	if cfg.PrefsPath == cmd.flags.Config.PrefsPath {
		cfg.PrefsPath = ""
	}
	if err := config.Write(cfg, path); err != nil {
		return err
	}
	log.Info().Str("path", path).Str("mode", string(cfg.Mode)).Msg("config written")
	fmt.Printf("wrote %s\n", path)
	return nil
}

func promptAnswers(ctx context.Context, a *initAnswers) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage mode").
				Description("local keeps tasks in memory, sqlite persists to a file, remote talks to 'daygrid serve'").
				Options(huh.NewOptions(string(config.ModeLocal), string(config.ModeSQLite), string(config.ModeRemote))...).
				Value(&a.Mode),
			huh.NewSelect[string]().
				Title("First day of the week").
				Options(huh.NewOptions("sunday", "monday")...).
				Value(&a.WeekStart),
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions("light", "dark")...).
				Value(&a.Theme),
			huh.NewInput().
				Title("Daily reminder").
				Description("HH:MM, empty to disable").
				Value(&a.NudgeAt),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Server URL").
				Placeholder("https://tasks.example.com").
				Value(&a.ServerURL),
			huh.NewInput().
				Title("API token").
				EchoMode(huh.EchoModePassword).
				Value(&a.Token),
		).WithHideFunc(func() bool { return a.Mode != string(config.ModeRemote) }),
	)
	return form.RunWithContext(ctx)
}
