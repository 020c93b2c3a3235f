package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/daygrid/internal/stats"
)

type StatsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

func NewStatsCmd(flags *Flags) *StatsCmd {
	return &StatsCmd{flags: flags}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Print today's progress and weekly statistics",
		UsageText: "daygrid stats [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *StatsCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	summary := stats.New(store.Snapshot(), cfg.Week()).Summary(time.Now())

	if cmd.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	return printSummary(os.Stdout, summary)
}

func printSummary(w io.Writer, s stats.Summary) error {
	_, err := fmt.Fprintf(w, `today      %s  %d%%  %s
this week  %d/%d completed (%d%%)
missed     %d days
lifetime   %d/%d completed
`,
		s.Today, s.TodayProgress, stats.ProgressMessage(s.TodayProgress),
		s.Week.Completed, s.Week.Total, s.WeekRate,
		len(s.MissedDays),
		s.Lifetime.CompletedTasks, s.Lifetime.TotalTasks,
	)
	return err
}
