package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/config"
	"github.com/sandeepkv93/daygrid/internal/stats"
	"github.com/sandeepkv93/daygrid/internal/tasks"
)

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")

	assert.Equal(t, filepath.Join("/cfg", "daygrid", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/data", "daygrid"), DefaultDataDir())
}

func TestOpenBackendLocal(t *testing.T) {
	cfg := config.DefaultConfig()
	backend, closer, err := openBackend(&cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closer()
	assert.IsType(t, &tasks.MemoryBackend{}, backend)
}

func TestOpenStoreSQLitePersists(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeSQLite
	cfg.DBPath = filepath.Join(t.TempDir(), "daygrid.db")
	ctx := context.Background()

	store, closer, err := openStore(&cfg)
	require.NoError(t, err)
	_, err = store.Add("2024-06-10", "persisted", "")
	require.NoError(t, err)
	require.NoError(t, store.Commit(ctx, "2024-06-10"))
	closer()

	reopened, closer, err := openStore(&cfg)
	require.NoError(t, err)
	defer closer()
	require.NoError(t, reopened.Load(ctx))
	got := reopened.Day("2024-06-10")
	require.Len(t, got, 1)
	assert.Equal(t, "persisted", got[0].Title)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	err := printSummary(&buf, stats.Summary{
		Today:         "2024-06-12",
		TodayProgress: 50,
		Week:          stats.Counts{Completed: 3, Total: 4},
		WeekRate:      75,
		MissedDays:    []calendar.Key{"2024-06-10"},
		Lifetime:      stats.Totals{TotalTasks: 10, CompletedTasks: 7},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2024-06-12  50%  Keep going!")
	assert.Contains(t, out, "3/4 completed (75%)")
	assert.Contains(t, out, "missed     1 days")
	assert.Contains(t, out, "7/10 completed")
}

func TestInitAnswersApply(t *testing.T) {
	base := config.DefaultConfig()
	answers := answersFromConfig(base)
	answers.Mode = "remote"
	answers.ServerURL = " https://tasks.example.com "
	answers.Token = "secret"
	answers.WeekStart = "monday"
	answers.NudgeAt = "21:00"

	cfg, err := answers.apply(base)
	require.NoError(t, err)
	assert.Equal(t, config.ModeRemote, cfg.Mode)
	assert.Equal(t, "https://tasks.example.com", cfg.ServerURL)
	assert.Equal(t, "monday", cfg.WeekStart)
	assert.Equal(t, "local", cfg.User)
}

func TestInitAnswersDropRemoteFieldsOutsideRemoteMode(t *testing.T) {
	answers := answersFromConfig(config.DefaultConfig())
	answers.Mode = "sqlite"
	answers.ServerURL = "https://tasks.example.com"
	answers.Token = "secret"

	base := config.DefaultConfig()
	base.DBPath = "/tmp/daygrid.db"
	cfg, err := answers.apply(base)
	require.NoError(t, err)
	assert.Empty(t, cfg.ServerURL)
	assert.Empty(t, cfg.Token)
}

func TestInitAnswersRejectInvalid(t *testing.T) {
	answers := answersFromConfig(config.DefaultConfig())
	answers.Mode = "remote"

	_, err := answers.apply(config.DefaultConfig())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"server_url", "token"}, fields)
}
