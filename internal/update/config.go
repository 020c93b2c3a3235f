package update

import (
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/config"
	"github.com/sandeepkv93/daygrid/internal/prefs"
	"github.com/sandeepkv93/daygrid/internal/scheduler"
	"github.com/sandeepkv93/daygrid/internal/tasks"
)

// NudgeTime is the local time of day of the daily reminder.
type NudgeTime struct {
	Enabled bool
	Hour    int
	Minute  int
}

type Options struct {
	Store     *tasks.Store
	Prefs     *prefs.Store
	Scheduler *scheduler.Engine
	Clock     calendar.Clock
	Week      calendar.Week
	Theme     prefs.Theme
	Nudge     NudgeTime
	Logger    zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		Clock:  calendar.SystemClock{},
		Week:   calendar.SundayWeek,
		Theme:  prefs.ThemeLight,
		Logger: zerolog.Nop(),
	}
}

// OptionsFromConfig fills the settings that come from cfg. Store, Prefs and
// Scheduler are left for the caller to wire.
func OptionsFromConfig(cfg *config.Config, base Options) Options {
	opts := base
	if cfg == nil {
		return opts
	}
	opts.Week = cfg.Week()
	opts.Theme = cfg.DefaultTheme()
	if h, mm, ok := cfg.Nudge(); ok {
		opts.Nudge = NudgeTime{Enabled: true, Hour: h, Minute: mm}
	}
	return opts
}
