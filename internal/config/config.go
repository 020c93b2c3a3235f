package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/prefs"
)

type Mode string

const (
	ModeLocal  Mode = "local"
	ModeSQLite Mode = "sqlite"
	ModeRemote Mode = "remote"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeLocal, ModeSQLite, ModeRemote:
		return true
	default:
		return false
	}
}

type Config struct {
	Mode            Mode              `yaml:"mode"`
	DataDir         string            `yaml:"-"`
	DBPath          string            `yaml:"db_path"`
	ServerURL       string            `yaml:"server_url"`
	ListenAddr      string            `yaml:"listen_addr"`
	User            string            `yaml:"user"`
	Token           string            `yaml:"token"`
	Tokens          map[string]string `yaml:"tokens"`
	WeekStart       string            `yaml:"week_start"`
	Theme           string            `yaml:"theme"`
	PrefsPath       string            `yaml:"prefs_path"`
	NudgeAt         string            `yaml:"nudge_at"`
	SchedulerBuffer int               `yaml:"scheduler_buffer"`
}

func DefaultConfig() Config {
	return Config{
		Mode:            ModeLocal,
		ListenAddr:      "127.0.0.1:8420",
		User:            "local",
		Tokens:          map[string]string{},
		WeekStart:       "sunday",
		Theme:           string(prefs.ThemeLight),
		SchedulerBuffer: 64,
	}
}

// Load reads the YAML file at configPath (a missing file means defaults),
// applies DAYGRID_* environment overrides, fills derived paths under dataDir
// and validates the result.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}
	cfg.DataDir = dataDir

	cfg = FromEnv(cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Write stores cfg as YAML at path, creating parent directories. The file
// may hold tokens so it is written owner-only.
func Write(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Mode == "" {
		c.Mode = defaults.Mode
	}
	if c.ListenAddr == "" {
		c.ListenAddr = defaults.ListenAddr
	}
	if c.WeekStart == "" {
		c.WeekStart = defaults.WeekStart
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.SchedulerBuffer == 0 {
		c.SchedulerBuffer = defaults.SchedulerBuffer
	}
	if c.Tokens == nil {
		c.Tokens = map[string]string{}
	}
	if c.DBPath == "" && c.DataDir != "" {
		c.DBPath = filepath.Join(c.DataDir, "daygrid.db")
	}
	if c.PrefsPath == "" && c.DataDir != "" {
		c.PrefsPath = filepath.Join(c.DataDir, "prefs.yaml")
	}
}

func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("mode", string(c.Mode), validMode),
		criterio.Run("week_start", c.WeekStart, validWeekStart),
		criterio.Run("theme", c.Theme, validTheme),
		criterio.Run("nudge_at", c.NudgeAt, validClock),
		c.validateLimits(),
		c.validateBackend(),
		c.validateTokens(),
	)
}

func (c *Config) validateBackend() error {
	var errs criterio.FieldErrorsBuilder
	switch c.Mode {
	case ModeSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			errs = errs.Append("db_path", fmt.Errorf("required in sqlite mode"))
		}
	case ModeRemote:
		if err := validServerURL(c.ServerURL); err != nil {
			errs = errs.Append("server_url", err)
		}
		if strings.TrimSpace(c.Token) == "" {
			errs = errs.Append("token", fmt.Errorf("required in remote mode"))
		}
	}
	return errs.ToError()
}

func (c *Config) validateLimits() error {
	var errs criterio.FieldErrorsBuilder
	if c.SchedulerBuffer < 1 {
		errs = errs.Append("scheduler_buffer", fmt.Errorf("must be at least 1"))
	}
	return errs.ToError()
}

func (c *Config) validateTokens() error {
	var errs criterio.FieldErrorsBuilder
	for token, user := range c.Tokens {
		if strings.TrimSpace(token) == "" {
			errs = errs.Append("tokens", fmt.Errorf("empty token"))
		}
		if strings.TrimSpace(user) == "" {
			errs = errs.Append(fmt.Sprintf("tokens[%s]", mask(token)), fmt.Errorf("user id is required"))
		}
	}
	return errs.ToError()
}

// Week returns the configured week start. Validate guarantees it parses.
func (c *Config) Week() calendar.Week {
	w, err := calendar.ParseWeekStart(c.WeekStart)
	if err != nil {
		return calendar.SundayWeek
	}
	return w
}

func (c *Config) DefaultTheme() prefs.Theme {
	t, err := prefs.ParseTheme(c.Theme)
	if err != nil {
		return prefs.ThemeLight
	}
	return t
}

// Nudge returns the daily nudge time of day, or ok=false when disabled.
func (c *Config) Nudge() (hour, minute int, ok bool) {
	if strings.TrimSpace(c.NudgeAt) == "" {
		return 0, 0, false
	}
	t, err := time.Parse("15:04", strings.TrimSpace(c.NudgeAt))
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

func validMode(raw string) error {
	if !Mode(raw).IsValid() {
		return fmt.Errorf("must be one of local, sqlite, remote; got %q", raw)
	}
	return nil
}

func validWeekStart(raw string) error {
	_, err := calendar.ParseWeekStart(raw)
	return err
}

func validTheme(raw string) error {
	_, err := prefs.ParseTheme(raw)
	return err
}

func validClock(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if _, err := time.Parse("15:04", strings.TrimSpace(raw)); err != nil {
		return fmt.Errorf("must be HH:MM, got %q", raw)
	}
	return nil
}

func validServerURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("required in remote mode")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must be an http or https url")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func mask(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:2] + "****"
}
