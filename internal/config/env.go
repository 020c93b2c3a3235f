package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv overrides cfg with any DAYGRID_* variables that are set.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("DAYGRID_MODE"); ok {
		cfg.Mode = Mode(strings.ToLower(v))
	}
	if v, ok := getEnvString("DAYGRID_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("DAYGRID_SERVER_URL"); ok {
		cfg.ServerURL = v
	}
	if v, ok := getEnvString("DAYGRID_LISTEN_ADDR"); ok {
		cfg.ListenAddr = v
	}
	if v, ok := getEnvString("DAYGRID_USER"); ok {
		cfg.User = v
	}
	if v, ok := getEnvString("DAYGRID_TOKEN"); ok {
		cfg.Token = v
	}
	if v, ok := getEnvString("DAYGRID_WEEK_START"); ok {
		cfg.WeekStart = v
	}
	if v, ok := getEnvString("DAYGRID_THEME"); ok {
		cfg.Theme = v
	}
	if v, ok := getEnvString("DAYGRID_PREFS_PATH"); ok {
		cfg.PrefsPath = v
	}
	if v, ok := getEnvString("DAYGRID_NUDGE_AT"); ok {
		cfg.NudgeAt = v
	}
	if v, ok := getEnvBool("DAYGRID_NO_NUDGE"); ok && v {
		cfg.NudgeAt = ""
	}
	if v, ok := getEnvInt("DAYGRID_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
