package configmanager

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	am "github.com/steelcutops/acctadmin/acctadmin/accountmanager"
	"github.com/steelcutops/acctadmin/acctadmin/environmentmanager"
)

// Environment variables that override the INI file.
const (
	EnvStore       = "ACCTADMIN_STORE"
	EnvLogDir      = "ACCTADMIN_LOG_DIR"
	EnvEmailDomain = "ACCTADMIN_EMAIL_DOMAIN"
)

// Config holds the settings for one invocation.
type Config struct {
	StorePath      string
	StoreFormat    string // json or yaml; empty picks by extension
	LogDir         string
	Debug          bool
	EmailDomain    string
	PasswordLength int
	CSVDelimiter   rune
}

// Defaults returns the built-in settings. The log directory lives under the
// user's home when HOME is known.
func Defaults(env environmentmanager.EnvironmentManager) Config {
	logDir := "account_management_logs"
	if home, err := env.Get("HOME"); err == nil && home != "" {
		logDir = filepath.Join(home, logDir)
	}

	return Config{
		StorePath:      "users.json",
		LogDir:         logDir,
		EmailDomain:    am.DefaultEmailDomain,
		PasswordLength: am.DefaultPasswordLength,
		CSVDelimiter:   ',',
	}
}

// Load layers defaults, the INI file at path (skipped when path is empty),
// and environment overrides.
func Load(path string, env environmentmanager.EnvironmentManager) (Config, error) {
	cfg := Defaults(env)

	if path != "" {
		file, err := ini.Load(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
		if err := apply(&cfg, file); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if v, err := env.Get(EnvStore); err == nil && v != "" {
		cfg.StorePath = v
	}
	if v, err := env.Get(EnvLogDir); err == nil && v != "" {
		cfg.LogDir = v
	}
	if v, err := env.Get(EnvEmailDomain); err == nil && v != "" {
		cfg.EmailDomain = v
	}

	cfg.StorePath = ExpandHome(cfg.StorePath, env)
	cfg.LogDir = ExpandHome(cfg.LogDir, env)
	return cfg, nil
}

func apply(cfg *Config, file *ini.File) error {
	store := file.Section("store")
	cfg.StorePath = store.Key("path").MustString(cfg.StorePath)
	cfg.StoreFormat = strings.ToLower(store.Key("format").MustString(cfg.StoreFormat))
	switch cfg.StoreFormat {
	case "", "json", "yaml", "yml":
	default:
		return fmt.Errorf("store.format: unsupported %q", cfg.StoreFormat)
	}

	log := file.Section("log")
	cfg.LogDir = log.Key("dir").MustString(cfg.LogDir)
	cfg.Debug = log.Key("debug").MustBool(cfg.Debug)

	accounts := file.Section("accounts")
	cfg.EmailDomain = accounts.Key("email_domain").MustString(cfg.EmailDomain)
	cfg.PasswordLength = accounts.Key("password_length").MustInt(cfg.PasswordLength)
	if cfg.PasswordLength < 8 {
		return fmt.Errorf("accounts.password_length: must be at least 8, got %d", cfg.PasswordLength)
	}

	if d := file.Section("input").Key("delimiter").String(); d != "" {
		r := []rune(d)
		if len(r) != 1 {
			return fmt.Errorf("input.delimiter: want a single character, got %q", d)
		}
		cfg.CSVDelimiter = r[0]
	}
	return nil
}

// ExpandHome replaces a leading ~ with the HOME directory.
func ExpandHome(path string, env environmentmanager.EnvironmentManager) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := env.Get("HOME")
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
