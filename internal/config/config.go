package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Tiliavir/tim/internal/jira"
	"github.com/Tiliavir/tim/internal/logging"
	"github.com/Tiliavir/tim/internal/storage"
)

// Config is the root configuration for tim, stored in ~/.tim/config.yaml.
// Every key can be overridden with a TIM_ environment variable, e.g.
// TIM_SUMMARY_FLUSH_OPEN_RUNS=true.
type Config struct {
	// DataDir holds the day logs, the tag registry and the credential file.
	DataDir string `mapstructure:"data_dir"`
	// Editor opens day logs for manual correction.
	Editor  string        `mapstructure:"editor"`
	Jira    JiraConfig    `mapstructure:"jira"`
	Summary SummaryConfig `mapstructure:"summary"`
}

// JiraConfig holds the issue tracker settings.
type JiraConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	// Token is a personal access token; when set it replaces session login.
	Token string `mapstructure:"token"`
	// Timezone is the IANA zone for worklog start times. Empty = local time.
	Timezone string `mapstructure:"timezone"`
}

// SummaryConfig holds summary defaults.
type SummaryConfig struct {
	FlushOpenRuns bool   `mapstructure:"flush_open_runs"`
	Format        string `mapstructure:"format"`
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# tim configuration – ~/.tim/config.yaml
#
# All settings are optional. Environment variables override the file:
# TIM_DATA_DIR, TIM_EDITOR, TIM_JIRA_TOKEN, TIM_SUMMARY_FORMAT, ...

# Directory for day logs (YYYY/MM/DD.jsonl), tags.txt and jira_credentials.
# Empty means the directory of this file.
data_dir: ""

# Editor for "tim edit". Empty means $EDITOR, falling back to vi.
editor: ""

jira:
  # Four lines: host, username, password, issue key prefix.
  # Empty means <data_dir>/jira_credentials. Missing file = ask on sync.
  credentials_file: ""
  # Personal access token. When set it is sent as a bearer token and the
  # password from the credential file is not used.
  token: ""
  # IANA timezone for worklog start times, e.g. "Europe/Berlin". Empty = local.
  timezone: ""

summary:
  # Count a run of same-tag intervals that is still open when the day ends.
  # By default such a trailing run is left out of the totals.
  flush_open_runs: false
  # md, json or yaml
  format: md
`

// FilePath returns the path to ~/.tim/config.yaml.
func FilePath() (string, error) {
	base, err := storage.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads ~/.tim/config.yaml, creating it with annotated defaults on
// first run.
func Load() (Config, error) {
	path, err := FilePath()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file is created from the
// template and the defaults are returned.
func LoadFrom(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", "")
	v.SetDefault("editor", "")
	v.SetDefault("jira.credentials_file", "")
	v.SetDefault("jira.token", "")
	v.SetDefault("jira.timezone", "")
	v.SetDefault("summary.flush_open_runs", false)
	v.SetDefault("summary.format", "md")

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			logging.Warnf("could not create config file %s: %v", path, writeErr)
		}
	} else if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	// Fill derived defaults so callers always get a usable Config.
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(path)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	if cfg.Editor == "" {
		cfg.Editor = os.Getenv("EDITOR")
	}
	if cfg.Editor == "" {
		cfg.Editor = "vi"
	}
	if cfg.Jira.CredentialsFile == "" {
		cfg.Jira.CredentialsFile = jira.CredentialsFilePath(cfg.DataDir)
	}
	cfg.Jira.CredentialsFile = expandHome(cfg.Jira.CredentialsFile)
	logging.Debugln("config", path, "data_dir", cfg.DataDir)
	return cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
