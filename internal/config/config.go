package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ludo-technologies/codeguard/internal/constants"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default tool settings
const (
	// DefaultConfigFileName is the project configuration file in the project root
	DefaultConfigFileName = "codeguard.config.json"

	// DefaultMaxConcurrency bounds the report fan-out; three sections run at once
	DefaultMaxConcurrency = 3

	// DefaultTimeout of zero waits for report tasks without a deadline
	DefaultTimeout time.Duration = 0
)

// Settings holds the tool's own settings. They are resolved from command-line
// flags, CODEGUARD_* environment variables and their defaults, in that order.
type Settings struct {
	// ProjectDir is the project root holding the configuration file
	ProjectDir string `mapstructure:"dir"`

	// ConfigFile is the configuration file name, relative to ProjectDir
	ConfigFile string `mapstructure:"config_file"`

	// ReportDir is where JSON reports are written (empty = ProjectDir)
	ReportDir string `mapstructure:"report_dir"`

	// Seed pins the mock random source. Zero means seed from the clock.
	Seed int64 `mapstructure:"seed"`

	// Timeout bounds the report join. Zero means no deadline.
	Timeout time.Duration `mapstructure:"timeout"`

	// MaxConcurrency limits concurrently running report tasks
	MaxConcurrency int `mapstructure:"max_concurrency"`

	// Verbose enables diagnostic logging on stderr
	Verbose bool `mapstructure:"verbose"`
}

// DefaultSettings returns the default settings
func DefaultSettings() *Settings {
	return &Settings{
		ProjectDir:     ".",
		ConfigFile:     DefaultConfigFileName,
		Seed:           0,
		Timeout:        DefaultTimeout,
		MaxConcurrency: DefaultMaxConcurrency,
	}
}

// LoadSettings resolves settings from the given flag set and the environment.
// flags may be nil.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	// Create a new viper instance to avoid shared global state
	v := viper.New()
	defaults := DefaultSettings()

	v.SetDefault("dir", defaults.ProjectDir)
	v.SetDefault("config_file", defaults.ConfigFile)
	v.SetDefault("report_dir", defaults.ReportDir)
	v.SetDefault("seed", defaults.Seed)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("max_concurrency", defaults.MaxConcurrency)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{
			"dir":     "dir",
			"seed":    "seed",
			"timeout": "timeout",
			"verbose": "verbose",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return settings, nil
}

// Validate validates the settings values
func (s *Settings) Validate() error {
	if s.ProjectDir == "" {
		return fmt.Errorf("dir cannot be empty")
	}
	if s.ConfigFile == "" {
		return fmt.Errorf("config_file cannot be empty")
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", s.Timeout)
	}
	if s.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be >= 1, got %d", s.MaxConcurrency)
	}
	return nil
}

// ConfigPath returns the full path of the project configuration file
func (s *Settings) ConfigPath() string {
	if filepath.IsAbs(s.ConfigFile) {
		return s.ConfigFile
	}
	return filepath.Join(s.ProjectDir, s.ConfigFile)
}

// ReportDirectory returns the directory JSON reports are written to
func (s *Settings) ReportDirectory() string {
	if s.ReportDir == "" {
		return s.ProjectDir
	}
	return s.ReportDir
}
