// Package config loads the worklog configuration and resolves the
// application's file paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"

	"worklog/internal/autobreak"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Workday WorkdayConfig
		Worklog WorklogConfig
	}

	// WorkdayConfig holds the workday bounds and the auto-break
	// limit/duration pairs, all in hours respectively minutes.
	WorkdayConfig struct {
		HoursTarget              float64
		HoursMax                 float64
		AutoBreakLimitMinutes    []int
		AutoBreakDurationMinutes []int
	}

	// WorklogConfig holds settings for the backing log file and the
	// log command's pager behavior.
	WorklogConfig struct {
		Path              string
		NoPagerMaxEntries int
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v1.0.0"

var (
	configDir       = "worklog"
	configFileName  = "config.yml"
	worklogFileName = "worklog.txt"
	logFileName     = "worklog.log"

	configFilePath  string
	worklogFilePath string
	logFilePath     string
)

func ConfigFilePath() string {
	return configFilePath
}

func WorklogFilePath() string {
	return worklogFilePath
}

func LogFilePath() string {
	return logFilePath
}

// InitializePaths resolves the XDG paths for the config file, the
// worklog backing file and the application log. WORKLOG_ENV switches
// to per-environment file names for testing.
func InitializePaths() {
	worklogEnv := strings.TrimSpace(os.Getenv("WORKLOG_ENV"))
	if worklogEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", worklogEnv)
		worklogFileName = fmt.Sprintf("worklog_%s.txt", worklogEnv)
		logFileName = fmt.Sprintf("worklog_%s.log", worklogEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	worklogFilePath = filepath.Join(dataDir, worklogFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// New creates a new Config with default values and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config option error: %w", err)
		}
	}

	return cfg, nil
}

// HoursTarget returns the configured target working time per day.
func (c *Config) HoursTarget() time.Duration {
	return time.Duration(c.Workday.HoursTarget * float64(time.Hour))
}

// HoursMax returns the configured maximum working time per day.
func (c *Config) HoursMax() time.Duration {
	return time.Duration(c.Workday.HoursMax * float64(time.Hour))
}

// AutoBreak builds the auto-break policy from the configured
// limit/duration pairs.
func (c *Config) AutoBreak() (*autobreak.Policy, error) {
	return autobreak.New(
		c.Workday.AutoBreakLimitMinutes,
		c.Workday.AutoBreakDurationMinutes,
	)
}
