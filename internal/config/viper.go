package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper
// counterparts.
const (
	keyHoursTarget        = "workday.hours_target"
	keyHoursMax           = "workday.hours_max"
	keyAutoBreakLimits    = "workday.auto_break_limit_minutes"
	keyAutoBreakDurations = "workday.auto_break_duration_minutes"
	keyWorklogPath        = "worklog.path"
	keyNoPagerMaxEntries  = "worklog.no_pager_max_entries"
)

// WithViperConfig returns an Option that loads configuration from
// Viper. When no config file exists yet, one is written with the
// default values.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config file failed: %w", err)
		}

		if err := v.WriteConfig(); err != nil {
			return fmt.Errorf("writing default config failed: %w", err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults.
func setupViper(v *viper.Viper) {
	v.SetDefault(keyHoursTarget, 8.0)
	v.SetDefault(keyHoursMax, 10.0)
	v.SetDefault(keyAutoBreakLimits, []int{})
	v.SetDefault(keyAutoBreakDurations, []int{})
	v.SetDefault(keyWorklogPath, "")
	v.SetDefault(keyNoPagerMaxEntries, 20)
}

// loadViperConfig loads configuration from Viper into the Config
// struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	c.Workday.HoursTarget = v.GetFloat64(keyHoursTarget)
	c.Workday.HoursMax = v.GetFloat64(keyHoursMax)
	c.Workday.AutoBreakLimitMinutes = v.GetIntSlice(keyAutoBreakLimits)
	c.Workday.AutoBreakDurationMinutes = v.GetIntSlice(keyAutoBreakDurations)
	c.Worklog.Path = v.GetString(keyWorklogPath)
	c.Worklog.NoPagerMaxEntries = v.GetInt(keyNoPagerMaxEntries)

	if c.Workday.HoursTarget <= 0 {
		return fmt.Errorf("%s must be positive", keyHoursTarget)
	}

	if c.Workday.HoursMax < c.Workday.HoursTarget {
		return fmt.Errorf(
			"%s must not be smaller than %s",
			keyHoursMax,
			keyHoursTarget,
		)
	}

	if c.Worklog.Path == "" {
		c.Worklog.Path = WorklogFilePath()
	}

	return nil
}
