package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level focuswatch configuration.
type Config struct {
	DataDir          string       `mapstructure:"data_dir"`
	DailyGoalSeconds int          `mapstructure:"daily_goal_seconds"`
	RolloverInterval string       `mapstructure:"rollover_interval"`
	BucketThresholds []int        `mapstructure:"bucket_thresholds"`
	Levels           []LevelTitle `mapstructure:"levels"`
	Output           Output       `mapstructure:"output"`
}

// LevelTitle is one row of the level ladder: the lowest level that earns a
// title, and the palette tag used to render it.
type LevelTitle struct {
	MinLevel int    `mapstructure:"min_level"`
	Title    string `mapstructure:"title"`
	Color    string `mapstructure:"color"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("data_dir", DefaultConfigDir)
	v.SetDefault("daily_goal_seconds", DefaultDailyGoalSeconds)
	v.SetDefault("rollover_interval", DefaultRolloverInterval)
	v.SetDefault("bucket_thresholds", DefaultBucketThresholds)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// The title ladder defaults as a whole, not per row.
	if len(cfg.Levels) == 0 {
		cfg.Levels = DefaultLevels
	}

	cfg.DataDir = expandPath(cfg.DataDir)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DailyGoalSeconds < 0 {
		return fmt.Errorf("daily_goal_seconds must be non-negative, got %d", c.DailyGoalSeconds)
	}
	if _, err := time.ParseDuration(c.RolloverInterval); err != nil {
		return fmt.Errorf("invalid rollover_interval %q: %w", c.RolloverInterval, err)
	}
	if !sort.IntsAreSorted(c.BucketThresholds) {
		return fmt.Errorf("bucket_thresholds must be ascending")
	}
	for i := 1; i < len(c.Levels); i++ {
		if c.Levels[i].MinLevel <= c.Levels[i-1].MinLevel {
			return fmt.Errorf("levels must have strictly ascending min_level")
		}
	}
	return nil
}

// RolloverEvery returns the parsed rollover check interval.
func (c *Config) RolloverEvery() time.Duration {
	d, err := time.ParseDuration(c.RolloverInterval)
	if err != nil {
		d, _ = time.ParseDuration(DefaultRolloverInterval)
	}
	return d
}

// DBPath returns the full path to the SQLite database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, DefaultDBName)
}

// ConfigDir returns the expanded default configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
