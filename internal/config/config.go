package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
)

// Config holds all configuration for the application
type Config struct {
	Sim        SimConfig        `mapstructure:"sim"`
	Runner     RunnerConfig     `mapstructure:"runner"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Events     EventsConfig     `mapstructure:"events"`
	Experience ExperienceConfig `mapstructure:"experience"`
}

// SimConfig holds simulation settings
type SimConfig struct {
	Width  int   `mapstructure:"width"`
	Height int   `mapstructure:"height"`
	Seed   int64 `mapstructure:"seed"`
	// Seeded false seeds the engine from the clock and ignores Seed
	Seeded bool `mapstructure:"seeded"`
}

// RunnerConfig holds batch rollout settings
type RunnerConfig struct {
	Episodes     int    `mapstructure:"episodes"`
	MaxTicks     int    `mapstructure:"max_ticks"`
	PlayerPolicy string `mapstructure:"player_policy"`
	AIPolicy     string `mapstructure:"ai_policy"`
	// MonitorInterval is how often progress is sampled, 0 disables it
	MonitorInterval time.Duration `mapstructure:"monitor_interval"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EventsConfig controls the event log subscriber
type EventsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	LogLevel string `mapstructure:"log_level"`
	DevMode  bool   `mapstructure:"dev_mode"`
}

// ExperienceConfig holds experience collection and export settings
type ExperienceConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	OutputDir      string        `mapstructure:"output_dir"`
	MaxTransitions int           `mapstructure:"max_transitions"`
	Rewards        RewardsConfig `mapstructure:"rewards"`
}

// RewardsConfig holds reward shaping values for collected experiences
type RewardsConfig struct {
	Win          float32 `mapstructure:"win"`
	Lose         float32 `mapstructure:"lose"`
	Draw         float32 `mapstructure:"draw"`
	LengthGained float32 `mapstructure:"length_gained"`
	LengthLost   float32 `mapstructure:"length_lost"`
}

var (
	// Global config instance, swapped whole under mu
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

var validPolicies = map[string]bool{"random": true, "greedy": true}

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true, "disabled": true,
}

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Simulation defaults
	v.SetDefault("sim.width", 16)
	v.SetDefault("sim.height", 16)
	v.SetDefault("sim.seed", 42)
	v.SetDefault("sim.seeded", true)

	// Runner defaults
	v.SetDefault("runner.episodes", 10)
	v.SetDefault("runner.max_ticks", 500)
	v.SetDefault("runner.player_policy", "greedy")
	v.SetDefault("runner.ai_policy", "random")
	v.SetDefault("runner.monitor_interval", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Event log defaults
	v.SetDefault("events.enabled", true)
	v.SetDefault("events.log_level", "debug")
	v.SetDefault("events.dev_mode", false)

	// Experience defaults
	v.SetDefault("experience.enabled", false)
	v.SetDefault("experience.output_dir", "trajectories")
	v.SetDefault("experience.max_transitions", 100000)
	v.SetDefault("experience.rewards.win", 1.0)
	v.SetDefault("experience.rewards.lose", -1.0)
	v.SetDefault("experience.rewards.draw", 0.0)
	v.SetDefault("experience.rewards.length_gained", 0.0)
	v.SetDefault("experience.rewards.length_lost", 0.0)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/snake-duel-rl")
	}

	v.SetEnvPrefix("SNK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configPath != "":
			// A specific file that does not exist falls back to defaults
		case errors.As(err, &notFound):
			// No config file in the default locations
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(loaded); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	swap(loaded)
	return nil
}

// reload decodes the current viper state into a fresh Config and swaps it
// in only if it validates. The live config is left untouched on error.
func reload() error {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return err
	}
	swap(next)
	return nil
}

func swap(next *Config) {
	mu.Lock()
	defer mu.Unlock()
	cfg = next
}

// Get returns the global config instance. The returned value is never
// mutated; reloads replace it. Use Snapshot for a private copy.
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()

	if c == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
		mu.RLock()
		c = cfg
		mu.RUnlock()
	}
	return c
}

// Snapshot returns a copy of the current config that later reloads and
// Set calls do not affect
func Snapshot() Config {
	return *Get()
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	return reload()
}

// Set allows runtime config updates. The config struct is only replaced
// when the updated values decode and validate.
func Set(key string, value interface{}) error {
	v.Set(key, value)
	if err := reload(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange runs on
// the watcher goroutine and receives the reload error, nil if the new
// config was applied. An invalid file keeps the previous config live.
func WatchConfig(onChange func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		err := reload()
		if onChange != nil {
			onChange(err)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Sim.Width < 1 || c.Sim.Height < 1 {
		return fmt.Errorf("sim %dx%d must be at least 1x1: %w", c.Sim.Width, c.Sim.Height, core.ErrInvalidDimensions)
	}

	if c.Runner.Episodes < 1 {
		return fmt.Errorf("runner.episodes must be positive")
	}
	if c.Runner.MaxTicks < 1 {
		return fmt.Errorf("runner.max_ticks must be positive")
	}
	if c.Runner.MonitorInterval < 0 {
		return fmt.Errorf("runner.monitor_interval must be non-negative")
	}
	if !validPolicies[strings.ToLower(c.Runner.PlayerPolicy)] {
		return fmt.Errorf("runner.player_policy %q must be random or greedy", c.Runner.PlayerPolicy)
	}
	if !validPolicies[strings.ToLower(c.Runner.AIPolicy)] {
		return fmt.Errorf("runner.ai_policy %q must be random or greedy", c.Runner.AIPolicy)
	}

	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}
	if c.Events.Enabled && !validLevels[strings.ToLower(c.Events.LogLevel)] {
		return fmt.Errorf("events.log_level %q is not a known level", c.Events.LogLevel)
	}

	if c.Experience.MaxTransitions < 0 {
		return fmt.Errorf("experience.max_transitions must be non-negative")
	}
	if c.Experience.Enabled && c.Experience.OutputDir == "" {
		return fmt.Errorf("experience.output_dir is required when experience is enabled")
	}

	return nil
}
