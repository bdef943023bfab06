package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultAPIURL is the Microsoft Graph endpoint used when none is configured
const DefaultAPIURL = "https://graph.microsoft.com/v1.0"

// Config holds all application configuration
type Config struct {
	Drive   DriveConfig   `mapstructure:"drive"`
	Player  PlayerConfig  `mapstructure:"player"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DriveConfig holds media store configuration
type DriveConfig struct {
	APIURL      string `mapstructure:"api_url"`      // Graph base URL
	Token       string `mapstructure:"token"`        // OAuth bearer token
	Account     string `mapstructure:"account"`      // display only
	StartFolder string `mapstructure:"start_folder"` // item id, "root" for the drive root
}

// PlayerConfig holds media player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// CacheConfig holds folder listing cache configuration
type CacheConfig struct {
	Dir string        `mapstructure:"dir"` // empty disables the disk cache
	TTL time.Duration `mapstructure:"ttl"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	CaptionDelay time.Duration `mapstructure:"caption_delay"` // delay before an image caption is revealed
	Mouse        bool          `mapstructure:"mouse"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Drive: DriveConfig{
			APIURL:      DefaultAPIURL,
			StartFolder: "root",
		},
		Player: PlayerConfig{
			Command: "",
			Args:    []string{},
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
			TTL: 15 * time.Minute,
		},
		UI: UIConfig{
			CaptionDelay: 1500 * time.Millisecond,
			Mouse:        true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// Flags returns the command line flags that override configuration values
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("skylight", pflag.ContinueOnError)
	fs.BoolP("version", "v", false, "print version")
	fs.StringP("folder", "f", "", "folder id to open on start")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.Bool("no-mouse", false, "disable mouse support")
	fs.String("preview", "", "show a local image file in the viewer")
	return fs
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "skylight", "skylight.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "skylight", "skylight.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "skylight")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "skylight")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "skylight", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "skylight", "cache")
	}
}

// LoadConfig loads configuration from file, environment and flags
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	return load(viper.GetViper(), flags, defaultConfigPath(), ".")
}

func load(v *viper.Viper, flags *pflag.FlagSet, paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides: SKYLIGHT_DRIVE_TOKEN etc.
	v.SetEnvPrefix("SKYLIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		bindFlag(v, "drive.start_folder", flags, "folder")
		bindFlag(v, "logging.level", flags, "log-level")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if flags != nil {
		if noMouse, err := flags.GetBool("no-mouse"); err == nil && noMouse {
			cfg.UI.Mouse = false
		}
	}

	cfg.Drive.APIURL = strings.TrimRight(cfg.Drive.APIURL, "/")
	return cfg, nil
}

// setDefaults registers every key so env overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("drive.api_url", cfg.Drive.APIURL)
	v.SetDefault("drive.token", cfg.Drive.Token)
	v.SetDefault("drive.account", cfg.Drive.Account)
	v.SetDefault("drive.start_folder", cfg.Drive.StartFolder)
	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("ui.caption_delay", cfg.UI.CaptionDelay)
	v.SetDefault("ui.mouse", cfg.UI.Mouse)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// bindFlag binds a flag only when the user actually set it, so an empty
// flag default never masks the config file value
func bindFlag(v *viper.Viper, key string, flags *pflag.FlagSet, name string) {
	f := flags.Lookup(name)
	if f == nil || !f.Changed {
		return
	}
	_ = v.BindPFlag(key, f)
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return save(viper.GetViper(), cfg, defaultConfigPath())
}

func save(v *viper.Viper, cfg *Config, configPath string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("drive.api_url", cfg.Drive.APIURL)
	v.Set("drive.token", cfg.Drive.Token)
	v.Set("drive.account", cfg.Drive.Account)
	v.Set("drive.start_folder", cfg.Drive.StartFolder)

	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)

	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.ttl", cfg.Cache.TTL.String())

	v.Set("ui.caption_delay", cfg.UI.CaptionDelay.String())
	v.Set("ui.mouse", cfg.UI.Mouse)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the API URL and token are set
func (c *Config) IsConfigured() bool {
	return c.Drive.APIURL != "" && c.Drive.Token != ""
}

// ClearCache removes all cached data
func ClearCache(cfg *Config) error {
	if cfg.Cache.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(cfg.Cache.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
