package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("spendwise version %s, commit %s, built at %s", version, commit, date)
}

const defaultCallbackPort = 8085

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Google   GoogleConfig   `mapstructure:"google"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

// GoogleConfig holds the OAuth client settings. ClientID and ClientSecret are
// required; the callback port defaults to 8085.
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	CallbackPort int    `mapstructure:"callback_port"`
}

// RedirectURL is the loopback redirect registered with the provider.
func (g GoogleConfig) RedirectURL() string {
	return fmt.Sprintf("http://localhost:%d/callback", g.CallbackPort)
}

// InitFlags initializes command line flags (without parsing)
func InitFlags() {
	pflag.String("database.path", "", "Path to the sqlite database file")
	pflag.String("logging.level", "", "Log level (debug|info|warn|error)")
	pflag.Int("google.callback_port", 0, "Local OAuth callback port")
}

func Load() (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("SPENDWISE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// The Google credentials keep their historical unprefixed names.
	_ = viper.BindEnv("google.client_id", "SPENDWISE_GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_ID")
	_ = viper.BindEnv("google.client_secret", "SPENDWISE_GOOGLE_CLIENT_SECRET", "GOOGLE_CLIENT_SECRET")
	_ = viper.BindEnv("google.callback_port", "SPENDWISE_OAUTH_CALLBACK_PORT", "OAUTH_CALLBACK_PORT")

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("google.callback_port", defaultCallbackPort)

	// Optional ./config.yaml or ~/.config/spendwise/config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if configDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(configDir, "spendwise"))
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Google.ClientID == "" || config.Google.ClientSecret == "" {
		return nil, fmt.Errorf("google OAuth credentials not configured: set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
	}

	if config.Google.CallbackPort <= 0 || config.Google.CallbackPort > 65535 {
		return nil, fmt.Errorf("invalid OAuth callback port %d", config.Google.CallbackPort)
	}

	if config.Database.Path == "" {
		path, err := defaultDatabasePath()
		if err != nil {
			return nil, err
		}
		config.Database.Path = path
	}

	return &config, nil
}

func defaultDatabasePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, "spendwise", "spendwise.db"), nil
}
