package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SIGNUP_SERVER_ADDR.
const EnvPrefix = "SIGNUP"

// Config holds settings shared by the signup binaries.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	OpenAPI OpenAPIConfig `mapstructure:"openapi"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Mode selects the terminal front end: "prompt" or "live".
	Mode         string `mapstructure:"mode"`
	SchemaDir    string `mapstructure:"schema_dir"`
	Theme        string `mapstructure:"theme"`
	Variant      string `mapstructure:"variant"`
	AssetsPrefix string `mapstructure:"assets_prefix"`
}

// OpenAPIConfig points at the document describing the signup payload. An
// empty Spec selects the embedded document.
type OpenAPIConfig struct {
	Spec      string `mapstructure:"spec"`
	Operation string `mapstructure:"operation"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Terminal front ends.
const (
	ModePrompt = "prompt"
	ModeLive   = "live"
)

// Load reads configuration from defaults, an optional file, and env. When
// path is empty SIGNUP_CONFIG is consulted, then ./signup.yaml if present.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("ui.mode", ModePrompt)
	v.SetDefault("ui.schema_dir", "")
	v.SetDefault("ui.theme", "signup")
	v.SetDefault("ui.variant", "")
	v.SetDefault("ui.assets_prefix", "/assets")
	v.SetDefault("openapi.spec", "")
	v.SetDefault("openapi.operation", "createAccount")
	v.SetDefault("log.level", "info")

	explicit := path
	if explicit == "" {
		explicit = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName("signup")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.UI.Mode {
	case ModePrompt, ModeLive:
	default:
		return fmt.Errorf("config: unknown ui mode %q", c.UI.Mode)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level into a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", l.Level, err)
	}
	return level, nil
}

// NewLogger builds a text logger writing to stderr at the configured level.
func (l LogConfig) NewLogger() *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
