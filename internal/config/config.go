package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for jogjachat
type Config struct {
	Assistant AssistantConfig `mapstructure:"assistant"`
	Widget    WidgetConfig    `mapstructure:"widget"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	Stub      StubConfig      `mapstructure:"stub"`
	Log       LogConfig       `mapstructure:"log"`
}

// AssistantConfig locates the remote assistant service
type AssistantConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WidgetConfig holds the cosmetic delays of the chat widget
type WidgetConfig struct {
	PlaceholderDelay time.Duration `mapstructure:"placeholder_delay"`
	SpeechDelay      time.Duration `mapstructure:"speech_delay"`
	QuickSendDelay   time.Duration `mapstructure:"quick_send_delay"`
}

// SpeechConfig holds text-to-speech configuration
type SpeechConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Engine  string  `mapstructure:"engine"`
	Locale  string  `mapstructure:"locale"`
	Rate    float64 `mapstructure:"rate"`
	Pitch   float64 `mapstructure:"pitch"`
	Volume  float64 `mapstructure:"volume"`
}

// StubConfig holds configuration of the development stub assistant
type StubConfig struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	DBPath       string   `mapstructure:"db_path"`
	APIKey       string   `mapstructure:"api_key"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("JOGJACHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("assistant.base_url", "http://localhost:8080")
	v.SetDefault("assistant.timeout", 30*time.Second)

	v.SetDefault("widget.placeholder_delay", 300*time.Millisecond)
	v.SetDefault("widget.speech_delay", 500*time.Millisecond)
	v.SetDefault("widget.quick_send_delay", 100*time.Millisecond)

	v.SetDefault("speech.enabled", true)
	v.SetDefault("speech.engine", "espeak-ng")
	v.SetDefault("speech.locale", "id-ID")
	v.SetDefault("speech.rate", 0.9)
	v.SetDefault("speech.pitch", 1.1)
	v.SetDefault("speech.volume", 0.8)

	v.SetDefault("stub.host", "0.0.0.0")
	v.SetDefault("stub.port", 8080)
	v.SetDefault("stub.db_path", "./data/stub.db")
	v.SetDefault("stub.allow_origins", []string{"*"})
	v.SetDefault("stub.api_key", "")

	v.SetDefault("log.level", "info")
}

// StubAddress returns the stub server's listen address
func (c *Config) StubAddress() string {
	return fmt.Sprintf("%s:%d", c.Stub.Host, c.Stub.Port)
}
