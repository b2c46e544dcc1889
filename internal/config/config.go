package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Sources   SourcesConfig   `yaml:"sources" mapstructure:"sources"`
	Rules     RulesConfig     `yaml:"rules" mapstructure:"rules"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Notion    NotionConfig    `yaml:"notion" mapstructure:"notion"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SourcesConfig maps each named source table to its remote location.
// FileIDs entries are expanded against DriveBaseURL; URLs entries are
// used verbatim and may be http(s) or ftp. URLs wins when both are set.
type SourcesConfig struct {
	DriveBaseURL string            `yaml:"drive_base_url" mapstructure:"drive_base_url"`
	FileIDs      map[string]string `yaml:"file_ids" mapstructure:"file_ids"`
	URLs         map[string]string `yaml:"urls" mapstructure:"urls"`
}

// Resolve returns the fetch URL for a source name, or "" when unconfigured.
func (s SourcesConfig) Resolve(source string) string {
	if u, ok := s.URLs[source]; ok && u != "" {
		return u
	}
	if id, ok := s.FileIDs[source]; ok && id != "" {
		return s.DriveBaseURL + id
	}
	return ""
}

// RulesConfig points at the versioned scoring rule document. An empty
// File means the built-in defaults for the current program year.
type RulesConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// StoreConfig configures the snapshot cache backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// FetchConfig configures remote source downloads.
type FetchConfig struct {
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries     int     `yaml:"max_retries" mapstructure:"max_retries"`
	RatePerSec     float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	UserAgent      string  `yaml:"user_agent" mapstructure:"user_agent"`
	FTPTimeoutSecs int     `yaml:"ftp_timeout_secs" mapstructure:"ftp_timeout_secs"`
}

// ServerConfig configures the JSON API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// AnthropicConfig holds Anthropic API settings for the assistant.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// NotionConfig holds Notion API credentials for publishing winners.
type NotionConfig struct {
	Token     string `yaml:"token" mapstructure:"token"`
	WinnersDB string `yaml:"winners_db" mapstructure:"winners_db"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADERBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sources.drive_base_url", "https://drive.google.com/uc?export=download&id=")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "leaderboard.db")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 2)
	v.SetDefault("fetch.rate_per_sec", 2.0)
	v.SetDefault("fetch.ftp_timeout_secs", 30)
	v.SetDefault("fetch.user_agent", "district91-leaderboard-cli")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration required by a command family is
// present. Known modes: "score", "store", "serve", "ask", "publish".
func (c *Config) Validate(mode string) error {
	switch mode {
	case "score":
		if c.Sources.Resolve("club_performance") == "" {
			return eris.New("config: sources.file_ids.club_performance (or urls) is required")
		}
	case "store":
		switch c.Store.Driver {
		case "sqlite":
			if c.Store.Path == "" {
				return eris.New("config: store.path is required for the sqlite driver")
			}
		case "postgres":
			if c.Store.DatabaseURL == "" {
				return eris.New("config: store.database_url is required for the postgres driver")
			}
		default:
			return eris.Errorf("config: unknown store driver %q", c.Store.Driver)
		}
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			return eris.Errorf("config: invalid server port %d", c.Server.Port)
		}
	case "ask":
		if c.Anthropic.Key == "" {
			return eris.New("config: anthropic.key is required")
		}
	case "publish":
		if c.Notion.Token == "" || c.Notion.WinnersDB == "" {
			return eris.New("config: notion.token and notion.winners_db are required")
		}
	default:
		return eris.Errorf("config: unknown validation mode %q", mode)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
