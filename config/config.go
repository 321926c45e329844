package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
)

// Storage drivers for the ranking document.
const (
	StorageDriverJSON     = "json"
	StorageDriverPostgres = "postgres"
)

const (
	defaultDataFile           = "hangman_data.json"
	defaultResetCheckInterval = time.Hour
	defaultInitialLives       = 5
)

// Config struct to hold the configuration settings
type Config struct {
	Discord       DiscordConfig       `yaml:"discord"`
	Game          GameConfig          `yaml:"game"`
	Ditto         DittoConfig         `yaml:"ditto"`
	Storage       StorageConfig       `yaml:"storage"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// DiscordConfig holds Discord gateway configuration.
type DiscordConfig struct {
	Token string `yaml:"token"`
	// GuildID scopes slash command registration. Empty registers globally.
	GuildID string `yaml:"guild_id"`
}

// GameConfig holds hangman settings.
type GameConfig struct {
	DefaultLives       int           `yaml:"default_lives"`
	ResetCheckInterval time.Duration `yaml:"reset_check_interval"`
}

// DittoConfig selects who may switch letter tracking on and off.
type DittoConfig struct {
	Policy   string `yaml:"policy"` // open|owner|owner_or_role
	RoleName string `yaml:"role_name"`
}

// StorageConfig holds ranking persistence configuration.
type StorageConfig struct {
	Driver   string `yaml:"driver"` // json|postgres
	DataFile string `yaml:"data_file"`
	DSN      string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL keeps events in-process.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
}

// LoadConfig loads the configuration from a YAML file, falling back to the
// environment when the file does not exist. Environment variables always win.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case os.IsNotExist(err):
		// env only
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// --- OVERRIDE WITH ENV VARS IF PRESENT ---
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		cfg.Discord.Token = v
	}
	if v := os.Getenv("DISCORD_GUILD_ID"); v != "" {
		cfg.Discord.GuildID = v
	}
	if v := os.Getenv("DATA_FILE"); v != "" {
		cfg.Storage.DataFile = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("DITTO_POLICY"); v != "" {
		cfg.Ditto.Policy = v
	}
	if v := os.Getenv("DITTO_ROLE"); v != "" {
		cfg.Ditto.RoleName = v
	}
	if v := os.Getenv("DEFAULT_LIVES"); v != "" {
		lives, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DEFAULT_LIVES value: %v", err)
		}
		cfg.Game.DefaultLives = lives
	}
	if v := os.Getenv("RESET_CHECK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RESET_CHECK_INTERVAL value: %v", err)
		}
		cfg.Game.ResetCheckInterval = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverJSON
	}
	if c.Storage.DataFile == "" {
		c.Storage.DataFile = defaultDataFile
	}
	if c.Game.DefaultLives == 0 {
		c.Game.DefaultLives = defaultInitialLives
	}
	if c.Game.ResetCheckInterval == 0 {
		c.Game.ResetCheckInterval = defaultResetCheckInterval
	}
	if c.Ditto.Policy == "" {
		c.Ditto.Policy = "owner"
	}
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return ErrMissingToken
	}
	switch c.Storage.Driver {
	case StorageDriverJSON:
	case StorageDriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage driver %q requires DATABASE_URL", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Game.DefaultLives < 1 {
		return fmt.Errorf("default lives must be positive, got %d", c.Game.DefaultLives)
	}
	if c.Game.ResetCheckInterval < 0 {
		return fmt.Errorf("reset check interval must not be negative")
	}
	return nil
}

// ToObsConfig converts the app config for the observability package.
func ToObsConfig(appCfg *Config, serviceName string) observability.Config {
	return observability.Config{
		ServiceName:    serviceName,
		Environment:    appCfg.Observability.Environment,
		LogLevel:       appCfg.Observability.LogLevel,
		MetricsAddress: appCfg.Observability.MetricsAddress,
		OTLPEndpoint:   appCfg.Observability.OTLPEndpoint,
	}
}
