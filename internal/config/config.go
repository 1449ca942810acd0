package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Persistence backends
const (
	BackendCookie = "cookie"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	MongoDB     MongoDBConfig
	JWT         JWTConfig
	Auth        AuthConfig
	Persistence PersistenceConfig
	Game        GameConfig
	LogLevel    string
	LogPretty   bool
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
	Mode         string // gin mode: debug, release or test
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// AuthConfig controls the optional host lock on draw and reset.
type AuthConfig struct {
	Enabled          bool
	HostPasswordHash string // bcrypt hash, see cmd/scripts/hash_password.go
}

// PersistenceConfig controls where the drawn numbers are kept between requests.
// IdleTimeout applies when persistence is disabled: the game is dropped after
// that long without a request.
type PersistenceConfig struct {
	Enabled           bool
	Backend           string
	CookieName        string
	SessionCookieName string
	TTL               time.Duration
	IdleTimeout       time.Duration
	Path              string
	Secure            bool
}

// GameConfig holds presentation settings for the caller page.
type GameConfig struct {
	ShuffleFrames     int
	ShuffleIntervalMs int
}

// EffectiveBackend returns the store backend actually used. With persistence
// disabled the drawn numbers only live in process memory.
func (p PersistenceConfig) EffectiveBackend() string {
	if !p.Enabled {
		return BackendMemory
	}
	return p.Backend
}

// LoadConfig loads configuration from a .env file, config.yaml under path and
// environment variables, in increasing order of precedence.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is fine, the environment may already be populated
	_ = godotenv.Load(filepath.Join(path, ".env"))

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(filepath.Join(path, "config"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks option combinations that cannot work at runtime.
func (c *Config) Validate() error {
	switch c.Persistence.Backend {
	case BackendCookie, BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("unknown persistence backend %q", c.Persistence.Backend)
	}
	if c.Persistence.Enabled && c.Persistence.TTL <= 0 {
		return errors.New("persistence TTL must be positive")
	}
	if !c.Persistence.Enabled && c.Persistence.IdleTimeout <= 0 {
		return errors.New("persistence idle timeout must be positive")
	}
	if c.Persistence.CookieName == "" || c.Persistence.SessionCookieName == "" {
		return errors.New("persistence cookie names must not be empty")
	}
	if c.Persistence.EffectiveBackend() == BackendMongo && c.MongoDB.URI == "" {
		return errors.New("MongoDB URI is required for the mongo backend")
	}
	if c.Auth.Enabled {
		if c.JWT.Secret == "" {
			return errors.New("JWT secret is required when auth is enabled")
		}
		if c.Auth.HostPasswordHash == "" {
			return errors.New("host password hash is required when auth is enabled")
		}
	}
	if c.Game.ShuffleFrames < 0 || c.Game.ShuffleIntervalMs < 0 {
		return errors.New("shuffle settings must not be negative")
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	v.SetDefault("Server.Mode", "release")
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "bingo-caller")
	v.SetDefault("MongoDB.Collection", "game_states")
	v.SetDefault("MongoDB.ConnectTimeout", 10*time.Second)
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 12*60*60) // 12 hours
	v.SetDefault("Auth.Enabled", false)
	v.SetDefault("Auth.HostPasswordHash", "")
	v.SetDefault("Persistence.Enabled", true)
	v.SetDefault("Persistence.Backend", BackendCookie)
	v.SetDefault("Persistence.CookieName", "bingoState")
	v.SetDefault("Persistence.SessionCookieName", "bingoSession")
	v.SetDefault("Persistence.TTL", 7*24*time.Hour)
	v.SetDefault("Persistence.IdleTimeout", 2*time.Hour)
	v.SetDefault("Persistence.Path", "/")
	v.SetDefault("Persistence.Secure", false)
	v.SetDefault("Game.ShuffleFrames", 11)
	v.SetDefault("Game.ShuffleIntervalMs", 50)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogPretty", false)
}
