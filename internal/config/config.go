package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret   string
	JWTSecretID string
	JWTTTL      time.Duration

	LegacyUsername string
	LegacyPassword string
	ProjectsDir    string

	SessionSecret string
	RedisHost     string
	RedisPort     string

	GenerationProvider string
	AnthropicAPIKey    string
	ModelID            string
	MaxTokens          int64
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIMaxTokens    int

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSSessionToken    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "irondev")
	v.SetDefault("DB_PASSWORD", "irondev")
	v.SetDefault("DB_NAME", "iron_dev_agent")

	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_SECRET_ID", "")
	v.SetDefault("JWT_TTL", "168h")

	v.SetDefault("LEGACY_USERNAME", "admin")
	v.SetDefault("LEGACY_PASSWORD", "password")
	v.SetDefault("PROJECTS_DIR", "projects")

	v.SetDefault("SESSION_SECRET", "default-secret-key-change-me")
	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", "6379")

	v.SetDefault("GENERATION_PROVIDER", "anthropic")
	v.SetDefault("ANTHROPIC_API_KEY", "")
	v.SetDefault("MODEL_ID", "claude-sonnet-4-20250514")
	v.SetDefault("MAX_TOKENS", 32000)
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o")
	// 0 leaves the output budget to the model
	v.SetDefault("OPENAI_MAX_TOKENS", 0)

	v.SetDefault("AWS_REGION", "")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("AWS_SESSION_TOKEN", "")
}

// Load reads configuration from the environment and, when CONFIG_FILE is set,
// from that file. Environment variables win over file values.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	ttl, err := time.ParseDuration(v.GetString("JWT_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	return &Config{
		Port:     v.GetString("PORT"),
		GinMode:  v.GetString("GIN_MODE"),
		LogLevel: v.GetString("LOG_LEVEL"),

		DBDriver:    strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBUser:      v.GetString("DB_USER"),
		DBPassword:  v.GetString("DB_PASSWORD"),
		DBName:      v.GetString("DB_NAME"),

		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTSecretID: v.GetString("JWT_SECRET_ID"),
		JWTTTL:      ttl,

		LegacyUsername: v.GetString("LEGACY_USERNAME"),
		LegacyPassword: v.GetString("LEGACY_PASSWORD"),
		ProjectsDir:    v.GetString("PROJECTS_DIR"),

		SessionSecret: v.GetString("SESSION_SECRET"),
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),

		GenerationProvider: strings.ToLower(v.GetString("GENERATION_PROVIDER")),
		AnthropicAPIKey:    v.GetString("ANTHROPIC_API_KEY"),
		ModelID:            v.GetString("MODEL_ID"),
		MaxTokens:          v.GetInt64("MAX_TOKENS"),
		OpenAIAPIKey:       v.GetString("OPENAI_API_KEY"),
		OpenAIModel:        v.GetString("OPENAI_MODEL"),
		OpenAIMaxTokens:    v.GetInt("OPENAI_MAX_TOKENS"),

		AWSRegion:          v.GetString("AWS_REGION"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		AWSSessionToken:    v.GetString("AWS_SESSION_TOKEN"),
	}, nil
}

// DSN returns DatabaseURL, or a driver-specific DSN assembled from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	if c.DBDriver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser,
			c.DBPassword,
			c.DBHost,
			c.DBPort,
			c.DBName,
		)
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost,
		c.DBPort,
		c.DBUser,
		c.DBPassword,
		c.DBName,
	)
}

func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}
