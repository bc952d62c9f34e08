package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// MongoDB configuration.
	DatabaseURL string        `mapstructure:"DATABASE_URL"`
	DBUser      string        `mapstructure:"DB_USER"`
	DBPass      string        `mapstructure:"DB_PASS"`
	DBName      string        `mapstructure:"DB_NAME"`
	DBTimeout   time.Duration `mapstructure:"DB_TIMEOUT"`

	// Session tokens.
	AccessTokenSecret string        `mapstructure:"ACCESS_TOKEN_SECRET"`
	TokenTTL          time.Duration `mapstructure:"TOKEN_TTL"`

	// EnforceBookingOwnership puts PATCH and DELETE /bookings/:id behind the
	// bearer token and requires the booking email to match the caller's.
	EnforceBookingOwnership bool `mapstructure:"ENFORCE_BOOKING_OWNERSHIP"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
}

var AppConfig Config

// LoadConfig reads .env, an optional config.yaml and the environment, in that
// order of increasing precedence, and stores the result in AppConfig.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can bind it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "carDoctor")
	v.SetDefault("DB_TIMEOUT", "10s")
	v.SetDefault("ACCESS_TOKEN_SECRET", "")
	v.SetDefault("TOKEN_TTL", "2h")
	v.SetDefault("ENFORCE_BOOKING_OWNERSHIP", false)
	v.SetDefault("CORS_ORIGINS", []string{"*"})
}

// Validate reports the first missing or unusable setting.
func (c *Config) Validate() error {
	if c.AccessTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET must be set")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.DBTimeout <= 0 {
		return fmt.Errorf("DB_TIMEOUT must be positive, got %s", c.DBTimeout)
	}
	if c.DBName == "" {
		return errors.New("DB_NAME must be set")
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
