package config

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT JWTConfig `mapstructure:"jwt"`
}

// JWTConfig holds everything the token issuer and token provider need.
// It is handed to them at construction; the auth core never reads the
// global AppConfig.
type JWTConfig struct {
	SecretKey                 string `mapstructure:"secret_key"`
	Issuer                    string `mapstructure:"issuer"`
	Audience                  string `mapstructure:"audience"`
	CookieName                string `mapstructure:"cookie_name"`
	AccessTokenExpiresMinutes int    `mapstructure:"access_token_expires_minutes"`
	RefreshTokenExpiresDays   int    `mapstructure:"refresh_token_expires_days"`
}

// AccessTokenLifetime returns the configured access token lifetime.
func (c JWTConfig) AccessTokenLifetime() time.Duration {
	return time.Duration(c.AccessTokenExpiresMinutes) * time.Minute
}

// RefreshTokenLifetime returns the configured refresh token lifetime.
func (c JWTConfig) RefreshTokenLifetime() time.Duration {
	return time.Duration(c.RefreshTokenExpiresDays) * 24 * time.Hour
}

// Validate reports startup-time misconfiguration. A missing secret key is
// fatal: tokens signed with an empty key would be forgeable.
func (c JWTConfig) Validate() error {
	if c.SecretKey == "" {
		return errors.New("jwt secret key is not configured")
	}
	return nil
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetDefault("jwt.cookie_name", "RefreshToken")
	viper.SetDefault("jwt.issuer", "livelib")
	viper.SetDefault("jwt.audience", "livelib-clients")
	viper.SetDefault("jwt.access_token_expires_minutes", 5)
	viper.SetDefault("jwt.refresh_token_expires_days", 15)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
