package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName   string
	Port      string
	TableName string
	Region    string

	AuthMode  string
	APIKey    string
	SecretKey string

	CodeTTL  time.Duration
	TokenTTL time.Duration

	EmailBackend     string // sendgrid | console
	SendgridAPIKey   string
	DefaultFromName  string
	DefaultFromEmail string

	NavSchemaFile string
}

// Load reads configuration from the environment with viper, after an
// optional .env file for local runs.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("app_name", "Dashboard Admin")
	v.SetDefault("port", "8080")
	v.SetDefault("auth_mode", "none")
	v.SetDefault("code_ttl", 10*time.Minute)
	v.SetDefault("token_ttl", time.Hour)
	v.SetDefault("email_backend", "console")
	v.SetDefault("default_from_name", "Dashboard Admin")
	v.SetDefault("default_from_email", "noreply@localhost")

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, err
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		AppName:          v.GetString("app_name"),
		Port:             v.GetString("port"),
		TableName:        v.GetString("table_name"),
		Region:           v.GetString("aws_region"),
		AuthMode:         v.GetString("auth_mode"),
		APIKey:           v.GetString("api_key"),
		SecretKey:        v.GetString("secret_key"),
		CodeTTL:          v.GetDuration("code_ttl"),
		TokenTTL:         v.GetDuration("token_ttl"),
		EmailBackend:     v.GetString("email_backend"),
		SendgridAPIKey:   v.GetString("sendgrid_api_key"),
		DefaultFromName:  v.GetString("default_from_name"),
		DefaultFromEmail: v.GetString("default_from_email"),
		NavSchemaFile:    v.GetString("nav_schema_file"),
	}
	if cfg.TableName == "" || cfg.Region == "" {
		return Config{}, errors.New("TABLE_NAME and AWS_REGION are required")
	}
	if cfg.SecretKey == "" {
		return Config{}, errors.New("SECRET_KEY is required")
	}
	if cfg.EmailBackend == "sendgrid" && cfg.SendgridAPIKey == "" {
		return Config{}, errors.New("SENDGRID_API_KEY is required for the sendgrid email backend")
	}
	return cfg, nil
}
