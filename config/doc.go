// Package config loads service configuration from YAML, .env files and
// environment variables using viper and godotenv.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("slaybot", &cfg)
//
// Every leaf field with a mapstructure tag can be overridden from the
// environment: nested keys are joined with underscores and upper-cased,
// so telegram.token is read from TELEGRAM_TOKEN.
package config
