// Package validation validates structs with go-playground/validator tags.
//
// Field names in error messages follow the mapstructure or json tag, so a
// failing config field is reported under the same key used in config.yml.
//
//	type TelegramConfig struct {
//	    Token string `mapstructure:"token" validate:"required"`
//	}
//	err := validation.Validate(cfg)
package validation
