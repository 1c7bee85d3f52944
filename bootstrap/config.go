package bootstrap

import (
	"github.com/kbukum/slaybot/config"
)

// Config is the constraint for application config types. Any struct that
// embeds config.ServiceConfig gets GetServiceConfig by promotion and only
// needs ApplyDefaults and Validate of its own.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
