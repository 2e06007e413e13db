// internal/platform/config/config.go
package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
	pkgerrors "github.com/pkg/errors"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	MigrationsDir string `envconfig:"MIGRATIONS_DIR" default:"migrations"`

	SendGridAPIKey string `envconfig:"SENDGRID_API_KEY"`
	MailFrom       string `envconfig:"MAIL_FROM"`
	MailTo         string `envconfig:"MAIL_TO"`

	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigin string `envconfig:"CORS_ORIGIN"`
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, pkgerrors.Wrap(err, "load config")
	}
	c.Port = strings.TrimSpace(c.Port)
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	c.MigrationsDir = strings.TrimSpace(c.MigrationsDir)
	return c, nil
}

// MailEnabled reports whether order confirmation mail can be sent.
func (c Config) MailEnabled() bool {
	return strings.TrimSpace(c.SendGridAPIKey) != "" &&
		strings.TrimSpace(c.MailFrom) != "" &&
		strings.TrimSpace(c.MailTo) != ""
}
