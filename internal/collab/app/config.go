package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the collab service configuration, loaded from the environment.
type Config struct {
	// Issuer is the expected iss claim on access tokens.
	Issuer string `env:"COLLAB_ISSUER" envDefault:"scholarly-auth"`

	// AuthPublicKeyFile is the PEM-encoded Ed25519 public key of the auth
	// service, used to verify access tokens.
	AuthPublicKeyFile string `env:"COLLAB_AUTH_PUBLIC_KEY_FILE,required"`

	// DatabaseFile is the SQLite database path.
	DatabaseFile string `env:"COLLAB_DATABASE_FILE" envDefault:"collab.db"`

	// ORCIDBaseURL overrides the ORCID public API, e.g. for the sandbox.
	ORCIDBaseURL string `env:"COLLAB_ORCID_BASE_URL"`

	// MailRelayURL is the institutional mail relay. When empty, invitation
	// mail is logged instead of delivered.
	MailRelayURL string `env:"COLLAB_MAIL_RELAY_URL"`
	MailRelayKey string `env:"COLLAB_MAIL_RELAY_KEY"`

	// InviteTTL is how long invitations stay redeemable.
	InviteTTL time.Duration `env:"COLLAB_INVITE_TTL" envDefault:"720h"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig parses the environment into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
