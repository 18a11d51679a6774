// Package config loads the Fotoware integration settings from the environment.
package config

import (
	"strings"

	"github.com/caarlos0/env/v11"

	apperrors "github.com/jrsteele09/go-fotoware-picker/internal/errors"
)

// Config holds everything needed to talk to a Fotoware tenant as a public
// OAuth2 client. The three tenant settings have no defaults: a deployment
// that misses one must fail at startup rather than half-work.
type Config struct {
	// BaseURL is the root of the Fotoware tenant, e.g. "https://acme.fotoware.cloud".
	// Stored without a trailing slash; it is also the only origin the selection
	// widget is trusted to post messages from.
	BaseURL string `env:"FOTOWARE_BASE_URL,required,notEmpty"`

	// ClientID identifies the registered public OAuth2 client (no secret).
	ClientID string `env:"FOTOWARE_CLIENT_ID,required,notEmpty"`

	// RedirectURI is the registered callback location the authorization
	// server redirects back to with code and state.
	RedirectURI string `env:"FOTOWARE_REDIRECT_URI,required,notEmpty"`

	// Scope requested during authorization.
	Scope string `env:"FOTOWARE_SCOPE" envDefault:"fotoweb.me"`

	// TokenDBPath is where the durable token cache lives.
	TokenDBPath string `env:"FOTOWARE_TOKEN_DB" envDefault:"fotoware-picker.db"`
}

// Load reads the configuration from the environment. A missing required
// variable is reported as ErrMissingConfig so callers can treat it as fatal.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, apperrors.Wrapf(apperrors.ErrMissingConfig, "%v", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}
