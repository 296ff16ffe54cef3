package config

import (
	"fmt"
	"time"
)

const (
	// DefaultJWTLeeway tolerates clock skew when checking exp and nbf.
	DefaultJWTLeeway = 30 * time.Second
	minJWTSecretLen  = 16
)

// JWTConfig holds what the service needs to verify bearer tokens. Tokens are
// issued elsewhere; an empty Secret disables the authenticated routes.
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Leeway time.Duration `mapstructure:"leeway"`
}

// Enabled reports whether token verification is configured.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret != "" && len(c.Secret) < minJWTSecretLen {
		return &ValidationError{Field: "server.jwt.secret", Message: fmt.Sprintf("must be at least %d characters", minJWTSecretLen)}
	}
	if c.Leeway < 0 {
		return &ValidationError{Field: "server.jwt.leeway", Message: fmt.Sprintf("must be non-negative, got: %s", c.Leeway)}
	}
	return nil
}
