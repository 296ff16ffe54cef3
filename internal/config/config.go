// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/teammatch/internal/matching"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TEAMMATCH_SERVER_PORT.
const EnvPrefix = "TEAMMATCH"

// Default values
const (
	DefaultPort            = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultDimension       = 384
	DefaultFillerValue     = 0.1
	DefaultMaxFeatures     = 2000
	DefaultTopCandidates   = 20
	DefaultTopTargets      = 10
	DefaultCorpusLimit     = 500
	DefaultRateLimit       = 600
	DefaultBatchRateLimit  = 60
	DefaultRateWindow      = time.Minute
)

// Config is the full configuration tree. Every field can be set from a
// config file, a TEAMMATCH_* environment variable, or a CLI flag.
type Config struct {
	Server    Server    `mapstructure:"server"`
	Logging   Logging   `mapstructure:"logging"`
	Matching  Matching  `mapstructure:"matching"`
	RateLimit RateLimit `mapstructure:"rate-limit"`
}

// Server configures the HTTP service and its collaborators.
type Server struct {
	Port            int           `mapstructure:"port"`
	DatabaseURL     string        `mapstructure:"database-url"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed-origins"`
	JWT             JWTConfig     `mapstructure:"jwt"`
}

// Logging selects the log encoder and level.
type Logging struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// RateLimit throttles API clients by IP. Batch ranking endpoints have their
// own, stricter limit.
type RateLimit struct {
	Enabled      bool          `mapstructure:"enabled"`
	DefaultLimit int           `mapstructure:"default-limit"`
	BatchLimit   int           `mapstructure:"batch-limit"`
	Window       time.Duration `mapstructure:"window"`
	Whitelist    []string      `mapstructure:"whitelist"`
}

// Matching configures the featurizer, the scoring weights and batch behaviour.
type Matching struct {
	Dimension   int     `mapstructure:"dimension"`
	FillerValue float32 `mapstructure:"filler-value"`
	MaxFeatures int     `mapstructure:"max-features"`
	// Workers bounds parallel scoring; 0 means GOMAXPROCS.
	Workers       int              `mapstructure:"workers"`
	TopCandidates int              `mapstructure:"top-candidates"`
	TopTargets    int              `mapstructure:"top-targets"`
	CorpusLimit   int              `mapstructure:"corpus-limit"`
	Weights       matching.Weights `mapstructure:"weights"`
}

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config error: '%s' %s", e.Field, e.Message)
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:            DefaultPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			AllowedOrigins:  []string{"*"},
			JWT:             JWTConfig{Leeway: DefaultJWTLeeway},
		},
		Matching: Matching{
			Dimension:     DefaultDimension,
			FillerValue:   DefaultFillerValue,
			MaxFeatures:   DefaultMaxFeatures,
			TopCandidates: DefaultTopCandidates,
			TopTargets:    DefaultTopTargets,
			CorpusLimit:   DefaultCorpusLimit,
			Weights:       matching.DefaultWeights(),
		},
		RateLimit: RateLimit{
			Enabled:      true,
			DefaultLimit: DefaultRateLimit,
			BatchLimit:   DefaultBatchRateLimit,
			Window:       DefaultRateWindow,
		},
	}
}

// SetDefaults registers every default on v so environment overrides apply
// to keys that never appear in a config file.
func SetDefaults(v *viper.Viper) {
	d := Defaults()

	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.database-url", "")
	v.SetDefault("server.read-timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write-timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown-timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.allowed-origins", d.Server.AllowedOrigins)
	v.SetDefault("server.jwt.secret", "")
	v.SetDefault("server.jwt.leeway", d.Server.JWT.Leeway)

	v.SetDefault("logging.json", false)
	v.SetDefault("logging.debug", false)

	v.SetDefault("matching.dimension", d.Matching.Dimension)
	v.SetDefault("matching.filler-value", d.Matching.FillerValue)
	v.SetDefault("matching.max-features", d.Matching.MaxFeatures)
	v.SetDefault("matching.workers", 0)
	v.SetDefault("matching.top-candidates", d.Matching.TopCandidates)
	v.SetDefault("matching.top-targets", d.Matching.TopTargets)
	v.SetDefault("matching.corpus-limit", d.Matching.CorpusLimit)

	v.SetDefault("rate-limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate-limit.default-limit", d.RateLimit.DefaultLimit)
	v.SetDefault("rate-limit.batch-limit", d.RateLimit.BatchLimit)
	v.SetDefault("rate-limit.window", d.RateLimit.Window)
	v.SetDefault("rate-limit.whitelist", []string{})

	w := d.Matching.Weights
	v.SetDefault("matching.weights.skill_overlap", w.SkillOverlap)
	v.SetDefault("matching.weights.embedding_similarity", w.EmbeddingSimilarity)
	v.SetDefault("matching.weights.role_match", w.RoleMatch)
	v.SetDefault("matching.weights.experience_fit", w.ExperienceFit)
	v.SetDefault("matching.weights.hackathon_bonus", w.HackathonBonus)
	v.SetDefault("matching.weights.availability", w.Availability)
}

// BindEnv wires environment overrides: TEAMMATCH_<SECTION>_<KEY> for every
// key, plus the conventional DATABASE_URL and JWT_SECRET.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("server.database-url", EnvPrefix+"_SERVER_DATABASE_URL", "DATABASE_URL"); err != nil {
		return fmt.Errorf("binding DATABASE_URL environment variable: %w", err)
	}
	if err := v.BindEnv("server.jwt.secret", EnvPrefix+"_SERVER_JWT_SECRET", "JWT_SECRET"); err != nil {
		return fmt.Errorf("binding JWT_SECRET environment variable: %w", err)
	}
	return nil
}

// Load builds the configuration from defaults, the optional config file at
// path (YAML or JSON), and the environment, then validates it.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	if err := BindEnv(v); err != nil {
		return nil, err
	}

	if path != "" {
		resolved, err := resolvePath(path)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(resolved)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", resolved, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// resolvePath makes path absolute relative to the working directory.
func resolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return filepath.Join(cwd, path), nil
}

// Validate checks that the configuration has valid values. A missing
// database URL is not an error here; commands that need one check for it.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ValidationError{Field: "server.port", Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Server.Port)}
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return &ValidationError{Field: "server.*-timeout", Message: "must be non-negative"}
	}
	if err := c.Server.JWT.normalize(); err != nil {
		return err
	}

	if err := c.Matching.Validate(); err != nil {
		return err
	}

	rl := c.RateLimit
	if rl.DefaultLimit < 0 || rl.BatchLimit < 0 {
		return &ValidationError{Field: "rate-limit.*-limit", Message: "must be non-negative"}
	}
	if rl.Enabled && rl.Window <= 0 {
		return &ValidationError{Field: "rate-limit.window", Message: "must be positive when rate limiting is enabled"}
	}
	return nil
}

// Validate checks the matching section on its own, for callers that build a
// matcher without a full Config.
func (m Matching) Validate() error {
	if m.Dimension <= 0 {
		return &ValidationError{Field: "matching.dimension", Message: "must be positive"}
	}
	if m.MaxFeatures <= 0 {
		return &ValidationError{Field: "matching.max-features", Message: "must be positive"}
	}
	if m.Workers < 0 {
		return &ValidationError{Field: "matching.workers", Message: "must be non-negative"}
	}
	if m.TopCandidates <= 0 || m.TopTargets <= 0 {
		return &ValidationError{Field: "matching.top-*", Message: "must be positive"}
	}
	if m.CorpusLimit < 0 {
		return &ValidationError{Field: "matching.corpus-limit", Message: "must be non-negative"}
	}
	if err := m.Weights.Validate(); err != nil {
		return &ValidationError{Field: "matching.weights", Message: err.Error()}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Booleans cannot distinguish unset from false and are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.DatabaseURL == "" {
		result.Server.DatabaseURL = defaults.Server.DatabaseURL
	}
	if result.Server.ReadTimeout == 0 {
		result.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if result.Server.WriteTimeout == 0 {
		result.Server.WriteTimeout = defaults.Server.WriteTimeout
	}
	if result.Server.ShutdownTimeout == 0 {
		result.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if len(result.Server.AllowedOrigins) == 0 {
		result.Server.AllowedOrigins = defaults.Server.AllowedOrigins
	}
	if result.Server.JWT.Secret == "" {
		result.Server.JWT.Secret = defaults.Server.JWT.Secret
	}
	if result.Server.JWT.Leeway == 0 {
		result.Server.JWT.Leeway = defaults.Server.JWT.Leeway
	}

	if result.Matching.Dimension == 0 {
		result.Matching.Dimension = defaults.Matching.Dimension
	}
	if result.Matching.FillerValue == 0 {
		result.Matching.FillerValue = defaults.Matching.FillerValue
	}
	if result.Matching.MaxFeatures == 0 {
		result.Matching.MaxFeatures = defaults.Matching.MaxFeatures
	}
	if result.Matching.Workers == 0 {
		result.Matching.Workers = defaults.Matching.Workers
	}
	if result.Matching.TopCandidates == 0 {
		result.Matching.TopCandidates = defaults.Matching.TopCandidates
	}
	if result.Matching.TopTargets == 0 {
		result.Matching.TopTargets = defaults.Matching.TopTargets
	}
	if result.Matching.CorpusLimit == 0 {
		result.Matching.CorpusLimit = defaults.Matching.CorpusLimit
	}
	if result.RateLimit.DefaultLimit == 0 {
		result.RateLimit.DefaultLimit = defaults.RateLimit.DefaultLimit
	}
	if result.RateLimit.BatchLimit == 0 {
		result.RateLimit.BatchLimit = defaults.RateLimit.BatchLimit
	}
	if result.RateLimit.Window == 0 {
		result.RateLimit.Window = defaults.RateLimit.Window
	}
	// Weights are merged as a table: a partial table would not sum to 1.
	if result.Matching.Weights == (matching.Weights{}) {
		result.Matching.Weights = defaults.Matching.Weights
	}

	return result
}
