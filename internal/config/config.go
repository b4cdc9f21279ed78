package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	User    UserConfig    `koanf:"user"`
	State   StateConfig   `koanf:"state"`
	Logging LoggingConfig `koanf:"logging"`
}

type UserConfig struct {
	// Role is used as-is when no SSO token is configured.
	Role string `koanf:"role" validate:"omitempty,oneof=admin administrator super_admin org organization faculty student"`
	// SSOTokenPath points at a campus SSO token whose role claim overrides Role.
	SSOTokenPath string `koanf:"sso_token_path"`
	// SSOPublicKey is the PEM file the token signature is checked against.
	// Required when SSOTokenPath is set.
	SSOPublicKey string `koanf:"sso_public_key" validate:"required_with=SSOTokenPath"`
}

type StateConfig struct {
	// Path of the JSON file navigation state persists to.
	Path string `koanf:"path" validate:"required"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func Default() Config {
	return Config{
		User: UserConfig{
			Role: "student",
		},
		State: StateConfig{
			Path: "navigation_state.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

var validate = validator.New()

// Load layers configuration: defaults, then the YAML file at path (skipped
// when path is empty), then NAV_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("NAV_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// envTransform maps the supported NAV_* variables onto config paths. Unknown
// variables are ignored.
func envTransform(key string) string {
	switch key {
	case "NAV_USER_ROLE":
		return "user.role"
	case "NAV_SSO_TOKEN_PATH":
		return "user.sso_token_path"
	case "NAV_SSO_PUBLIC_KEY":
		return "user.sso_public_key"
	case "NAV_STATE_PATH":
		return "state.path"
	case "NAV_LOG_LEVEL":
		return "logging.level"
	case "NAV_LOG_FORMAT":
		return "logging.format"
	}
	return ""
}
