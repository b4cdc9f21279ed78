package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.User.Role != "student" {
		t.Errorf("user.role = %q, want student", cfg.User.Role)
	}
	if cfg.State.Path != "navigation_state.json" {
		t.Errorf("state.path = %q", cfg.State.Path)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
user:
  role: faculty
state:
  path: /var/lib/campus/navigation_state.json
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.User.Role != "faculty" {
		t.Errorf("user.role = %q, want faculty", cfg.User.Role)
	}
	if cfg.State.Path != "/var/lib/campus/navigation_state.json" {
		t.Errorf("state.path = %q", cfg.State.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want debug", cfg.Logging.Level)
	}
	// Keys the file does not mention keep their defaults.
	if cfg.Logging.Format != "console" {
		t.Errorf("logging.format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadEnvironmentWinsOverFile(t *testing.T) {
	path := writeConfigFile(t, "user:\n  role: faculty\n")
	t.Setenv("NAV_USER_ROLE", "admin")
	t.Setenv("NAV_LOG_FORMAT", "json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.User.Role != "admin" {
		t.Errorf("user.role = %q, want the environment's admin", cfg.User.Role)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging.format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadIgnoresUnknownEnvironment(t *testing.T) {
	t.Setenv("NAV_IRRELEVANT", "whatever")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.User.Role != "student" {
		t.Errorf("user.role = %q, want the default", cfg.User.Role)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown_role",
			yaml: "user:\n  role: janitor\n",
		},
		{
			name: "unknown_log_level",
			yaml: "logging:\n  level: verbose\n",
		},
		{
			name: "unknown_log_format",
			yaml: "logging:\n  format: xml\n",
		},
		{
			name: "empty_state_path",
			yaml: "state:\n  path: \"\"\n",
		},
		{
			name: "sso_token_without_key",
			yaml: "user:\n  sso_token_path: /tmp/sso_token\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.yaml)
			if _, err := Load(path); err == nil {
				t.Error("expected validation to fail")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("a named config file that does not exist should fail")
	}
}
