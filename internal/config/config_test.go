package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Defaults() {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.JWTExpiry() != 24*time.Hour {
		t.Errorf("JWTExpiry = %v", cfg.JWTExpiry())
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"PORT":                  "9000",
		"BOARD_WIDTH":           "6",
		"RATE_LIMIT_RPS":        "2.5",
		"SESSION_IDLE_TIMEOUT":  "30m",
		"WORDS_DICTIONARY_FILE": "/tmp/words.txt",
		"BOARD_ROWS":            "lots", // ignored
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9000" || cfg.BoardWidth != 6 || cfg.RateLimitRPS != 2.5 ||
		cfg.SessionIdleTimeout != 30*time.Minute || cfg.DictionaryFile != "/tmp/words.txt" {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.BoardRows != 6 {
		t.Errorf("invalid BOARD_ROWS should keep default, got %d", cfg.BoardRows)
	}
}

func TestLoadFrom_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "port: \"8081\"\nboard_width: 7\nlog_format: console\nsession_idle_timeout: 45m\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(envMap(map[string]string{
		"CONFIG_FILE": path,
		"PORT":        "8082",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8082" {
		t.Errorf("env should win over file: port %q", cfg.Port)
	}
	if cfg.BoardWidth != 7 || cfg.LogFormat != "console" || cfg.SessionIdleTimeout != 45*time.Minute {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad log level": {"LOG_LEVEL": "loud"},
		"zero width":    {"BOARD_WIDTH": "0"},
		"short secret":  {"JWT_SECRET": "abc"},
		"port letters":  {"PORT": "http"},
		"missing file":  {"CONFIG_FILE": "/does/not/exist.yaml"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(envMap(env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadFrom_SecureCookies(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{"NODE_ENV": "production"}))
	if err != nil || !cfg.SecureCookies {
		t.Fatalf("production: %+v %v", cfg.SecureCookies, err)
	}
	cfg, err = LoadFrom(envMap(map[string]string{"NODE_ENV": "production", "SECURE_COOKIES": "false"}))
	if err != nil || cfg.SecureCookies {
		t.Fatalf("override: %+v %v", cfg.SecureCookies, err)
	}
}
