package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: DriverRedis, Addrs: []string{"localhost:6379"}},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	for _, driver := range []string{DriverRedis, DriverValkey} {
		t.Run(driver, func(t *testing.T) {
			cfg := validConfig()
			cfg.Database.Driver = driver
			cfg.Database.Addrs = nil
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error for missing addrs")
			}
		})
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "mongo"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	expected := `database.driver must be "redis", "valkey" or "sqlite", got "mongo"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()

	if cfg.Database.Driver != DriverRedis {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Index.KeyPrefix != "wikisearch:" {
		t.Errorf("key prefix = %q", cfg.Index.KeyPrefix)
	}
	if cfg.Fetch.Timeout() != 15*time.Second {
		t.Errorf("fetch timeout = %v", cfg.Fetch.Timeout())
	}
	if !strings.HasPrefix(cfg.Fetch.UserAgent, "wikisearch/") {
		t.Errorf("user agent = %q", cfg.Fetch.UserAgent)
	}
}

func TestApplyDefaults_SQLitePath(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}, Database: DatabaseConfig{Driver: DriverSQLite}}
	cfg.ApplyDefaults()

	if cfg.Database.Path == "" {
		t.Fatal("expected default sqlite path")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("WS_TEST_PORT", "9090")

	path := filepath.Join(t.TempDir(), "test.yaml")
	body := `
http:
  port: ${WS_TEST_PORT}
database:
  driver: ${WS_TEST_DRIVER:-valkey}
  addrs: ["valkey:6379"]
fetch:
  min_delay_ms: 250
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != DriverValkey {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Fetch.MinDelay() != 250*time.Millisecond {
		t.Errorf("min delay = %v", cfg.Fetch.MinDelay())
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("WS_SET", "value")
	got := string(expandEnvVars([]byte("a=${WS_SET} b=${WS_UNSET:-fallback} c=${WS_UNSET}")))
	want := "a=value b=fallback c="
	if got != want {
		t.Errorf("expandEnvVars = %q, want %q", got, want)
	}
}
