package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// Tests in this file use t.Setenv, so none of them run in parallel.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"ENV", "STORAGE_DRIVER", "STORAGE_PATH", "POSTGRES_DSN", "HTTP_SERVER_ADDR",
		"HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
env: "dev"
http_server:
  address: "localhost:8082"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorageDriver != DriverSQLite3 {
		t.Fatalf("storage driver = %q, want %q", cfg.StorageDriver, DriverSQLite3)
	}
	if cfg.StoragePath != "uni.sqlite" {
		t.Fatalf("storage path = %q, want %q", cfg.StoragePath, "uni.sqlite")
	}
	if cfg.Addr != "localhost:8082" {
		t.Fatalf("address = %q, want %q", cfg.Addr, "localhost:8082")
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.IdleTimeout != 60*time.Second || cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("timeouts = %v/%v/%v, want 10s/60s/5s", cfg.ReadTimeout, cfg.IdleTimeout, cfg.ShutdownTimeout)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("STORAGE_PATH", "/tmp/override.sqlite")

	path := writeConfig(t, `
env: "prod"
storage_driver: "sqlite3"
storage_path: "file.sqlite"
http_server:
  address: ":8080"
  write_timeout: 3s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorageDriver != DriverSQLite {
		t.Fatalf("storage driver = %q, want %q", cfg.StorageDriver, DriverSQLite)
	}
	if cfg.StoragePath != "/tmp/override.sqlite" {
		t.Fatalf("storage path = %q, want override", cfg.StoragePath)
	}
	if cfg.WriteTimeout != 3*time.Second {
		t.Fatalf("write timeout = %v, want 3s", cfg.WriteTimeout)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "unknown driver",
			body:    "env: dev\nstorage_driver: mysql\nhttp_server:\n  address: \":1\"\n",
			wantErr: "unknown storage_driver",
		},
		{
			name:    "postgres without dsn",
			body:    "env: dev\nstorage_driver: postgres\nhttp_server:\n  address: \":1\"\n",
			wantErr: "postgres_dsn is required",
		},
		{
			name:    "missing address",
			body:    "env: dev\n",
			wantErr: "cannot read config",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)

			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected missing file error")
	}
	if _, err := Load(""); err == nil {
		t.Fatal("expected empty path error")
	}
}
