package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SIGNUP_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Server:  ServerConfig{Addr: ":8080", ReadTimeout: 10 * time.Second, ShutdownTimeout: 5 * time.Second},
		UI:      UIConfig{Mode: ModePrompt, Theme: "signup", AssetsPrefix: "/assets"},
		OpenAPI: OpenAPIConfig{Operation: "createAccount"},
		Log:     LogConfig{Level: "info"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "signup.yaml")
	data := []byte("server:\n  addr: \":9000\"\nui:\n  mode: live\n  variant: dark\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SIGNUP_SERVER_ADDR", ":9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9100" {
		t.Fatalf("env must override file, got %q", cfg.Server.Addr)
	}
	if cfg.UI.Mode != ModeLive || cfg.UI.Variant != "dark" {
		t.Fatalf("unexpected ui config %+v", cfg.UI)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level %q", cfg.Log.Level)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing explicit file error")
	}

	t.Setenv("SIGNUP_CONFIG", "")
	t.Setenv("SIGNUP_UI_MODE", "gui")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected unknown mode error")
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	level, err := LogConfig{Level: "warn"}.SlogLevel()
	if err != nil || level.String() != "WARN" {
		t.Fatalf("unexpected level %v (%v)", level, err)
	}
	if _, err := (LogConfig{Level: "loud"}).SlogLevel(); err == nil {
		t.Fatalf("expected parse error")
	}
}
