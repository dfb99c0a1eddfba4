package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CASEASSIST_BACKEND_URL", "CASEASSIST_HTTP_TIMEOUT", "CASEASSIST_DEFAULT_WORKFLOW",
		"CASEASSIST_LOG_FILE", "CASEASSIST_LOG_LEVEL", "BACKEND_URL", "NEXT_PUBLIC_BACKEND_URL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(New(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BackendURL != "" {
		t.Errorf("BackendURL = %q, want empty", cfg.BackendURL)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("HTTPTimeout = %v, want 0 (no timeout)", cfg.HTTPTimeout)
	}
	if cfg.DefaultWorkflow != WorkflowAdvice {
		t.Errorf("DefaultWorkflow = %q, want advice", cfg.DefaultWorkflow)
	}
	if cfg.Log.Level != "info" || !strings.HasSuffix(cfg.Log.File, filepath.Join("caseassist", "caseassist.log")) {
		t.Errorf("unexpected log defaults %+v", cfg.Log)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("missing backend URL should fail validation")
	}
}

func TestFileValues(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
backend_url = "https://api.example.org/"
http_timeout = "45s"
default_workflow = "Search"

[log]
level = "debug"
file = "/tmp/caseassist-test.log"
`)

	cfg, err := Load(New(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BackendURL != "https://api.example.org" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.HTTPTimeout != 45*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.DefaultWorkflow != WorkflowSearch {
		t.Errorf("DefaultWorkflow = %q", cfg.DefaultWorkflow)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/caseassist-test.log" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `backend_url = "http://from-file:4000"`)

	cfg, err := Load(New(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BackendURL != "http://from-file:4000" {
		t.Fatalf("file value not used: %q", cfg.BackendURL)
	}

	t.Setenv("CASEASSIST_BACKEND_URL", "http://from-env:4000")
	cfg, err = Load(New(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BackendURL != "http://from-env:4000" {
		t.Fatalf("env should override file: %q", cfg.BackendURL)
	}

	v := New(path)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("backend-url", "", "")
	if err := flags.Parse([]string{"--backend-url", "http://from-flag:4000"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if err := v.BindPFlag(KeyBackendURL, flags.Lookup("backend-url")); err != nil {
		t.Fatalf("bind: %v", err)
	}
	cfg, err = Load(v)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BackendURL != "http://from-flag:4000" {
		t.Fatalf("flag should override env: %q", cfg.BackendURL)
	}
}

func TestLegacyBackendEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "http://localhost:4000/")

	cfg, err := Load(New(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BackendURL != "http://localhost:4000" {
		t.Fatalf("BackendURL = %q", cfg.BackendURL)
	}
}

func TestExplicitMissingFileFails(t *testing.T) {
	clearEnv(t)
	if _, err := Load(New(filepath.Join(t.TempDir(), "nope.toml"))); err == nil {
		t.Fatal("explicit config path that does not exist should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{BackendURL: "http://localhost:4000", DefaultWorkflow: WorkflowAdvice}, false},
		{"bad scheme", Config{BackendURL: "ftp://host", DefaultWorkflow: WorkflowAdvice}, true},
		{"no host", Config{BackendURL: "http://", DefaultWorkflow: WorkflowAdvice}, true},
		{"bad workflow", Config{BackendURL: "http://h", DefaultWorkflow: "chat"}, true},
		{"negative timeout", Config{BackendURL: "http://h", DefaultWorkflow: WorkflowSearch, HTTPTimeout: -time.Second}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
