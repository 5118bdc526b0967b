package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PIPELINE_BASE_URL", "")
	t.Setenv("POLL_INTERVAL_MS", "")
	t.Setenv("MAX_WAIT_SECONDS", "")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PipelineBaseURL != "http://localhost:8000/api/v1" {
		t.Fatalf("expected default base url, got %q", cfg.PipelineBaseURL)
	}
	if cfg.PollIntervalMs != 1200 {
		t.Fatalf("expected default poll interval 1200, got %d", cfg.PollIntervalMs)
	}
	if cfg.PollInterval() != 1200*time.Millisecond {
		t.Fatalf("PollInterval() = %v", cfg.PollInterval())
	}
	if cfg.MaxWait() != 0 {
		t.Fatalf("expected unbounded max wait, got %v", cfg.MaxWait())
	}
	if cfg.NATSSubject != "cases.analysis.completed" {
		t.Fatalf("expected default subject, got %q", cfg.NATSSubject)
	}
}

func TestLoadParsesEnvOverrides(t *testing.T) {
	t.Setenv("PIPELINE_BASE_URL", "https://pipeline.example/api/v2")
	t.Setenv("PIPELINE_TOKEN", "secret")
	t.Setenv("POLL_INTERVAL_MS", "300")
	t.Setenv("MAX_WAIT_SECONDS", "90")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PipelineBaseURL != "https://pipeline.example/api/v2" {
		t.Fatalf("base url = %q", cfg.PipelineBaseURL)
	}
	if cfg.PipelineToken != "secret" {
		t.Fatalf("token = %q", cfg.PipelineToken)
	}
	if cfg.PollInterval() != 300*time.Millisecond {
		t.Fatalf("PollInterval() = %v", cfg.PollInterval())
	}
	if cfg.MaxWait() != 90*time.Second {
		t.Fatalf("MaxWait() = %v", cfg.MaxWait())
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("POLL_INTERVAL_MS", "not-a-number")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PollIntervalMs != 1200 {
		t.Fatalf("expected fallback 1200, got %d", cfg.PollIntervalMs)
	}
}

func TestLoadConfigFileOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "pipeline_base_url: https://file.example/api\npoll_interval_ms: 500\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("PIPELINE_BASE_URL", "https://env.example/api")
	t.Setenv("MAX_WAIT_SECONDS", "60")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PipelineBaseURL != "https://file.example/api" {
		t.Fatalf("file must win over env, got %q", cfg.PipelineBaseURL)
	}
	if cfg.PollIntervalMs != 500 {
		t.Fatalf("poll interval = %d", cfg.PollIntervalMs)
	}
	if cfg.MaxWaitSeconds != 60 {
		t.Fatalf("keys absent from the file must keep env values, got %d", cfg.MaxWaitSeconds)
	}
}

func TestLoadRejectsMalformedConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("pipeline_base_url: [broken"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for malformed config file")
	}
}
