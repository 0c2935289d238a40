package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "main-key")
	t.Setenv("LLM_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GeminiParserAPIKey != "main-key" {
		t.Errorf("parser key should fall back to GEMINI_API_KEY, got %q", cfg.GeminiParserAPIKey)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Errorf("invalid duration should keep default, got %v", cfg.LLMTimeout)
	}
	if cfg.EntraTenant != "common" {
		t.Errorf("EntraTenant = %q", cfg.EntraTenant)
	}
	if !cfg.EnvFileMissing {
		t.Error("EnvFileMissing should be set when no .env exists")
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	// Registers a restore, then unsets so the .env value applies.
	t.Setenv("NATS_URL", "")
	os.Unsetenv("NATS_URL")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("NATS_URL=nats://localhost:4222\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.EnvFileMissing {
		t.Error("EnvFileMissing set although .env exists")
	}
	if cfg.NATSURL != "nats://localhost:4222" {
		t.Errorf("NATSURL = %q", cfg.NATSURL)
	}
}

func TestLoadMalformedEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BROKEN=\"unterminated\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on a malformed .env")
	}
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")

	for _, key := range []string{"", defaultSecretKey} {
		t.Setenv("SECRET_KEY", key)
		if _, err := Load(); err == nil {
			t.Errorf("Load() accepted SECRET_KEY %q in production", key)
		}
	}

	t.Setenv("SECRET_KEY", "a-real-secret-from-the-vault")
	if _, err := Load(); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	got := getEnvList("CORS_ALLOWED_ORIGINS")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("getEnvList() = %v", got)
	}
}
