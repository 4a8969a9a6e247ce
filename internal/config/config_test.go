package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestInitDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("ENV_FILE", "does-not-exist.env")
	Init(nil)

	if got := Transport(); got != "stdio" {
		t.Fatalf("expected stdio transport, got %q", got)
	}
	if got := TCGdexLanguage(); got != "en" {
		t.Fatalf("expected en language, got %q", got)
	}
	if got := JustTCGBatchLimit(); got != 20 {
		t.Fatalf("expected batch limit 20, got %d", got)
	}
	if got := CacheTTL(); got != time.Hour {
		t.Fatalf("expected 1h cache ttl, got %s", got)
	}
	if got := JustTCGAPIKey(); got != "" {
		t.Fatalf("expected empty api key, got %q", got)
	}
}

func TestInitReadsEnvironment(t *testing.T) {
	viper.Reset()
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("JUSTTCG_API_KEY", "  secret  ")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("CACHE_TTL", "not-a-duration")
	Init(nil)

	if got := JustTCGAPIKey(); got != "secret" {
		t.Fatalf("expected trimmed api key, got %q", got)
	}
	if got := HTTPTimeout(); got != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", got)
	}
	if got := CacheTTL(); got != time.Hour {
		t.Fatalf("expected fallback ttl for malformed value, got %s", got)
	}
}

func TestInitBindsHyphenatedFlags(t *testing.T) {
	viper.Reset()
	t.Setenv("ENV_FILE", "does-not-exist.env")
	root := &cobra.Command{Use: "test"}
	root.PersistentFlags().String("log-level", "info", "")
	root.PersistentFlags().Int("max-query-results", 50, "")
	if err := root.PersistentFlags().Parse([]string{"--log-level", "debug", "--max-query-results", "7"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	Init(root)

	if got := LogLevel(); got != "debug" {
		t.Fatalf("expected debug log level, got %q", got)
	}
	if got := MaxQueryResults(); got != 7 {
		t.Fatalf("expected 7 max results, got %d", got)
	}
}

func TestInitLoadsEnvFile(t *testing.T) {
	viper.Reset()
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("TCGDEX_LANGUAGE=fr\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	t.Setenv("TCGDEX_LANGUAGE", "")
	os.Unsetenv("TCGDEX_LANGUAGE")
	Init(nil)

	if got := TCGdexLanguage(); got != "fr" {
		t.Fatalf("expected language from env file, got %q", got)
	}
}
