package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jobshell/jsh/internal/config"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "jshrc.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: '%v'", err)
	}

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("Test full config", func(t *testing.T) {
		path := writeTestConfig(t, "prompt: \"$ \"\nmaxJobs: 8\ndebug: true\n")

		cfg, err := config.Load(path, true)
		if err != nil {
			t.Fatalf("expected not to receive error: got '%v'", err)
		}

		if cfg.Prompt != "$ " {
			t.Errorf("expected prompt: got '%s', want '$ '", cfg.Prompt)
		}

		if cfg.MaxJobs != 8 {
			t.Errorf("expected maxJobs: got '%d', want '8'", cfg.MaxJobs)
		}

		if !cfg.Debug {
			t.Errorf("expected debug to be enabled")
		}
	})

	t.Run("Test unset fields take defaults", func(t *testing.T) {
		path := writeTestConfig(t, "debug: true\n")

		cfg, err := config.Load(path, true)
		if err != nil {
			t.Fatalf("expected not to receive error: got '%v'", err)
		}

		if cfg.Prompt != config.DefaultPrompt {
			t.Errorf(
				"expected default prompt: got '%s', want '%s'",
				cfg.Prompt,
				config.DefaultPrompt,
			)
		}

		if cfg.MaxJobs != config.DefaultMaxJobs {
			t.Errorf(
				"expected default maxJobs: got '%d', want '%d'",
				cfg.MaxJobs,
				config.DefaultMaxJobs,
			)
		}
	})

	t.Run("Test empty file yields defaults", func(t *testing.T) {
		path := writeTestConfig(t, "")

		cfg, err := config.Load(path, true)
		if err != nil {
			t.Fatalf("expected not to receive error: got '%v'", err)
		}

		if cfg.Prompt != config.DefaultPrompt || cfg.MaxJobs != config.DefaultMaxJobs {
			t.Errorf("expected defaults: got '%+v'", cfg)
		}
	})

	t.Run("Test unknown field is rejected", func(t *testing.T) {
		path := writeTestConfig(t, "promt: oops\n")

		if _, err := config.Load(path, true); err == nil {
			t.Errorf("expected to receive error for unknown field")
		}
	})

	t.Run("Test negative maxJobs is rejected", func(t *testing.T) {
		path := writeTestConfig(t, "maxJobs: -2\n")

		_, err := config.Load(path, true)
		if err == nil || !strings.Contains(err.Error(), "maxJobs") {
			t.Errorf("expected maxJobs validation error: got '%v'", err)
		}
	})

	t.Run("Test missing implicit file yields defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

		cfg, err := config.Load(path, false)
		if err != nil {
			t.Fatalf("expected not to receive error: got '%v'", err)
		}

		if cfg.MaxJobs != config.DefaultMaxJobs {
			t.Errorf("expected defaults: got '%+v'", cfg)
		}
	})

	t.Run("Test missing explicit file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

		if _, err := config.Load(path, true); err == nil {
			t.Errorf("expected to receive error for missing explicit file")
		}
	})
}
