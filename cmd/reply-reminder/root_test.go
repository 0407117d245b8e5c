package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smith3v/reply-reminder/pkg/config"
	"github.com/smith3v/reply-reminder/pkg/logger"
)

func TestRootCommandDefaults(t *testing.T) {
	cmd := newRootCommand()
	flag := cmd.Flags().Lookup("config")
	if flag == nil {
		t.Fatalf("expected --config flag")
	}
	if flag.DefValue != defaultConfigFile || flag.Shorthand != "c" {
		t.Fatalf("unexpected flag %+v", flag)
	}
}

func TestRootCommandRejectsMissingConfig(t *testing.T) {
	logger.SetLogLevel(logger.ERROR)
	original := config.AppConfig
	t.Cleanup(func() { config.AppConfig = original })

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.json")})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestRootCommandRejectsInvalidConfig(t *testing.T) {
	logger.SetLogLevel(logger.ERROR)
	original := config.AppConfig
	t.Cleanup(func() { config.AppConfig = original })

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"database":{"driver":"mysql"}}`), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--config", path})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
