package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.HistoryPath != "" {
		t.Fatalf("expected empty history path, got %q", cfg.HistoryPath)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("ROLL_HISTORY_PATH", "/tmp/env.db")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, []string{"-history", "/tmp/flag.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HistoryPath != "/tmp/flag.db" {
		t.Fatalf("expected flag history path, got %q", cfg.HistoryPath)
	}
}
