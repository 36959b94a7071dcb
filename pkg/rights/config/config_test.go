package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hellofriends/rights-engine/pkg/rights/internalerr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.KBPath != "kb/rights_sg.yaml" {
		t.Errorf("Default kb_path = %s", cfg.KBPath)
	}
	if cfg.Language != "en" || cfg.MinOverlap != 1 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Default addr = %s", cfg.Server.Addr)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
kb_path: custom/kb.yaml
language: ta
min_overlap: 2
server:
  addr: ":9090"
llm:
  base_url: http://localhost:11434/v1
  model: test-model
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.KBPath != "custom/kb.yaml" || cfg.Language != "ta" || cfg.MinOverlap != 2 {
		t.Errorf("YAML values not applied: %+v", cfg)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server addr = %s", cfg.Server.Addr)
	}
	if cfg.LLM.Model != "test-model" {
		t.Errorf("LLM model = %s", cfg.LLM.Model)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "kb_path: from/yaml.yaml\nlanguage: en\n")

	t.Setenv("RIGHTS_KB_PATH", "from/env.yaml")
	t.Setenv("RIGHTS_LANGUAGE", "bn")
	t.Setenv("RIGHTS_MIN_OVERLAP", "3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.KBPath != "from/env.yaml" {
		t.Errorf("Env should override YAML, got %s", cfg.KBPath)
	}
	if cfg.Language != "bn" || cfg.MinOverlap != 3 {
		t.Errorf("Env overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	if _, err := Load("does/not/exist.yaml"); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Missing file should yield ErrInvalidConfig, got %v", err)
	}

	path := writeConfig(t, "{invalid")
	if _, err := Load(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Bad YAML should yield ErrInvalidConfig, got %v", err)
	}

	path = writeConfig(t, `kb_path: ""`)
	if _, err := Load(path); err == nil {
		t.Error("Empty kb_path must be rejected")
	}
}

func TestMinOverlapFloor(t *testing.T) {
	path := writeConfig(t, "kb_path: kb.yaml\nmin_overlap: -5\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MinOverlap != 1 {
		t.Errorf("min_overlap below 1 should be coerced, got %d", cfg.MinOverlap)
	}
}
